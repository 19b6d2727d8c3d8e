package mock

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/taskboard/taskboard/internal/database"
)

func TestUserLifecycle(t *testing.T) {
	db := NewMockDB()
	ctx := context.Background()

	user := &database.User{Name: "alice", Password: "hash"}
	require.NoError(t, db.CreateUser(ctx, user))
	assert.Equal(t, database.RoleUser, user.Role)
	assert.False(t, user.ID.IsZero())

	// Duplicate names are rejected, matching the unique index on the real
	// store.
	err := db.CreateUser(ctx, &database.User{Name: "alice", Password: "other"})
	assert.ErrorIs(t, err, database.ErrDuplicate)

	got, err := db.GetUserByName(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = db.GetUserByName(ctx, "bob")
	assert.ErrorIs(t, err, database.ErrNotFound)

	got.Name = "alicia"
	got.Password = "newhash"
	require.NoError(t, db.UpdateUser(ctx, got))

	updated, err := db.GetUserByID(ctx, user.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "alicia", updated.Name)
	assert.Equal(t, "newhash", updated.Password)
}

func TestUpdateUserDuplicateName(t *testing.T) {
	db := NewMockDB()
	ctx := context.Background()

	alice := &database.User{Name: "alice"}
	bob := &database.User{Name: "bob"}
	require.NoError(t, db.CreateUser(ctx, alice))
	require.NoError(t, db.CreateUser(ctx, bob))

	bob.Name = "alice"
	assert.ErrorIs(t, db.UpdateUser(ctx, bob), database.ErrDuplicate)
}

func TestTaskLifecycle(t *testing.T) {
	db := NewMockDB()
	ctx := context.Background()

	owner := &database.User{Name: "alice"}
	require.NoError(t, db.CreateUser(ctx, owner))

	task := &database.Task{Description: "buy milk", UserID: owner.ID}
	require.NoError(t, db.CreateTask(ctx, task))
	assert.Equal(t, database.StatusPending, task.Status)

	tasks, err := db.ListTasksByOwner(ctx, owner.ID.Hex())
	require.NoError(t, err)
	require.Len(t, tasks, 1)

	require.NoError(t, db.UpdateTaskStatus(ctx, task.ID.Hex(), "Done"))
	got, err := db.GetTaskByID(ctx, task.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "Done", got.Status)

	require.NoError(t, db.DeleteTask(ctx, task.ID.Hex()))
	assert.ErrorIs(t, db.DeleteTask(ctx, task.ID.Hex()), database.ErrNotFound)
}

func TestListTasksWithOwners(t *testing.T) {
	db := NewMockDB()
	ctx := context.Background()

	owner := &database.User{Name: "alice"}
	require.NoError(t, db.CreateUser(ctx, owner))
	require.NoError(t, db.CreateTask(ctx, &database.Task{Description: "buy milk", UserID: owner.ID}))

	// A task whose owner document is missing keeps a nil owner in the join.
	require.NoError(t, db.CreateTask(ctx, &database.Task{Description: "orphan", UserID: bson.NewObjectID()}))

	joined, err := db.ListTasksWithOwners(ctx)
	require.NoError(t, err)
	require.Len(t, joined, 2)
	for _, task := range joined {
		switch task.Description {
		case "buy milk":
			require.NotNil(t, task.Owner)
			assert.Equal(t, "alice", task.Owner.Name)
		case "orphan":
			assert.Nil(t, task.Owner)
		}
	}
}

func TestErrorSimulation(t *testing.T) {
	db := NewMockDB()
	db.GetUserByNameError = assert.AnError

	_, err := db.GetUserByName(context.Background(), "alice")
	assert.ErrorIs(t, err, assert.AnError)

	db.Reset()
	_, err = db.GetUserByName(context.Background(), "alice")
	assert.ErrorIs(t, err, database.ErrNotFound)
}
