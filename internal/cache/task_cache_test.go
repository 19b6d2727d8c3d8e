package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/taskboard/taskboard/internal/config"
	"github.com/taskboard/taskboard/internal/database"
)

func TestTaskListCache(t *testing.T) {
	c := NewTaskListCache(&config.CacheConfig{Backend: config.CacheBackendMemory, TTL: 60})
	ctx := context.Background()

	ownerID := bson.NewObjectID()
	tasks := []database.Task{
		{ID: bson.NewObjectID(), Description: "buy milk", UserID: ownerID, Status: database.StatusPending},
	}

	_, found := c.Get(ctx, ownerID.Hex())
	assert.False(t, found)

	require.NoError(t, c.Set(ctx, ownerID.Hex(), tasks))

	got, found := c.Get(ctx, ownerID.Hex())
	require.True(t, found)
	require.Len(t, got, 1)
	assert.Equal(t, "buy milk", got[0].Description)
	assert.Equal(t, ownerID, got[0].UserID)

	require.NoError(t, c.Invalidate(ctx, ownerID.Hex()))
	_, found = c.Get(ctx, ownerID.Hex())
	assert.False(t, found)
}

func TestTaskListCacheSeparatesOwners(t *testing.T) {
	c := NewTaskListCache(nil)
	ctx := context.Background()

	a, b := bson.NewObjectID(), bson.NewObjectID()
	require.NoError(t, c.Set(ctx, a.Hex(), []database.Task{{Description: "task a"}}))
	require.NoError(t, c.Set(ctx, b.Hex(), []database.Task{{Description: "task b"}}))

	gotA, found := c.Get(ctx, a.Hex())
	require.True(t, found)
	assert.Equal(t, "task a", gotA[0].Description)

	// Invalidating one owner leaves the other untouched.
	require.NoError(t, c.Invalidate(ctx, a.Hex()))
	_, found = c.Get(ctx, a.Hex())
	assert.False(t, found)
	_, found = c.Get(ctx, b.Hex())
	assert.True(t, found)
}
