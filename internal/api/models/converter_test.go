package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/taskboard/taskboard/internal/database"
)

func TestToTask(t *testing.T) {
	id := bson.NewObjectID()
	task := ToTask(database.Task{
		ID:          id,
		Description: "buy milk",
		Category:    "errands",
		Date:        time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC),
		Status:      database.StatusPending,
	})

	assert.Equal(t, id.Hex(), task.ID)
	assert.Equal(t, "2026-08-30", task.Date)
	assert.Empty(t, task.Owner)

	// A zero date renders as an empty cell, not the zero time.
	blank := ToTask(database.Task{})
	assert.Empty(t, blank.Date)
}

func TestToTasksWithOwners(t *testing.T) {
	owner := &database.User{ID: bson.NewObjectID(), Name: "alice"}
	tasks := ToTasksWithOwners([]database.TaskWithOwner{
		{Task: database.Task{Description: "buy milk"}, Owner: owner},
		{Task: database.Task{Description: "orphan"}},
	})

	assert.Equal(t, "alice", tasks[0].Owner)
	assert.Empty(t, tasks[1].Owner)
}
