package database

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// StatusPending is the status a task is created with when none is given.
const StatusPending = "Pending"

// Task represents a task document. UserID references the owning user and is
// immutable after creation.
type Task struct {
	ID          bson.ObjectID `bson:"_id,omitempty"`
	Description string        `bson:"description"`
	Category    string        `bson:"category"`
	Date        time.Time     `bson:"date"`
	Status      string        `bson:"status"`
	UserID      bson.ObjectID `bson:"user_id"`
	CreatedAt   time.Time     `bson:"created_at"`
}

// TaskWithOwner is a task joined with its owning user. Owner is nil when the
// referenced user document no longer exists.
type TaskWithOwner struct {
	Task  `bson:",inline"`
	Owner *User `bson:"owner"`
}

// CreateTask inserts a new task document, stamping id, creation time and the
// default status.
func (c *Client) CreateTask(ctx context.Context, task *Task) error {
	if task.ID.IsZero() {
		task.ID = bson.NewObjectID()
	}
	if task.Status == "" {
		task.Status = StatusPending
	}
	task.CreatedAt = time.Now()

	if _, err := c.tasks.InsertOne(ctx, task); err != nil {
		log.Error("failed to create task", "error", err)
		return err
	}
	return nil
}

// GetTaskByID returns the task with the given hex id, or ErrNotFound.
func (c *Client) GetTaskByID(ctx context.Context, id string) (*Task, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var task Task
	if err := c.tasks.FindOne(ctx, bson.M{"_id": oid}).Decode(&task); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		log.Error("failed to get task by id", "error", err)
		return nil, err
	}
	return &task, nil
}

// ListTasksByOwner returns all tasks owned by the given user id.
func (c *Client) ListTasksByOwner(ctx context.Context, ownerID string) ([]Task, error) {
	oid, err := bson.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, ErrNotFound
	}
	cursor, err := c.tasks.Find(ctx, bson.M{"user_id": oid})
	if err != nil {
		log.Error("failed to list tasks by owner", "error", err)
		return nil, err
	}
	var tasks []Task
	if err := cursor.All(ctx, &tasks); err != nil {
		log.Error("failed to decode tasks", "error", err)
		return nil, err
	}
	return tasks, nil
}

// ListTasksWithOwners returns every task joined with its owning user via a
// $lookup aggregation.
func (c *Client) ListTasksWithOwners(ctx context.Context) ([]TaskWithOwner, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$lookup", Value: bson.M{
			"from":         usersCollection,
			"localField":   "user_id",
			"foreignField": "_id",
			"as":           "owner",
		}}},
		{{Key: "$unwind", Value: bson.M{
			"path":                       "$owner",
			"preserveNullAndEmptyArrays": true,
		}}},
	}

	cursor, err := c.tasks.Aggregate(ctx, pipeline)
	if err != nil {
		log.Error("failed to aggregate tasks with owners", "error", err)
		return nil, err
	}
	var tasks []TaskWithOwner
	if err := cursor.All(ctx, &tasks); err != nil {
		log.Error("failed to decode tasks with owners", "error", err)
		return nil, err
	}
	return tasks, nil
}

// UpdateTaskStatus sets the status of the task with the given hex id.
func (c *Client) UpdateTaskStatus(ctx context.Context, id, status string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := c.tasks.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"status": status}},
	)
	if err != nil {
		log.Error("failed to update task status", "error", err)
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteTask removes the task with the given hex id. Returns ErrNotFound when
// no document matched.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := c.tasks.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		log.Error("failed to delete task", "error", err)
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
