package database

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/taskboard/taskboard/internal/config"
)

var (
	// ErrNotFound is returned when a requested document does not exist.
	ErrNotFound = errors.New("database: not found")
	// ErrDuplicate is returned when a unique constraint is violated.
	ErrDuplicate = errors.New("database: duplicate")
)

// DB defines the operations the rest of the application needs from the
// document store. The handler layer only ever sees this interface, so tests
// can swap in the in-memory mock.
type DB interface {
	// Users
	CreateUser(ctx context.Context, user *User) error
	GetUserByName(ctx context.Context, name string) (*User, error)
	GetUserByID(ctx context.Context, id string) (*User, error)
	UpdateUser(ctx context.Context, user *User) error
	ListUsers(ctx context.Context) ([]User, error)

	// Tasks
	CreateTask(ctx context.Context, task *Task) error
	GetTaskByID(ctx context.Context, id string) (*Task, error)
	ListTasksByOwner(ctx context.Context, ownerID string) ([]Task, error)
	ListTasksWithOwners(ctx context.Context) ([]TaskWithOwner, error)
	UpdateTaskStatus(ctx context.Context, id, status string) error
	DeleteTask(ctx context.Context, id string) error

	// Utility
	Close(ctx context.Context) error
}

var _ DB = (*Client)(nil) // Ensure Client implements DB

const (
	usersCollection = "users"
	tasksCollection = "tasks"
)

// Client wraps the mongo client and the collections used by the application.
type Client struct {
	client *mongo.Client
	users  *mongo.Collection
	tasks  *mongo.Collection
}

// New connects to MongoDB, verifies the connection and ensures the indexes
// the application relies on. The connection is established once at process
// start; there is no reconnect policy beyond what the driver provides.
func New(ctx context.Context, cfg *config.MongoConfig) (*Client, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	db := client.Database(cfg.Database)
	c := &Client{
		client: client,
		users:  db.Collection(usersCollection),
		tasks:  db.Collection(tasksCollection),
	}

	// Usernames are unique across all users.
	_, err = c.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create unique index on users: %w", err)
	}

	return c, nil
}

// Close disconnects the underlying mongo client.
func (c *Client) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}
