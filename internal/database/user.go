package database

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// Roles a user can hold. New accounts default to RoleUser.
const (
	RoleUser  = "User"
	RoleAdmin = "Admin"
)

// User represents a user document.
// The password field always holds a bcrypt hash, never a plaintext password.
type User struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	Name      string        `bson:"name"`
	Password  string        `bson:"password"`
	Role      string        `bson:"role"`
	CreatedAt time.Time     `bson:"created_at"`
}

// CreateUser inserts a new user document. The role defaults to RoleUser when
// unset. Returns ErrDuplicate when the name is already taken.
func (c *Client) CreateUser(ctx context.Context, user *User) error {
	if user.Role == "" {
		user.Role = RoleUser
	}
	if user.ID.IsZero() {
		user.ID = bson.NewObjectID()
	}
	user.CreatedAt = time.Now()

	if _, err := c.users.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		log.Error("failed to create user", "error", err)
		return err
	}
	return nil
}

// GetUserByName returns the user with the given name, or ErrNotFound.
func (c *Client) GetUserByName(ctx context.Context, name string) (*User, error) {
	var user User
	if err := c.users.FindOne(ctx, bson.M{"name": name}).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		log.Error("failed to get user by name", "error", err)
		return nil, err
	}
	return &user, nil
}

// GetUserByID returns the user with the given hex id, or ErrNotFound.
func (c *Client) GetUserByID(ctx context.Context, id string) (*User, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var user User
	if err := c.users.FindOne(ctx, bson.M{"_id": oid}).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		log.Error("failed to get user by id", "error", err)
		return nil, err
	}
	return &user, nil
}

// UpdateUser persists the name and password of an existing user. The role is
// never updated through this path. Returns ErrDuplicate when the new name is
// already taken by another user.
func (c *Client) UpdateUser(ctx context.Context, user *User) error {
	res, err := c.users.UpdateOne(ctx,
		bson.M{"_id": user.ID},
		bson.M{"$set": bson.M{
			"name":     user.Name,
			"password": user.Password,
		}},
	)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		log.Error("failed to update user", "error", err)
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ListUsers returns all users.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	cursor, err := c.users.Find(ctx, bson.M{})
	if err != nil {
		log.Error("failed to list users", "error", err)
		return nil, err
	}
	var users []User
	if err := cursor.All(ctx, &users); err != nil {
		log.Error("failed to decode users", "error", err)
		return nil, err
	}
	return users, nil
}
