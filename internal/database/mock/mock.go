package mock

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/taskboard/taskboard/internal/database"
)

var _ database.DB = (*MockDB)(nil)

// MockDB is an in-memory implementation of database.DB for testing.
type MockDB struct {
	mu sync.RWMutex

	users map[string]*database.User
	tasks map[string]*database.Task

	// Error simulation
	CreateUserError          error
	GetUserByNameError       error
	GetUserByIDError         error
	UpdateUserError          error
	ListUsersError           error
	CreateTaskError          error
	GetTaskByIDError         error
	ListTasksByOwnerError    error
	ListTasksWithOwnersError error
	UpdateTaskStatusError    error
	DeleteTaskError          error
}

// NewMockDB creates a new MockDB instance.
func NewMockDB() *MockDB {
	return &MockDB{
		users: make(map[string]*database.User),
		tasks: make(map[string]*database.Task),
	}
}

// Reset clears all data and errors from the mock database.
func (m *MockDB) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.users = make(map[string]*database.User)
	m.tasks = make(map[string]*database.Task)

	m.CreateUserError = nil
	m.GetUserByNameError = nil
	m.GetUserByIDError = nil
	m.UpdateUserError = nil
	m.ListUsersError = nil
	m.CreateTaskError = nil
	m.GetTaskByIDError = nil
	m.ListTasksByOwnerError = nil
	m.ListTasksWithOwnersError = nil
	m.UpdateTaskStatusError = nil
	m.DeleteTaskError = nil
}

// User operations

func (m *MockDB) CreateUser(ctx context.Context, user *database.User) error {
	if m.CreateUserError != nil {
		return m.CreateUserError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.users {
		if existing.Name == user.Name {
			return database.ErrDuplicate
		}
	}

	if user.Role == "" {
		user.Role = database.RoleUser
	}
	if user.ID.IsZero() {
		user.ID = bson.NewObjectID()
	}
	user.CreatedAt = time.Now()

	clone := *user
	m.users[user.ID.Hex()] = &clone
	return nil
}

func (m *MockDB) GetUserByName(ctx context.Context, name string) (*database.User, error) {
	if m.GetUserByNameError != nil {
		return nil, m.GetUserByNameError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, user := range m.users {
		if user.Name == name {
			clone := *user
			return &clone, nil
		}
	}
	return nil, database.ErrNotFound
}

func (m *MockDB) GetUserByID(ctx context.Context, id string) (*database.User, error) {
	if m.GetUserByIDError != nil {
		return nil, m.GetUserByIDError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.users[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (m *MockDB) UpdateUser(ctx context.Context, user *database.User) error {
	if m.UpdateUserError != nil {
		return m.UpdateUserError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.users[user.ID.Hex()]
	if !ok {
		return database.ErrNotFound
	}
	for id, other := range m.users {
		if id != user.ID.Hex() && other.Name == user.Name {
			return database.ErrDuplicate
		}
	}
	existing.Name = user.Name
	existing.Password = user.Password
	return nil
}

func (m *MockDB) ListUsers(ctx context.Context) ([]database.User, error) {
	if m.ListUsersError != nil {
		return nil, m.ListUsersError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	users := make([]database.User, 0, len(m.users))
	for _, user := range m.users {
		users = append(users, *user)
	}
	return users, nil
}

// Task operations

func (m *MockDB) CreateTask(ctx context.Context, task *database.Task) error {
	if m.CreateTaskError != nil {
		return m.CreateTaskError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if task.ID.IsZero() {
		task.ID = bson.NewObjectID()
	}
	if task.Status == "" {
		task.Status = database.StatusPending
	}
	task.CreatedAt = time.Now()

	clone := *task
	m.tasks[task.ID.Hex()] = &clone
	return nil
}

func (m *MockDB) GetTaskByID(ctx context.Context, id string) (*database.Task, error) {
	if m.GetTaskByIDError != nil {
		return nil, m.GetTaskByIDError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	task, ok := m.tasks[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	clone := *task
	return &clone, nil
}

func (m *MockDB) ListTasksByOwner(ctx context.Context, ownerID string) ([]database.Task, error) {
	if m.ListTasksByOwnerError != nil {
		return nil, m.ListTasksByOwnerError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var tasks []database.Task
	for _, task := range m.tasks {
		if task.UserID.Hex() == ownerID {
			tasks = append(tasks, *task)
		}
	}
	return tasks, nil
}

func (m *MockDB) ListTasksWithOwners(ctx context.Context) ([]database.TaskWithOwner, error) {
	if m.ListTasksWithOwnersError != nil {
		return nil, m.ListTasksWithOwnersError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var tasks []database.TaskWithOwner
	for _, task := range m.tasks {
		joined := database.TaskWithOwner{Task: *task}
		if owner, ok := m.users[task.UserID.Hex()]; ok {
			clone := *owner
			joined.Owner = &clone
		}
		tasks = append(tasks, joined)
	}
	return tasks, nil
}

func (m *MockDB) UpdateTaskStatus(ctx context.Context, id, status string) error {
	if m.UpdateTaskStatusError != nil {
		return m.UpdateTaskStatusError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	task, ok := m.tasks[id]
	if !ok {
		return database.ErrNotFound
	}
	task.Status = status
	return nil
}

func (m *MockDB) DeleteTask(ctx context.Context, id string) error {
	if m.DeleteTaskError != nil {
		return m.DeleteTaskError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.tasks[id]; !ok {
		return database.ErrNotFound
	}
	delete(m.tasks, id)
	return nil
}

// Utility

func (m *MockDB) Close(ctx context.Context) error { return nil }
