package cache

import (
	"context"
	"time"

	"github.com/eko/gocache/lib/v4/store"

	"github.com/taskboard/taskboard/internal/config"
	"github.com/taskboard/taskboard/internal/database"
)

// Cache key prefix for per-user task lists.
const taskListCachePrefix = "task-list-"

// TaskListCache caches a user's task list between page loads. Entries are
// keyed by the owner's user id and invalidated whenever a task belonging to
// that user is created, deleted or changes status.
type TaskListCache struct {
	cache *PrefixedCache[[]database.Task]
	ttl   time.Duration
}

// NewTaskListCache creates a task list cache with the backend selected by
// the configuration.
func NewTaskListCache(cfg *config.CacheConfig) *TaskListCache {
	ttl := 5 * time.Minute
	if cfg != nil && cfg.TTL > 0 {
		ttl = time.Duration(cfg.TTL) * time.Second
	}
	return &TaskListCache{
		cache: NewPrefixedCache[[]database.Task](newCacheInstanceByBackend(cfg), taskListCachePrefix),
		ttl:   ttl,
	}
}

// Get returns the cached task list for the given owner.
func (t *TaskListCache) Get(ctx context.Context, ownerID string) ([]database.Task, bool) {
	tasks, err := t.cache.Get(ctx, ownerID)
	if err != nil {
		return nil, false
	}
	return tasks, true
}

// Set stores the task list for the given owner.
func (t *TaskListCache) Set(ctx context.Context, ownerID string, tasks []database.Task) error {
	return t.cache.Set(ctx, ownerID, tasks, store.WithExpiration(t.ttl))
}

// Invalidate drops the cached task list for the given owner.
func (t *TaskListCache) Invalidate(ctx context.Context, ownerID string) error {
	return t.cache.Delete(ctx, ownerID)
}
