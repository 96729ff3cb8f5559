package cache

import (
	"context"
	"encoding/json"
	"time"

	dom "Backoffice/internal/domain"

	"github.com/redis/go-redis/v9"
)

const keyTaskList = "task:list"

// TaskCache caches the task listing in Redis.
type TaskCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewTaskCache returns a new TaskCache.
func NewTaskCache(rdb *redis.Client, ttl time.Duration) *TaskCache {
	return &TaskCache{rdb: rdb, ttl: ttl}
}

// GetList returns the cached listing or nil on miss.
func (c *TaskCache) GetList(ctx context.Context) ([]dom.Task, error) {
	b, err := c.rdb.Get(ctx, keyTaskList).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var list []dom.Task
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// SetList stores the listing in cache.
func (c *TaskCache) SetList(ctx context.Context, list []dom.Task) error {
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, keyTaskList, b, c.ttl).Err()
}

// Invalidate removes the cached listing (called on every write).
func (c *TaskCache) Invalidate(ctx context.Context) error {
	return c.rdb.Del(ctx, keyTaskList).Err()
}
