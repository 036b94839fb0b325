package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"home_automation/internal/models"
)

const latestKey = "audit:latest"

// RedisLatest keeps the most recent line per event kind in one Redis hash.
type RedisLatest struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisLatest(rdb *redis.Client, ttl time.Duration) *RedisLatest {
	return &RedisLatest{rdb: rdb, ttl: ttl}
}

func (c *RedisLatest) Put(ctx context.Context, kind models.EventKind, line string) error {
	pipe := c.rdb.TxPipeline()
	pipe.HSet(ctx, latestKey, string(kind), line)
	if c.ttl > 0 {
		pipe.Expire(ctx, latestKey, c.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis put latest %s: %w", kind, err)
	}
	return nil
}

func (c *RedisLatest) All(ctx context.Context) (map[models.EventKind]string, error) {
	raw, err := c.rdb.HGetAll(ctx, latestKey).Result()
	if err != nil {
		return nil, fmt.Errorf("redis get latest: %w", err)
	}
	out := make(map[models.EventKind]string, len(raw))
	for k, v := range raw {
		out[models.EventKind(k)] = v
	}
	return out, nil
}

// MemoryLatest is used when no Redis address is configured.
type MemoryLatest struct {
	mu    sync.RWMutex
	lines map[models.EventKind]string
}

func NewMemoryLatest() *MemoryLatest {
	return &MemoryLatest{lines: make(map[models.EventKind]string)}
}

func (c *MemoryLatest) Put(_ context.Context, kind models.EventKind, line string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines[kind] = line
	return nil
}

func (c *MemoryLatest) All(context.Context) (map[models.EventKind]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[models.EventKind]string, len(c.lines))
	for k, v := range c.lines {
		out[k] = v
	}
	return out, nil
}
