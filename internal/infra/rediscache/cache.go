// Package rediscache implements the variable cache port with Redis.
// The cache is best effort: an unreachable server degrades to misses.
package rediscache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/duartqx/aws-devops-open-scripts/internal/domain"
)

// connectTimeout keeps a missing local Redis from stalling the command.
const connectTimeout = 1 * time.Second

// Ensure Cache implements domain.VariableCache.
var _ domain.VariableCache = (*Cache)(nil)

// Cache is a read-through cache for environment variables.
type Cache struct {
	rdb *redis.Client
}

// New creates a Cache for the given address and database.
func New(cfg domain.CacheConfig) *Cache {
	return &Cache{
		rdb: redis.NewClient(&redis.Options{
			Addr:        cfg.Addr,
			DB:          cfg.DB,
			DialTimeout: connectTimeout,
		}),
	}
}

// Get returns the cached variables for key, or ok=false on miss or any
// cache failure.
func (c *Cache) Get(ctx context.Context, key string) (map[string]string, bool) {
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		// redis.Nil and connection errors are both plain misses.
		return nil, false
	}
	var vars map[string]string
	if err := json.Unmarshal(data, &vars); err != nil {
		return nil, false
	}
	return vars, true
}

// Set stores variables under key with a TTL. Failures are swallowed;
// the source of truth is the provider API.
func (c *Cache) Set(ctx context.Context, key string, vars map[string]string, ttl time.Duration) {
	data, err := json.Marshal(vars)
	if err != nil {
		return
	}
	_ = c.rdb.Set(ctx, key, data, ttl).Err()
}
