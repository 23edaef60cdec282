// Package cache provides a best-effort read-through cache over Redis, with a
// no-op fallback so environments without a cache backend behave identically
// minus the speedup.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"hirewatch/internal/model"
)

// Ensure both implementations satisfy model.Cache.
var (
	_ model.Cache = (*RedisCache)(nil)
	_ model.Cache = (*NopCache)(nil)
)

// RedisCache is a model.Cache backed by a Redis server. Backend failures
// never propagate: Get failures count as misses, Set/Delete failures are
// logged and dropped.
type RedisCache struct {
	rdb    *redis.Client
	logger *slog.Logger
}

// New connects to Redis at addr and verifies the connection with a ping.
// If the server is unreachable it logs a warning and returns a NopCache, so
// callers never branch on cache availability.
func New(ctx context.Context, addr string, db int, logger *slog.Logger) model.Cache {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unavailable, caching disabled", "addr", addr, "error", err)
		_ = rdb.Close()
		return NewNopCache()
	}

	logger.Info("connected to redis", "addr", addr, "db", db)
	return &RedisCache{rdb: rdb, logger: logger}
}

// Get returns the cached value for key, or a miss. Backend errors are misses.
func (c *RedisCache) Get(ctx context.Context, key string) (string, bool) {
	val, err := c.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false
	}
	if err != nil {
		c.logger.Warn("cache get failed, treating as miss", "key", key, "error", err)
		return "", false
	}
	return val, true
}

// Set stores value under key with the given TTL. Failures are logged and ignored.
func (c *RedisCache) Set(ctx context.Context, key, value string, ttl time.Duration) {
	if err := c.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		c.logger.Warn("cache set failed", "key", key, "error", err)
	}
}

// Delete removes key. Failures are logged and ignored.
func (c *RedisCache) Delete(ctx context.Context, key string) {
	if err := c.rdb.Del(ctx, key).Err(); err != nil {
		c.logger.Warn("cache delete failed", "key", key, "error", err)
	}
}

// Close releases the underlying Redis connection.
func (c *RedisCache) Close() error {
	return c.rdb.Close()
}

// NopCache is a model.Cache that caches nothing: every Get is a miss and
// writes are dropped. It stands in when no cache backend is configured.
type NopCache struct{}

func NewNopCache() *NopCache { return &NopCache{} }

func (NopCache) Get(context.Context, string) (string, bool)          { return "", false }
func (NopCache) Set(context.Context, string, string, time.Duration)  {}
func (NopCache) Delete(context.Context, string)                      {}
