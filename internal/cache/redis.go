// Package cache provides byte caches for derived engine results.
package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is a cache backed by a Redis client. Backend failures are logged and
// treated as misses so the engine always falls back to the catalog.
type Redis struct {
	client *redis.Client
	logger *slog.Logger
}

// NewRedis creates a Redis-backed cache.
func NewRedis(client *redis.Client, logger *slog.Logger) *Redis {
	return &Redis{client: client, logger: logger}
}

// Get returns the cached value for key, if present.
func (c *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.WarnContext(ctx, "cache get failed",
				slog.String("key", key), slog.Any("error", err))
		}
		return nil, false
	}
	return raw, true
}

// Set stores value under key with the given TTL.
func (c *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "cache set failed",
			slog.String("key", key), slog.Any("error", err))
	}
}
