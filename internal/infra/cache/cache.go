// Package cache keeps short-lived JSON values in Redis. A Nop cache stands
// in when Redis is not configured.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/avinashchandan12/bake-ready-core/internal/infra/metrics"
	"github.com/redis/go-redis/v9"
)

type Cache interface {
	// Get unmarshals the value into dest and reports a hit.
	Get(ctx context.Context, key string, dest any) bool
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

type Redis struct {
	rdb    *redis.Client
	prefix string
}

// Connect pings the server before returning the client.
func Connect(ctx context.Context, addr, password string, db int) (*Redis, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("cache: redis ping: %w", err)
	}
	return NewRedis(rdb), nil
}

func NewRedis(rdb *redis.Client) *Redis {
	return &Redis{rdb: rdb, prefix: "bakeready:"}
}

func (c *Redis) Get(ctx context.Context, key string, dest any) bool {
	val, err := c.rdb.Get(ctx, c.prefix+key).Bytes()
	if err != nil || json.Unmarshal(val, dest) != nil {
		metrics.CacheLookups.WithLabelValues("miss").Inc()
		return false
	}
	metrics.CacheLookups.WithLabelValues("hit").Inc()
	return true
}

func (c *Redis) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, c.prefix+key, data, ttl).Err()
}

func (c *Redis) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.prefix + k
	}
	return c.rdb.Del(ctx, full...).Err()
}

func (c *Redis) Close() error { return c.rdb.Close() }

type Nop struct{}

func (Nop) Get(context.Context, string, any) bool { return false }
func (Nop) Set(context.Context, string, any, time.Duration) error { return nil }
func (Nop) Del(context.Context, ...string) error { return nil }
