package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestNop(t *testing.T) {
	var c Cache = Nop{}
	ctx := context.Background()
	assert.NoError(t, c.Set(ctx, "k", 1, time.Minute))
	var v int
	assert.False(t, c.Get(ctx, "k", &v))
	assert.NoError(t, c.Del(ctx, "k"))
}

func TestRedis_UnreachableIsAMiss(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	c := NewRedis(rdb)
	defer c.Close()

	var v map[string]int
	assert.False(t, c.Get(context.Background(), "dashboard", &v))
	assert.NoError(t, c.Del(context.Background()))
}

func TestConnect_FailsWithoutServer(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	_, err := Connect(ctx, "127.0.0.1:1", "", 0)
	assert.Error(t, err)
}
