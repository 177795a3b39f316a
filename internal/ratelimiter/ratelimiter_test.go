package ratelimiter

import (
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestFixedWindowLimiter(t *testing.T) {
	rl := NewFixedWindowLimiter(2, time.Minute)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	ok, _ := rl.Allow("10.0.0.1")
	assert.True(t, ok)
	ok, _ = rl.Allow("10.0.0.1")
	assert.True(t, ok)

	now = now.Add(20 * time.Second)
	ok, retry := rl.Allow("10.0.0.1")
	assert.False(t, ok)
	assert.Equal(t, 40*time.Second, retry)

	ok, _ = rl.Allow("10.0.0.2")
	assert.True(t, ok, "clients are limited separately")

	now = now.Add(40 * time.Second)
	ok, _ = rl.Allow("10.0.0.1")
	assert.True(t, ok, "a new window starts after the old one ends")
}

func TestRedisFixedWindowFailsOpen(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	rl := NewRedisFixedWindow(client, 1, time.Minute, zap.NewNop().Sugar())
	for i := 0; i < 3; i++ {
		ok, retry := rl.Allow("10.0.0.1")
		assert.True(t, ok)
		assert.Zero(t, retry)
	}
}
