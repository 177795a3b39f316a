package ratelimiter

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const keyPrefix = "ratelimit:"

// RedisFixedWindow shares one fixed window per client across every API
// instance using the same Redis.
type RedisFixedWindow struct {
	client  *redis.Client
	limit   int
	window  time.Duration
	timeout time.Duration
	logger  *zap.SugaredLogger
}

func NewRedisFixedWindow(client *redis.Client, limit int, w time.Duration, logger *zap.SugaredLogger) *RedisFixedWindow {
	return &RedisFixedWindow{
		client:  client,
		limit:   limit,
		window:  w,
		timeout: 250 * time.Millisecond,
		logger:  logger,
	}
}

// Allow counts the request against the client's current window. If Redis
// cannot be reached the request is let through.
func (rl *RedisFixedWindow) Allow(ip string) (bool, time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), rl.timeout)
	defer cancel()

	key := keyPrefix + ip

	count, err := rl.client.Incr(ctx, key).Result()
	if err != nil {
		rl.logger.Warnw("rate limiter store unavailable, allowing request", "ip", ip, "error", err)
		return true, 0
	}
	if count == 1 {
		if err := rl.client.PExpire(ctx, key, rl.window).Err(); err != nil {
			rl.logger.Warnw("failed to set rate limit window", "ip", ip, "error", err)
		}
	}

	if count <= int64(rl.limit) {
		return true, 0
	}

	retry, err := rl.client.PTTL(ctx, key).Result()
	if err != nil || retry <= 0 {
		retry = rl.window
	}
	return false, retry
}
