// Package ratelimit implements a fixed-window counter over Redis, used to
// throttle OTP email sends per recipient.
package ratelimit

import (
	"context"
	"time"

	pkgredis "pasahero-backend/pkg/redis"

	"github.com/redis/go-redis/v9"
)

type Limiter struct {
	client *redis.Client
	prefix string
	limit  int
	window time.Duration
}

// NewLimiter allows limit hits per key per window.
func NewLimiter(client *pkgredis.Client, prefix string, limit int, window time.Duration) *Limiter {
	return &Limiter{
		client: client.GetClient(),
		prefix: prefix,
		limit:  limit,
		window: window,
	}
}

// Allow records a hit for key and reports whether it is within the limit.
// When denied, retryAfter holds the time until the window resets. The
// limiter fails open: a Redis error allows the request.
func (l *Limiter) Allow(key string) (allowed bool, retryAfter time.Duration, err error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	redisKey := l.prefix + key

	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return true, 0, err
	}

	// First hit in the window starts the clock.
	if count == 1 {
		if err := l.client.Expire(ctx, redisKey, l.window).Err(); err != nil {
			return true, 0, err
		}
	}

	if count <= int64(l.limit) {
		return true, 0, nil
	}

	ttl, err := l.client.TTL(ctx, redisKey).Result()
	if err != nil || ttl < 0 {
		ttl = l.window
	}

	return false, ttl, nil
}
