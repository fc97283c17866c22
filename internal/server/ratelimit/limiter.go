// Package ratelimit implements the Redis-backed fixed-window counter that
// gates traffic into the auth endpoints.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter counts hits per key in fixed windows. State lives entirely in
// Redis, so the limit holds across server replicas.
type Limiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
}

func NewLimiter(client *redis.Client, limit int64, window time.Duration) *Limiter {
	return &Limiter{client: client, limit: limit, window: window}
}

// Allow increments the counter for key in the current window and reports
// whether the caller is still under the limit. A Redis error is returned
// alongside allow=true; the caller decides how loudly to log it.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	k := fmt.Sprintf("ratelimit:%s", key)

	count, err := l.client.Incr(ctx, k).Result()
	if err != nil {
		return true, fmt.Errorf("redis incr: %w", err)
	}
	if count == 1 {
		if err := l.client.Expire(ctx, k, l.window).Err(); err != nil {
			return true, fmt.Errorf("redis expire: %w", err)
		}
	}

	return count <= l.limit, nil
}
