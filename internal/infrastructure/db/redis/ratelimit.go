package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter implements a fixed-window counter per key.
// Key format: rl:<scope>:<key>
type RateLimiter struct {
	client *redis.Client
}

func NewRateLimiter(client *redis.Client) *RateLimiter {
	return &RateLimiter{client: client}
}

// Allow increments the counter for (scope, key) and reports whether the call
// is within limit for the current window. The window TTL is set on the first
// hit only.
func (l *RateLimiter) Allow(ctx context.Context, scope, key string, limit int64, window time.Duration) (bool, error) {
	k := fmt.Sprintf("rl:%s:%s", scope, key)

	n, err := l.client.Incr(ctx, k).Result()
	if err != nil {
		return false, fmt.Errorf("rate limit incr: %w", err)
	}
	if n == 1 {
		if err := l.client.Expire(ctx, k, window).Err(); err != nil {
			return false, fmt.Errorf("rate limit expire: %w", err)
		}
	}
	return n <= limit, nil
}
