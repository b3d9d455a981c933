package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter keeps fixed-window counters in Redis so the budget is shared
// across service instances.
type RedisLimiter struct {
	redis  redis.UniversalClient
	window time.Duration
}

func NewRedisLimiter(client redis.UniversalClient, window time.Duration) *RedisLimiter {
	return &RedisLimiter{redis: client, window: window}
}

func (l *RedisLimiter) Consume(ctx context.Context, key string, limit int) (*Result, error) {
	count, err := l.redis.Incr(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("rate limit backend unavailable: %w", err)
	}

	// Fixed-window semantics: the TTL is set only for the first hit.
	if count == 1 {
		if err := l.redis.Expire(ctx, key, l.window).Err(); err != nil {
			return nil, fmt.Errorf("rate limit backend unavailable: %w", err)
		}
	}

	if count > int64(limit) {
		ttl, err := l.redis.PTTL(ctx, key).Result()
		if err != nil {
			return nil, fmt.Errorf("rate limit backend unavailable: %w", err)
		}
		if ttl < 0 {
			ttl = l.window
		}
		return &Result{Allowed: false, MsBeforeNext: ttl.Milliseconds()}, nil
	}

	return &Result{Allowed: true}, nil
}

func (l *RedisLimiter) Reset(ctx context.Context, key string) error {
	if err := l.redis.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("rate limit backend unavailable: %w", err)
	}
	return nil
}
