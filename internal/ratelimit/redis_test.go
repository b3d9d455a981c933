package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisLimiter(t *testing.T) (*RedisLimiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisLimiter(client, time.Minute), mr
}

func TestRedisLimiter_AllowsUpToLimit(t *testing.T) {
	l, _ := newTestRedisLimiter(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		res, err := l.Consume(ctx, "k", 3)
		require.NoError(t, err)
		assert.True(t, res.Allowed, "attempt %d", i+1)
	}

	res, err := l.Consume(ctx, "k", 3)
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Positive(t, res.MsBeforeNext)
	assert.LessOrEqual(t, res.MsBeforeNext, int64(60_000))
}

func TestRedisLimiter_WindowExpiresWithTTL(t *testing.T) {
	l, mr := newTestRedisLimiter(t)
	ctx := context.Background()

	_, err := l.Consume(ctx, "k", 1)
	require.NoError(t, err)

	res, err := l.Consume(ctx, "k", 1)
	require.NoError(t, err)
	require.False(t, res.Allowed)

	mr.FastForward(time.Minute + time.Second)

	res, err = l.Consume(ctx, "k", 1)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}

func TestRedisLimiter_Reset(t *testing.T) {
	l, _ := newTestRedisLimiter(t)
	ctx := context.Background()

	_, err := l.Consume(ctx, "k", 1)
	require.NoError(t, err)
	require.NoError(t, l.Reset(ctx, "k"))

	res, err := l.Consume(ctx, "k", 1)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}

func TestRedisLimiter_KeysAreIndependent(t *testing.T) {
	l, _ := newTestRedisLimiter(t)
	ctx := context.Background()

	_, err := l.Consume(ctx, "a", 1)
	require.NoError(t, err)

	res, err := l.Consume(ctx, "b", 1)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}

func TestRedisLimiter_BackendDownSurfacesError(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	l := NewRedisLimiter(client, time.Minute)

	mr.Close()

	_, err := l.Consume(context.Background(), "k", 1)
	assert.Error(t, err)
}
