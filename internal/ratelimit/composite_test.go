package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLimits() Limits {
	return Limits{Global: 100, PerIP: 10, PerUser: 5, PerAgent: 30}
}

func TestComposite_AllowsWithinBudget(t *testing.T) {
	store, _ := newTestMemoryLimiter(time.Minute)
	c := NewComposite(store, testLimits())

	for i := 0; i < 5; i++ {
		require.NoError(t, c.Consume(context.Background(), "1.2.3.4", "jdoe", "agent"))
	}
}

func TestComposite_UsernameLayerRejectsFirst(t *testing.T) {
	store, _ := newTestMemoryLimiter(time.Minute)
	c := NewComposite(store, testLimits())
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, c.Consume(ctx, "1.2.3.4", "jdoe", "agent"))
	}

	err := c.Consume(ctx, "1.2.3.4", "jdoe", "agent")
	var rl *RateLimitError
	require.ErrorAs(t, err, &rl)
	assert.Equal(t, "rl:user:jdoe", rl.Key)
	assert.Positive(t, rl.MsBeforeNext)
}

func TestComposite_IPLayerCheckedBeforeUsername(t *testing.T) {
	store, _ := newTestMemoryLimiter(time.Minute)
	c := NewComposite(store, Limits{Global: 100, PerIP: 1, PerUser: 1, PerAgent: 100})
	ctx := context.Background()

	require.NoError(t, c.Consume(ctx, "1.2.3.4", "jdoe", "agent"))

	// Both the IP and username buckets are exhausted; the IP layer sits
	// earlier in the order and must be the one reported.
	err := c.Consume(ctx, "1.2.3.4", "jdoe", "agent")
	var rl *RateLimitError
	require.ErrorAs(t, err, &rl)
	assert.Equal(t, "rl:ip:1.2.3.4", rl.Key)
}

func TestComposite_UsernameIsNormalized(t *testing.T) {
	store, _ := newTestMemoryLimiter(time.Minute)
	c := NewComposite(store, Limits{Global: 100, PerIP: 100, PerUser: 2, PerAgent: 100})
	ctx := context.Background()

	require.NoError(t, c.Consume(ctx, "1.2.3.4", "JDoe", "agent"))
	require.NoError(t, c.Consume(ctx, "5.6.7.8", "  jdoe ", "agent"))

	err := c.Consume(ctx, "9.9.9.9", "JDOE", "agent")
	var rl *RateLimitError
	require.ErrorAs(t, err, &rl)
	assert.Equal(t, "rl:user:jdoe", rl.Key)
}

func TestComposite_ResetUsernameClearsOnlyThatBucket(t *testing.T) {
	store, _ := newTestMemoryLimiter(time.Minute)
	c := NewComposite(store, Limits{Global: 100, PerIP: 3, PerUser: 2, PerAgent: 100})
	ctx := context.Background()

	require.NoError(t, c.Consume(ctx, "1.2.3.4", "jdoe", "agent"))
	require.NoError(t, c.Consume(ctx, "1.2.3.4", "jdoe", "agent"))
	require.NoError(t, c.ResetUsername(ctx, "JDoe"))

	// Username bucket is fresh again; the next attempt passes it but the IP
	// bucket kept counting.
	require.NoError(t, c.Consume(ctx, "1.2.3.4", "jdoe", "agent"))

	err := c.Consume(ctx, "1.2.3.4", "jdoe", "agent")
	var rl *RateLimitError
	require.ErrorAs(t, err, &rl)
	assert.Equal(t, "rl:ip:1.2.3.4", rl.Key)
}

type failingStore struct{}

func (failingStore) Consume(context.Context, string, int) (*Result, error) {
	return nil, errors.New("backend down")
}

func (failingStore) Reset(context.Context, string) error { return nil }

func TestComposite_StoreErrorPropagates(t *testing.T) {
	c := NewComposite(failingStore{}, testLimits())

	err := c.Consume(context.Background(), "1.2.3.4", "jdoe", "agent")
	require.Error(t, err)
	var rl *RateLimitError
	assert.False(t, errors.As(err, &rl))
}

func TestNormalizeUsername(t *testing.T) {
	assert.Equal(t, "jdoe", NormalizeUsername("  JDoe "))
	assert.Equal(t, "jdoe", NormalizeUsername("jdoe"))
	assert.Equal(t, "", NormalizeUsername("   "))
}
