// Package ratelimit provides keyed fixed-window counters consulted before
// any database access on the sign-in path.
package ratelimit

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Result reports the outcome of consuming one attempt from a bucket.
// MsBeforeNext is meaningful only when Allowed is false.
type Result struct {
	Allowed      bool
	MsBeforeNext int64
}

// Limiter is a keyed counter store. Consume counts the attempt and reports
// whether the key is still within budget; Reset clears a key's bucket.
type Limiter interface {
	Consume(ctx context.Context, key string, limit int) (*Result, error)
	Reset(ctx context.Context, key string) error
}

// RateLimitError carries the time-until-available of the first rejecting
// layer so the handler can derive a Retry-After header.
type RateLimitError struct {
	Key          string
	MsBeforeNext int64
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded for %s, retry in %dms", e.Key, e.MsBeforeNext)
}

func globalKey() string         { return "rl:global" }
func ipKey(ip string) string    { return "rl:ip:" + ip }
func agentKey(ua string) string { return "rl:ua:" + ua }

func usernameKey(userName string) string {
	return "rl:user:" + NormalizeUsername(userName)
}

// NormalizeUsername folds a submitted username into its rate-limit form.
func NormalizeUsername(userName string) string {
	return strings.ToLower(strings.TrimSpace(userName))
}

// Limits holds the per-layer budgets of the composite.
type Limits struct {
	Global    int
	PerIP     int
	PerUser   int
	PerAgent  int
}

// Composite consults four independent buckets in a fixed order: global,
// source IP, normalized username, user agent. The first layer to reject
// short-circuits the remaining layers; callers are expected to run the
// composite before touching the database.
type Composite struct {
	store  Limiter
	limits Limits
}

func NewComposite(store Limiter, limits Limits) *Composite {
	return &Composite{store: store, limits: limits}
}

// Consume spends one attempt against every layer. On rejection it returns a
// *RateLimitError for the first exhausted bucket.
func (c *Composite) Consume(ctx context.Context, ip, userName, userAgent string) error {
	layers := []struct {
		key   string
		limit int
	}{
		{globalKey(), c.limits.Global},
		{ipKey(ip), c.limits.PerIP},
		{usernameKey(userName), c.limits.PerUser},
		{agentKey(userAgent), c.limits.PerAgent},
	}

	for _, layer := range layers {
		res, err := c.store.Consume(ctx, layer.key, layer.limit)
		if err != nil {
			return err
		}
		if !res.Allowed {
			return &RateLimitError{Key: layer.key, MsBeforeNext: res.MsBeforeNext}
		}
	}

	return nil
}

// ResetUsername clears the username bucket after a successful sign-in so a
// legitimate user is not penalized for an attacker's earlier attempts.
func (c *Composite) ResetUsername(ctx context.Context, userName string) error {
	return c.store.Reset(ctx, usernameKey(userName))
}

// window GC horizon shared by implementations.
const staleAfter = 3 * time.Minute
