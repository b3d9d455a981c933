package ratelimit

import (
	"context"
	"sync"
	"time"
)

type bucket struct {
	count int
	start time.Time
}

// MemoryLimiter is a process-local fixed-window counter store shared by all
// concurrent handlers. Stale buckets are garbage-collected opportunistically
// on Consume.
type MemoryLimiter struct {
	mu      sync.Mutex
	buckets map[string]bucket
	window  time.Duration
	lastGC  time.Time
	now     func() time.Time
}

func NewMemoryLimiter(window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		buckets: map[string]bucket{},
		window:  window,
		lastGC:  time.Now().UTC(),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (l *MemoryLimiter) Consume(_ context.Context, key string, limit int) (*Result, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastGC) > time.Minute {
		for k, b := range l.buckets {
			if now.Sub(b.start) > l.window+staleAfter {
				delete(l.buckets, k)
			}
		}
		l.lastGC = now
	}

	b, ok := l.buckets[key]
	if !ok || now.Sub(b.start) >= l.window {
		b = bucket{start: now}
	}
	b.count++
	l.buckets[key] = b

	// Count first, then compare, mirroring the redis variant: a zero or
	// negative limit never admits a request.
	if b.count > limit {
		return &Result{
			Allowed:      false,
			MsBeforeNext: b.start.Add(l.window).Sub(now).Milliseconds(),
		}, nil
	}

	return &Result{Allowed: true}, nil
}

func (l *MemoryLimiter) Reset(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.buckets, key)
	return nil
}
