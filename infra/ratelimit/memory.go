package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/amirasaad/spendwise/pkg/ratelimit"
	"github.com/dgraph-io/ristretto"
)

// MemoryLimiter keeps sliding windows in a bounded in-process cache.
// State is lost on restart.
type MemoryLimiter struct {
	mu     sync.Mutex
	cache  *ristretto.Cache
	limit  int
	window time.Duration
	now    func() time.Time
}

type hits struct {
	at []time.Time
}

// NewMemoryLimiter allows limit hits per key in any window, tracking at most maxKeys keys.
func NewMemoryLimiter(limit int, window time.Duration, maxKeys int64) (*MemoryLimiter, error) {
	if limit <= 0 || window <= 0 {
		return nil, fmt.Errorf("invalid rate limit %d per %s", limit, window)
	}
	if maxKeys <= 0 {
		maxKeys = 100_000
	}
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters:        maxKeys * 10,
		MaxCost:            maxKeys,
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("create rate limit cache: %w", err)
	}
	return &MemoryLimiter{
		cache:  cache,
		limit:  limit,
		window: window,
		now:    time.Now,
	}, nil
}

// Allow implements ratelimit.Limiter.
func (l *MemoryLimiter) Allow(_ context.Context, key string) (ratelimit.Result, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	h := &hits{}
	if v, ok := l.cache.Get(key); ok {
		h = v.(*hits)
	}

	cutoff := now.Add(-l.window)
	kept := h.at[:0]
	for _, t := range h.at {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	h.at = kept

	if len(h.at) >= l.limit {
		return ratelimit.Result{
			Allowed:    false,
			Remaining:  0,
			RetryAfter: h.at[0].Add(l.window).Sub(now),
		}, nil
	}

	h.at = append(h.at, now)
	l.cache.SetWithTTL(key, h, 1, l.window)
	l.cache.Wait()
	return ratelimit.Result{Allowed: true, Remaining: l.limit - len(h.at)}, nil
}

// Close releases the cache goroutines.
func (l *MemoryLimiter) Close() {
	l.cache.Close()
}
