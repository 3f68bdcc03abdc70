package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newTestLimiter(t *testing.T, limit int, window time.Duration) (*MemoryLimiter, *fakeClock) {
	t.Helper()
	l, err := NewMemoryLimiter(limit, window, 1000)
	require.NoError(t, err)
	t.Cleanup(l.Close)
	clock := &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	l.now = clock.Now
	return l, clock
}

func TestMemoryLimiter_SlidingWindow(t *testing.T) {
	ctx := context.Background()
	l, clock := newTestLimiter(t, 5, time.Hour)

	for i := 0; i < 5; i++ {
		res, err := l.Allow(ctx, "user-1")
		require.NoError(t, err)
		assert.True(t, res.Allowed, "request %d", i+1)
		assert.Equal(t, 4-i, res.Remaining)
		clock.Advance(time.Minute)
	}

	res, err := l.Allow(ctx, "user-1")
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, 55*time.Minute, res.RetryAfter)

	// other users are independent
	res, err = l.Allow(ctx, "user-2")
	require.NoError(t, err)
	assert.True(t, res.Allowed)

	// the first hit leaves the window after one hour
	clock.Advance(55 * time.Minute)
	res, err = l.Allow(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, res.Allowed)

	res, err = l.Allow(ctx, "user-1")
	require.NoError(t, err)
	assert.False(t, res.Allowed)
}

func TestMemoryLimiter_Concurrent(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLimiter(t, 5, time.Hour)

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := l.Allow(ctx, "user-1")
			if err == nil && res.Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 5, allowed)
}

func TestNewMemoryLimiter_Invalid(t *testing.T) {
	_, err := NewMemoryLimiter(0, time.Hour, 10)
	assert.Error(t, err)
	_, err = NewMemoryLimiter(5, 0, 10)
	assert.Error(t, err)
}
