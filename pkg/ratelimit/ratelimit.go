// Package ratelimit defines the sliding-window limiter used for per-user quotas.
package ratelimit

import (
	"context"
	"time"
)

// Result describes the outcome of a single Allow call.
type Result struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// Limiter admits at most a fixed number of hits per key within any rolling window.
type Limiter interface {
	Allow(ctx context.Context, key string) (Result, error)
}
