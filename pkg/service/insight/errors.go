package insight

import (
	"fmt"
	"time"

	"github.com/amirasaad/spendwise/pkg/domain"
)

// RateLimitError reports an exhausted on-demand quota.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("insight generation rate limited, retry after %s", e.RetryAfter.Round(time.Second))
}

func (e *RateLimitError) Unwrap() error { return domain.ErrRateLimited }
