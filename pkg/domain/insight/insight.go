// Package insight defines generated financial insights and their closed set of types.
package insight

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/amirasaad/spendwise/pkg/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Type classifies an insight.
type Type string

const (
	TypeAlert   Type = "alert"
	TypeWarning Type = "warning"
	TypeInfo    Type = "info"
	TypeSuccess Type = "success"
	TypeTip     Type = "tip"
)

// Types lists every insight type in a fixed order.
var Types = []Type{TypeAlert, TypeWarning, TypeInfo, TypeSuccess, TypeTip}

const (
	MinPriority     = 1
	MaxPriority     = 10
	DefaultPriority = 5
)

// Column widths of the stored text fields.
const (
	MaxTitleLen    = 255
	MaxActionLen   = 255
	MaxCategoryLen = 128
)

// MaxAmount is the largest magnitude an insight amount can hold.
var MaxAmount = decimal.RequireFromString("999999999999.99")

var ErrInsightNotFound = fmt.Errorf("insight %w", domain.ErrNotFound)

// ParseType coerces s to a known type; anything unrecognized becomes TypeInfo.
func ParseType(s string) Type {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Types {
		if t == known {
			return t
		}
	}
	return TypeInfo
}

// ClampPriority bounds p to [MinPriority, MaxPriority].
func ClampPriority(p int) int {
	if p < MinPriority {
		return MinPriority
	}
	if p > MaxPriority {
		return MaxPriority
	}
	return p
}

// Insight is a natural-language observation about a user's finances.
type Insight struct {
	ID          uuid.UUID        `json:"id"`
	UserID      uuid.UUID        `json:"user_id"`
	Type        Type             `json:"type"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Action      string           `json:"action,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Category    string           `json:"category,omitempty"`
	Priority    int              `json:"priority"`
	IsDismissed bool             `json:"is_dismissed"`
	IsViewed    bool             `json:"is_viewed"`
	Data        map[string]any   `json:"data,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	ExpiresAt   *time.Time       `json:"expires_at,omitempty"`
}

// Magnitude returns the amount or zero when absent.
func (i Insight) Magnitude() decimal.Decimal {
	if i.Amount == nil {
		return decimal.Zero
	}
	return i.Amount.Abs()
}

// IsActive reports whether the insight is neither dismissed nor expired at now.
func (i Insight) IsActive(now time.Time) bool {
	if i.IsDismissed {
		return false
	}
	return i.ExpiresAt == nil || i.ExpiresAt.After(now)
}

// Truncate shortens s to at most n runes.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return strings.TrimSpace(string([]rune(s)[:n]))
}

// StorableAmount returns the magnitude of d rounded to cents, or false when
// it exceeds MaxAmount.
func StorableAmount(d decimal.Decimal) (*decimal.Decimal, bool) {
	a := d.Abs().Round(2)
	if a.GreaterThan(MaxAmount) {
		return nil, false
	}
	return &a, true
}

// AmountOf returns a pointer to the absolute value of d.
func AmountOf(d decimal.Decimal) *decimal.Decimal {
	a := d.Abs()
	return &a
}
