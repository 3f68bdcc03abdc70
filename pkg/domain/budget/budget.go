// Package budget contains per-category spending budgets and their status evaluation.
package budget

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/amirasaad/spendwise/pkg/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const MaxCategoryLength = 64

// DefaultAlertThreshold is the percentage of the target at which a budget is near its limit.
var DefaultAlertThreshold = decimal.NewFromInt(80)

var (
	ErrBudgetNotFound   = fmt.Errorf("budget %w", domain.ErrNotFound)
	ErrInvalidAmount    = fmt.Errorf("%w: amount must not be negative", domain.ErrValidation)
	ErrInvalidThreshold = fmt.Errorf("%w: alert threshold must be between 0 and 100", domain.ErrValidation)
	ErrInvalidPeriod    = fmt.Errorf("%w: period must be weekly, monthly or yearly", domain.ErrValidation)
	ErrCategoryRequired = fmt.Errorf("%w: category is required", domain.ErrValidation)
	ErrCategoryTooLong  = fmt.Errorf("%w: category must be at most %d characters", domain.ErrValidation, MaxCategoryLength)
	hundred             = decimal.NewFromInt(100)
)

// Budget is a spending target for one category over a recurring period.
type Budget struct {
	ID             uuid.UUID       `json:"id"`
	UserID         uuid.UUID       `json:"user_id"`
	Category       string          `json:"category"`
	Amount         decimal.Decimal `json:"amount"`
	Period         Period          `json:"period"`
	IsActive       bool            `json:"is_active"`
	AlertThreshold decimal.Decimal `json:"alert_threshold"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// New validates the input and returns an active budget.
// A nil threshold falls back to DefaultAlertThreshold.
func New(
	userID uuid.UUID,
	category string,
	amount decimal.Decimal,
	period Period,
	threshold *decimal.Decimal,
) (*Budget, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, ErrCategoryRequired
	}
	if utf8.RuneCountInString(category) > MaxCategoryLength {
		return nil, ErrCategoryTooLong
	}
	if err := validateAmount(amount); err != nil {
		return nil, err
	}
	if !period.Valid() {
		return nil, ErrInvalidPeriod
	}
	t := DefaultAlertThreshold
	if threshold != nil {
		t = *threshold
	}
	if err := validateThreshold(t); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &Budget{
		ID:             uuid.New(),
		UserID:         userID,
		Category:       category,
		Amount:         amount,
		Period:         period,
		IsActive:       true,
		AlertThreshold: t,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// Patch holds the optional fields of a partial update.
type Patch struct {
	Amount         *decimal.Decimal
	Period         *Period
	IsActive       *bool
	AlertThreshold *decimal.Decimal
}

// Apply validates and applies the patch in place.
func (b *Budget) Apply(p Patch) error {
	if p.Amount != nil {
		if err := validateAmount(*p.Amount); err != nil {
			return err
		}
	}
	if p.Period != nil && !p.Period.Valid() {
		return ErrInvalidPeriod
	}
	if p.AlertThreshold != nil {
		if err := validateThreshold(*p.AlertThreshold); err != nil {
			return err
		}
	}
	if p.Amount != nil {
		b.Amount = *p.Amount
	}
	if p.Period != nil {
		b.Period = *p.Period
	}
	if p.IsActive != nil {
		b.IsActive = *p.IsActive
	}
	if p.AlertThreshold != nil {
		b.AlertThreshold = *p.AlertThreshold
	}
	b.UpdatedAt = time.Now().UTC()
	return nil
}

func validateAmount(a decimal.Decimal) error {
	if a.IsNegative() {
		return ErrInvalidAmount
	}
	return nil
}

func validateThreshold(t decimal.Decimal) error {
	if t.IsNegative() || t.GreaterThan(hundred) {
		return ErrInvalidThreshold
	}
	return nil
}
