package budget

import (
	"time"

	"github.com/amirasaad/spendwise/pkg/domain"
	"github.com/shopspring/decimal"
)

// Status is a point-in-time evaluation of a budget against its spend.
type Status struct {
	Budget          *Budget         `json:"budget"`
	Spent           decimal.Decimal `json:"spent"`
	Remaining       decimal.Decimal `json:"remaining"`
	PercentageUsed  decimal.Decimal `json:"percentage_used"`
	IsOverBudget    bool            `json:"is_over_budget"`
	IsNearThreshold bool            `json:"is_near_threshold"`
	PeriodStart     time.Time       `json:"period_start"`
	PeriodEnd       time.Time       `json:"period_end"`
}

// Evaluate compares spent, a non-negative magnitude, with the budget target
// over the given window.
func Evaluate(b *Budget, spent decimal.Decimal, window domain.DateRange) Status {
	remaining := b.Amount.Sub(spent)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	pct := decimal.Zero
	if !b.Amount.IsZero() {
		pct = spent.Div(b.Amount).Mul(hundred)
	}
	return Status{
		Budget:          b,
		Spent:           spent,
		Remaining:       remaining,
		PercentageUsed:  pct.Round(2),
		IsOverBudget:    spent.GreaterThan(b.Amount),
		IsNearThreshold: pct.GreaterThanOrEqual(b.AlertThreshold),
		PeriodStart:     window.Start,
		PeriodEnd:       window.End,
	}
}
