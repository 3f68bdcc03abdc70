package budget

import (
	"github.com/amirasaad/spendwise/pkg/domain/budget"
	"github.com/shopspring/decimal"
)

// CreateBudgetRequest is the body of POST /budgets.
type CreateBudgetRequest struct {
	Category       string           `json:"category" validate:"required,max=64"`
	Amount         *decimal.Decimal `json:"amount" validate:"required"`
	Period         string           `json:"period" validate:"omitempty,oneof=weekly monthly yearly"`
	AlertThreshold *decimal.Decimal `json:"alert_threshold,omitempty"`
}

// UpdateBudgetRequest is the body of PATCH /budgets/{id}. Omitted fields are left unchanged.
type UpdateBudgetRequest struct {
	Amount         *decimal.Decimal `json:"amount,omitempty"`
	Period         *string          `json:"period,omitempty" validate:"omitempty,oneof=weekly monthly yearly"`
	IsActive       *bool            `json:"is_active,omitempty"`
	AlertThreshold *decimal.Decimal `json:"alert_threshold,omitempty"`
}

func (r UpdateBudgetRequest) toPatch() budget.Patch {
	p := budget.Patch{
		Amount:         r.Amount,
		IsActive:       r.IsActive,
		AlertThreshold: r.AlertThreshold,
	}
	if r.Period != nil {
		period, _ := budget.ParsePeriod(*r.Period)
		p.Period = &period
	}
	return p
}
