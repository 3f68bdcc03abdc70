// Package transaction holds the bank transaction entity and its polarity rules.
//
// Amounts use accounting polarity: negative is an expense (cash outflow),
// positive is income (cash inflow). Zero counts as neither.
package transaction

import (
	"fmt"
	"strings"
	"time"

	"github.com/amirasaad/spendwise/pkg/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	// Uncategorized replaces an empty primary category for display and aggregation.
	Uncategorized = "Uncategorized"
	// UnknownCounterparty is used when neither merchant nor name is available.
	UnknownCounterparty = "Unknown"
)

// Direction labels the flow of money for a transaction.
type Direction string

const (
	DirectionExpense Direction = "expense"
	DirectionIncome  Direction = "income"
	DirectionNeutral Direction = "neutral"
)

var ErrTransactionNotFound = fmt.Errorf("transaction %w", domain.ErrNotFound)

// Transaction is a single bank transaction imported from the banking provider.
type Transaction struct {
	ID              uuid.UUID       `json:"id"`
	UserID          uuid.UUID       `json:"user_id"`
	AccountID       uuid.UUID       `json:"account_id"`
	ExternalID      *string         `json:"external_id,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	Date            time.Time       `json:"date"`
	Name            string          `json:"name"`
	MerchantName    string          `json:"merchant_name,omitempty"`
	Categories      []string        `json:"category"`
	PrimaryCategory string          `json:"primary_category,omitempty"`
	Pending         bool            `json:"pending"`
	Note            string          `json:"note,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func (t Transaction) IsExpense() bool { return t.Amount.IsNegative() }

func (t Transaction) IsIncome() bool { return t.Amount.IsPositive() }

// Magnitude is the absolute value of the amount.
func (t Transaction) Magnitude() decimal.Decimal { return t.Amount.Abs() }

func (t Transaction) Direction() Direction {
	switch {
	case t.IsExpense():
		return DirectionExpense
	case t.IsIncome():
		return DirectionIncome
	default:
		return DirectionNeutral
	}
}

// DisplayCategory returns the primary category or Uncategorized when empty.
func (t Transaction) DisplayCategory() string {
	if c := strings.TrimSpace(t.PrimaryCategory); c != "" {
		return c
	}
	return Uncategorized
}

// Counterparty returns the merchant name, falling back to the display name.
func (t Transaction) Counterparty() string {
	if m := strings.TrimSpace(t.MerchantName); m != "" {
		return m
	}
	if n := strings.TrimSpace(t.Name); n != "" {
		return n
	}
	return UnknownCounterparty
}
