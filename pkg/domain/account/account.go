// Package account models bank connections linked through the banking provider
// and the accounts they expose.
package account

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Connection is a linked institution login (a provider "item").
// The access token is obtained by the linking flow, which lives outside this service.
type Connection struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	ItemID          string    `json:"item_id"`
	AccessToken     string    `json:"-"`
	InstitutionName string    `json:"institution_name,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Account is a bank account reachable through a Connection.
type Account struct {
	ID                uuid.UUID        `json:"id"`
	UserID            uuid.UUID        `json:"user_id"`
	ConnectionID      uuid.UUID        `json:"connection_id"`
	ProviderAccountID string           `json:"provider_account_id"`
	Name              string           `json:"name"`
	OfficialName      string           `json:"official_name,omitempty"`
	Type              string           `json:"type"`
	Subtype           string           `json:"subtype,omitempty"`
	Mask              string           `json:"mask,omitempty"`
	CurrentBalance    *decimal.Decimal `json:"current_balance,omitempty"`
	AvailableBalance  *decimal.Decimal `json:"available_balance,omitempty"`
	CurrencyCode      string           `json:"currency_code,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// Balance is a balance snapshot of one provider account.
type Balance struct {
	ProviderAccountID string
	Current           *decimal.Decimal
	Available         *decimal.Decimal
	CurrencyCode      string
}
