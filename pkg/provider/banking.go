package provider

import (
	"context"
	"time"
)

// PersonalFinanceCategory is the provider's two-level spending taxonomy.
type PersonalFinanceCategory struct {
	Primary  string `json:"primary"`
	Detailed string `json:"detailed"`
}

// BankTransaction is a transaction as reported by the banking provider.
// Amount is positive for money leaving the account.
type BankTransaction struct {
	TransactionID           string
	AccountID               string
	Amount                  float64
	Date                    time.Time
	Name                    string
	MerchantName            string
	Category                []string
	PersonalFinanceCategory *PersonalFinanceCategory
	Pending                 bool
}

// BankAccount is an account of a linked connection with its latest balances.
// Balances are nil when the provider does not report them.
type BankAccount struct {
	AccountID        string
	Name             string
	OfficialName     string
	Type             string
	Subtype          string
	Mask             string
	CurrentBalance   *float64
	AvailableBalance *float64
	CurrencyCode     string
}

// BankingProvider fetches transactions and accounts for a linked connection.
// Non-2xx responses and timeouts are returned as errors.
type BankingProvider interface {
	// FetchTransactions returns every transaction dated within [start, end].
	FetchTransactions(ctx context.Context, accessToken string, start, end time.Time) ([]BankTransaction, error)

	// FetchAccounts returns the connection's accounts and their balances.
	FetchAccounts(ctx context.Context, accessToken string) ([]BankAccount, error)
}
