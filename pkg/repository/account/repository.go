package account

import (
	"context"

	"github.com/amirasaad/spendwise/pkg/domain/account"
	"github.com/google/uuid"
)

// Repository defines data access for linked connections and their accounts.
type Repository interface {
	ListConnections(ctx context.Context, userID uuid.UUID) ([]account.Connection, error)

	// GetByProviderAccountID returns the user's account mapped to a provider account ID.
	GetByProviderAccountID(ctx context.Context, userID uuid.UUID, providerAccountID string) (*account.Account, error)

	ListAccounts(ctx context.Context, userID uuid.UUID) ([]account.Account, error)

	// UpdateBalance stores the latest balances of the user's account.
	// It returns domain.ErrNotFound when the account is not mapped.
	UpdateBalance(ctx context.Context, userID uuid.UUID, balance account.Balance) error
}
