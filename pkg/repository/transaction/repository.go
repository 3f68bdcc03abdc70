package transaction

import (
	"context"
	"time"

	"github.com/amirasaad/spendwise/pkg/domain/transaction"
	"github.com/amirasaad/spendwise/pkg/dto"
	"github.com/google/uuid"
)

// Repository defines data access for transactions.
type Repository interface {
	// Create inserts a new transaction.
	Create(ctx context.Context, tx *transaction.Transaction) error

	// Update replaces every mutable field of an existing transaction.
	Update(ctx context.Context, tx *transaction.Transaction) error

	// Get returns the user's transaction by ID.
	Get(ctx context.Context, userID, id uuid.UUID) (*transaction.Transaction, error)

	// GetByExternalID returns the transaction imported with the given provider ID.
	GetByExternalID(ctx context.Context, externalID string) (*transaction.Transaction, error)

	// List returns a filtered page ordered by date desc, then created_at desc.
	List(ctx context.Context, userID uuid.UUID, filter dto.TransactionFilter) ([]transaction.Transaction, error)

	// ListBetween returns every transaction of the user dated within [start, end].
	ListBetween(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]transaction.Transaction, error)
}
