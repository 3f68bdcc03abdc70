package budget

import (
	"context"

	"github.com/amirasaad/spendwise/pkg/domain/budget"
	"github.com/google/uuid"
)

// Repository defines data access for budgets.
type Repository interface {
	Create(ctx context.Context, b *budget.Budget) error
	Update(ctx context.Context, b *budget.Budget) error

	// Get returns the user's budget; budgets of other users are not found.
	Get(ctx context.Context, userID, id uuid.UUID) (*budget.Budget, error)

	// List returns the user's budgets, only active ones when activeOnly is set.
	List(ctx context.Context, userID uuid.UUID, activeOnly bool) ([]budget.Budget, error)
}
