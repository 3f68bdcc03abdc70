package user

import (
	"context"

	"github.com/amirasaad/spendwise/pkg/domain/user"
	"github.com/google/uuid"
)

// Repository defines data access for users.
type Repository interface {
	Get(ctx context.Context, id uuid.UUID) (*user.User, error)

	// List retrieves users ordered by creation with pagination support.
	// Pages start at 1.
	List(ctx context.Context, page, pageSize int) ([]user.User, error)
}
