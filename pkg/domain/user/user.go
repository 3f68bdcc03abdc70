package user

import (
	"fmt"
	"time"

	"github.com/amirasaad/spendwise/pkg/domain"
	"github.com/google/uuid"
)

// ErrUserNotFound is returned when a user cannot be found in the repository.
var ErrUserNotFound = fmt.Errorf("user %w", domain.ErrNotFound)

// User is the owner of transactions, budgets and insights.
// Credentials are managed by the identity service that issues tokens.
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created"`
	UpdatedAt time.Time `json:"updated"`
}
