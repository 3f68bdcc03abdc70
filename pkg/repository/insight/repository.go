package insight

import (
	"context"
	"time"

	"github.com/amirasaad/spendwise/pkg/domain/insight"
	"github.com/google/uuid"
)

// Repository defines data access for insights.
type Repository interface {
	// ListActive returns non-dismissed, non-expired insights ordered by
	// priority desc, then created_at desc.
	ListActive(ctx context.Context, userID uuid.UUID, now time.Time) ([]insight.Insight, error)

	Get(ctx context.Context, userID, id uuid.UUID) (*insight.Insight, error)

	// SetFlags persists the viewed and dismissed flags.
	SetFlags(ctx context.Context, in *insight.Insight) error

	Delete(ctx context.Context, userID, id uuid.UUID) error

	// DeleteUndismissed removes every insight of the user that was not dismissed.
	DeleteUndismissed(ctx context.Context, userID uuid.UUID) (int64, error)

	CreateBatch(ctx context.Context, insights []insight.Insight) error
}
