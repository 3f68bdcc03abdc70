package insight

import (
	"context"
	"errors"
	"time"

	"github.com/amirasaad/spendwise/pkg/domain/insight"
	repo "github.com/amirasaad/spendwise/pkg/repository/insight"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New creates an insight repository using the provided *gorm.DB.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

func (r *repository) ListActive(
	ctx context.Context,
	userID uuid.UUID,
	now time.Time,
) ([]insight.Insight, error) {
	var rows []Insight
	if err := r.db.WithContext(
		ctx,
	).Where(
		"user_id = ? AND is_dismissed = ?",
		userID,
		false,
	).Where(
		"expires_at IS NULL OR expires_at > ?",
		now,
	).Order(
		"priority DESC",
	).Order(
		"created_at DESC",
	).Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]insight.Insight, 0, len(rows))
	for i := range rows {
		result = append(result, *mapModelToDomain(&rows[i]))
	}
	return result, nil
}

func (r *repository) Get(
	ctx context.Context,
	userID, id uuid.UUID,
) (*insight.Insight, error) {
	var row Insight
	if err := r.db.WithContext(
		ctx,
	).Where(
		"id = ? AND user_id = ?",
		id,
		userID,
	).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, insight.ErrInsightNotFound
		}
		return nil, err
	}
	return mapModelToDomain(&row), nil
}

func (r *repository) SetFlags(ctx context.Context, in *insight.Insight) error {
	res := r.db.WithContext(
		ctx,
	).Model(
		&Insight{},
	).Where(
		"id = ? AND user_id = ?",
		in.ID,
		in.UserID,
	).Updates(map[string]any{
		"is_viewed":    in.IsViewed,
		"is_dismissed": in.IsDismissed,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return insight.ErrInsightNotFound
	}
	return nil
}

func (r *repository) Delete(
	ctx context.Context,
	userID, id uuid.UUID,
) error {
	res := r.db.WithContext(
		ctx,
	).Where(
		"id = ? AND user_id = ?",
		id,
		userID,
	).Delete(&Insight{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return insight.ErrInsightNotFound
	}
	return nil
}

func (r *repository) DeleteUndismissed(
	ctx context.Context,
	userID uuid.UUID,
) (int64, error) {
	res := r.db.WithContext(
		ctx,
	).Where(
		"user_id = ? AND is_dismissed = ?",
		userID,
		false,
	).Delete(&Insight{})
	return res.RowsAffected, res.Error
}

func (r *repository) CreateBatch(
	ctx context.Context,
	insights []insight.Insight,
) error {
	if len(insights) == 0 {
		return nil
	}
	rows := make([]Insight, 0, len(insights))
	for i := range insights {
		rows = append(rows, mapDomainToModel(&insights[i]))
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

func mapDomainToModel(in *insight.Insight) Insight {
	return Insight{
		ID:          in.ID,
		UserID:      in.UserID,
		Type:        string(in.Type),
		Title:       in.Title,
		Description: in.Description,
		Action:      in.Action,
		Amount:      in.Amount,
		Category:    in.Category,
		Priority:    in.Priority,
		IsDismissed: in.IsDismissed,
		IsViewed:    in.IsViewed,
		Data:        in.Data,
		CreatedAt:   in.CreatedAt,
		ExpiresAt:   in.ExpiresAt,
	}
}

func mapModelToDomain(row *Insight) *insight.Insight {
	return &insight.Insight{
		ID:          row.ID,
		UserID:      row.UserID,
		Type:        insight.ParseType(row.Type),
		Title:       row.Title,
		Description: row.Description,
		Action:      row.Action,
		Amount:      row.Amount,
		Category:    row.Category,
		Priority:    row.Priority,
		IsDismissed: row.IsDismissed,
		IsViewed:    row.IsViewed,
		Data:        row.Data,
		CreatedAt:   row.CreatedAt,
		ExpiresAt:   row.ExpiresAt,
	}
}
