package budget

import (
	"context"
	"errors"

	"github.com/amirasaad/spendwise/pkg/domain/budget"
	repo "github.com/amirasaad/spendwise/pkg/repository/budget"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New creates a budget repository using the provided *gorm.DB.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, b *budget.Budget) error {
	row := mapDomainToModel(b)
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *repository) Update(ctx context.Context, b *budget.Budget) error {
	row := mapDomainToModel(b)
	return r.db.WithContext(ctx).Save(&row).Error
}

func (r *repository) Get(
	ctx context.Context,
	userID, id uuid.UUID,
) (*budget.Budget, error) {
	var row Budget
	if err := r.db.WithContext(
		ctx,
	).Where(
		"id = ? AND user_id = ?",
		id,
		userID,
	).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, budget.ErrBudgetNotFound
		}
		return nil, err
	}
	return mapModelToDomain(&row), nil
}

func (r *repository) List(
	ctx context.Context,
	userID uuid.UUID,
	activeOnly bool,
) ([]budget.Budget, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var rows []Budget
	if err := q.Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]budget.Budget, 0, len(rows))
	for i := range rows {
		result = append(result, *mapModelToDomain(&rows[i]))
	}
	return result, nil
}

func mapDomainToModel(b *budget.Budget) Budget {
	return Budget{
		ID:             b.ID,
		UserID:         b.UserID,
		Category:       b.Category,
		Amount:         b.Amount,
		Period:         string(b.Period),
		IsActive:       b.IsActive,
		AlertThreshold: b.AlertThreshold,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}

func mapModelToDomain(row *Budget) *budget.Budget {
	return &budget.Budget{
		ID:             row.ID,
		UserID:         row.UserID,
		Category:       row.Category,
		Amount:         row.Amount,
		Period:         budget.Period(row.Period),
		IsActive:       row.IsActive,
		AlertThreshold: row.AlertThreshold,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
}
