package user

import (
	"context"
	"errors"

	"github.com/amirasaad/spendwise/pkg/domain/user"
	repo "github.com/amirasaad/spendwise/pkg/repository/user"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

func (r *repository) Get(
	ctx context.Context,
	id uuid.UUID,
) (*user.User, error) {
	var row User
	if err := r.db.WithContext(
		ctx,
	).Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrUserNotFound
		}
		return nil, err
	}
	return mapModelToDomain(&row), nil
}

func (r *repository) List(
	ctx context.Context,
	page, pageSize int,
) ([]user.User, error) {
	if page < 1 {
		page = 1
	}
	var rows []User
	if err := r.db.WithContext(
		ctx,
	).Order(
		"created_at ASC",
	).Order(
		"id ASC",
	).Offset((page - 1) * pageSize).Limit(pageSize).Find(&rows).Error; err != nil {
		return nil, err
	}

	result := make([]user.User, 0, len(rows))
	for i := range rows {
		result = append(result, *mapModelToDomain(&rows[i]))
	}
	return result, nil
}

func mapModelToDomain(row *User) *user.User {
	return &user.User{
		ID:        row.ID,
		Email:     row.Email,
		Username:  row.Username,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
