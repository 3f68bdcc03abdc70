package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirasaad/spendwise/pkg/domain"
	"github.com/amirasaad/spendwise/pkg/domain/account"
	repo "github.com/amirasaad/spendwise/pkg/repository/account"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var errAccountNotFound = fmt.Errorf("account %w", domain.ErrNotFound)

type repository struct {
	db *gorm.DB
}

// New creates a connection/account repository using the provided *gorm.DB.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

func (r *repository) ListConnections(
	ctx context.Context,
	userID uuid.UUID,
) ([]account.Connection, error) {
	var rows []Connection
	if err := r.db.WithContext(
		ctx,
	).Where(
		"user_id = ?",
		userID,
	).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]account.Connection, 0, len(rows))
	for _, row := range rows {
		result = append(result, account.Connection{
			ID:              row.ID,
			UserID:          row.UserID,
			ItemID:          row.ItemID,
			AccessToken:     row.AccessToken,
			InstitutionName: row.InstitutionName,
			CreatedAt:       row.CreatedAt,
			UpdatedAt:       row.UpdatedAt,
		})
	}
	return result, nil
}

func (r *repository) GetByProviderAccountID(
	ctx context.Context,
	userID uuid.UUID,
	providerAccountID string,
) (*account.Account, error) {
	var row Account
	if err := r.db.WithContext(
		ctx,
	).Where(
		"user_id = ? AND provider_account_id = ?",
		userID,
		providerAccountID,
	).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errAccountNotFound
		}
		return nil, err
	}
	return mapAccount(&row), nil
}

func (r *repository) ListAccounts(
	ctx context.Context,
	userID uuid.UUID,
) ([]account.Account, error) {
	var rows []Account
	if err := r.db.WithContext(
		ctx,
	).Where(
		"user_id = ?",
		userID,
	).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]account.Account, 0, len(rows))
	for i := range rows {
		result = append(result, *mapAccount(&rows[i]))
	}
	return result, nil
}

func (r *repository) UpdateBalance(
	ctx context.Context,
	userID uuid.UUID,
	balance account.Balance,
) error {
	res := r.db.WithContext(ctx).Model(&Account{}).Where(
		"user_id = ? AND provider_account_id = ?",
		userID,
		balance.ProviderAccountID,
	).Updates(map[string]any{
		"current_balance":   balance.Current,
		"available_balance": balance.Available,
		"currency_code":     balance.CurrencyCode,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errAccountNotFound
	}
	return nil
}

func mapAccount(row *Account) *account.Account {
	return &account.Account{
		ID:                row.ID,
		UserID:            row.UserID,
		ConnectionID:      row.ConnectionID,
		ProviderAccountID: row.ProviderAccountID,
		Name:              row.Name,
		OfficialName:      row.OfficialName,
		Type:              row.Type,
		Subtype:           row.Subtype,
		Mask:              row.Mask,
		CurrentBalance:    row.CurrentBalance,
		AvailableBalance:  row.AvailableBalance,
		CurrencyCode:      row.CurrencyCode,
		CreatedAt:         row.CreatedAt,
		UpdatedAt:         row.UpdatedAt,
	}
}
