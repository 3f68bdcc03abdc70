package transaction

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/amirasaad/spendwise/pkg/domain"
	"github.com/amirasaad/spendwise/pkg/domain/transaction"
	"github.com/amirasaad/spendwise/pkg/dto"
	repo "github.com/amirasaad/spendwise/pkg/repository/transaction"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New creates a transaction repository using the provided *gorm.DB.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

// Create implements transaction.Repository.
func (r *repository) Create(
	ctx context.Context,
	tx *transaction.Transaction,
) error {
	row := mapDomainToModel(tx)
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
		tx.ID = row.ID
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

// Update implements transaction.Repository.
func (r *repository) Update(
	ctx context.Context,
	tx *transaction.Transaction,
) error {
	row := mapDomainToModel(tx)
	res := r.db.WithContext(ctx).Save(&row)
	if res.Error != nil {
		return res.Error
	}
	tx.UpdatedAt = row.UpdatedAt
	return nil
}

// Get implements transaction.Repository.
func (r *repository) Get(
	ctx context.Context,
	userID, id uuid.UUID,
) (*transaction.Transaction, error) {
	var row Transaction
	if err := r.db.WithContext(
		ctx,
	).Where(
		"id = ? AND user_id = ?",
		id,
		userID,
	).First(
		&row,
	).Error; err != nil {
		return nil, notFound(err)
	}
	return mapModelToDomain(&row), nil
}

// GetByExternalID implements transaction.Repository.
func (r *repository) GetByExternalID(
	ctx context.Context,
	externalID string,
) (*transaction.Transaction, error) {
	var row Transaction
	if err := r.db.WithContext(
		ctx,
	).Where(
		"external_id = ?",
		externalID,
	).First(
		&row,
	).Error; err != nil {
		return nil, notFound(err)
	}
	return mapModelToDomain(&row), nil
}

// List implements transaction.Repository.
func (r *repository) List(
	ctx context.Context,
	userID uuid.UUID,
	filter dto.TransactionFilter,
) ([]transaction.Transaction, error) {
	f := filter.Normalize()
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if f.AccountID != nil {
		q = q.Where("account_id = ?", *f.AccountID)
	}
	if f.StartDate != nil {
		q = q.Where("date >= ?", domain.DateOf(*f.StartDate))
	}
	if f.EndDate != nil {
		q = q.Where("date <= ?", domain.DateOf(*f.EndDate))
	}
	if f.Category != "" {
		q = q.Where("primary_category = ?", f.Category)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(merchant_name) LIKE ?", like, like)
	}

	var rows []Transaction
	if err := q.Order(
		"date DESC",
	).Order(
		"created_at DESC",
	).Offset(
		f.Skip,
	).Limit(
		f.Limit,
	).Find(
		&rows,
	).Error; err != nil {
		return nil, err
	}
	return mapModelsToDomain(rows), nil
}

// ListBetween implements transaction.Repository.
func (r *repository) ListBetween(
	ctx context.Context,
	userID uuid.UUID,
	start, end time.Time,
) ([]transaction.Transaction, error) {
	var rows []Transaction
	if err := r.db.WithContext(
		ctx,
	).Where(
		"user_id = ? AND date >= ? AND date <= ?",
		userID,
		domain.DateOf(start),
		domain.DateOf(end),
	).Order(
		"date DESC",
	).Find(
		&rows,
	).Error; err != nil {
		return nil, err
	}
	return mapModelsToDomain(rows), nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return transaction.ErrTransactionNotFound
	}
	return err
}

// --- Mappers ---

func mapDomainToModel(tx *transaction.Transaction) Transaction {
	return Transaction{
		ID:              tx.ID,
		UserID:          tx.UserID,
		AccountID:       tx.AccountID,
		ExternalID:      tx.ExternalID,
		Amount:          tx.Amount,
		Date:            domain.DateOf(tx.Date),
		Name:            tx.Name,
		MerchantName:    tx.MerchantName,
		Categories:      tx.Categories,
		PrimaryCategory: tx.PrimaryCategory,
		Pending:         tx.Pending,
		Note:            tx.Note,
		CreatedAt:       tx.CreatedAt,
		UpdatedAt:       tx.UpdatedAt,
	}
}

func mapModelToDomain(row *Transaction) *transaction.Transaction {
	categories := row.Categories
	if categories == nil {
		categories = []string{}
	}
	return &transaction.Transaction{
		ID:              row.ID,
		UserID:          row.UserID,
		AccountID:       row.AccountID,
		ExternalID:      row.ExternalID,
		Amount:          row.Amount,
		Date:            domain.DateOf(row.Date),
		Name:            row.Name,
		MerchantName:    row.MerchantName,
		Categories:      categories,
		PrimaryCategory: row.PrimaryCategory,
		Pending:         row.Pending,
		Note:            row.Note,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
}

func mapModelsToDomain(rows []Transaction) []transaction.Transaction {
	result := make([]transaction.Transaction, 0, len(rows))
	for i := range rows {
		result = append(result, *mapModelToDomain(&rows[i]))
	}
	return result
}
