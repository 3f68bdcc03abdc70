package transaction

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction represents a persisted bank transaction.
type Transaction struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID       `gorm:"type:uuid;index;not null"`
	AccountID       uuid.UUID       `gorm:"type:uuid;index;not null"`
	ExternalID      *string         `gorm:"size:128;uniqueIndex"`
	Amount          decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Date            time.Time       `gorm:"type:date;index;not null"`
	Name            string          `gorm:"size:255;not null"`
	MerchantName    string          `gorm:"size:255"`
	Categories      []string        `gorm:"serializer:json"`
	PrimaryCategory string          `gorm:"size:128;index"`
	Pending         bool            `gorm:"not null;default:false"`
	Note            string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (Transaction) TableName() string { return "transactions" }
