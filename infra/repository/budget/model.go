package budget

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Budget represents a persisted budget.
type Budget struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID       `gorm:"type:uuid;index;not null"`
	Category       string          `gorm:"size:128;not null"`
	Amount         decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Period         string          `gorm:"size:16;not null;default:'monthly'"`
	IsActive       bool            `gorm:"not null;default:true"`
	AlertThreshold decimal.Decimal `gorm:"type:numeric(5,2);not null;default:80"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (Budget) TableName() string { return "budgets" }
