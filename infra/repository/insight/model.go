package insight

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Insight represents a persisted insight.
type Insight struct {
	ID          uuid.UUID        `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID        `gorm:"type:uuid;index;not null"`
	Type        string           `gorm:"size:16;not null"`
	Title       string           `gorm:"size:255;not null"`
	Description string           `gorm:"not null"`
	Action      string           `gorm:"size:255"`
	Amount      *decimal.Decimal `gorm:"type:numeric(14,2)"`
	Category    string           `gorm:"size:128"`
	Priority    int              `gorm:"not null;default:5"`
	IsDismissed bool             `gorm:"not null;default:false"`
	IsViewed    bool             `gorm:"not null;default:false"`
	Data        map[string]any   `gorm:"serializer:json"`
	CreatedAt   time.Time
	ExpiresAt   *time.Time
}

func (Insight) TableName() string { return "insights" }
