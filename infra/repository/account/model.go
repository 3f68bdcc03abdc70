package account

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Connection represents a persisted provider item.
type Connection struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID `gorm:"type:uuid;index;not null"`
	ItemID          string    `gorm:"size:128;uniqueIndex;not null"`
	AccessToken     string    `gorm:"not null"`
	InstitutionName string    `gorm:"size:255"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (Connection) TableName() string { return "connections" }

// Account represents a persisted bank account.
type Account struct {
	ID                uuid.UUID        `gorm:"type:uuid;primaryKey"`
	UserID            uuid.UUID        `gorm:"type:uuid;index;not null"`
	ConnectionID      uuid.UUID        `gorm:"type:uuid;index;not null"`
	ProviderAccountID string           `gorm:"size:128;uniqueIndex;not null"`
	Name              string           `gorm:"size:255;not null"`
	OfficialName      string           `gorm:"size:255"`
	Type              string           `gorm:"size:32"`
	Subtype           string           `gorm:"size:32"`
	Mask              string           `gorm:"size:8"`
	CurrentBalance    *decimal.Decimal `gorm:"type:numeric(14,2)"`
	AvailableBalance  *decimal.Decimal `gorm:"type:numeric(14,2)"`
	CurrencyCode      string           `gorm:"size:3"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (Account) TableName() string { return "accounts" }
