// Package dto carries query parameters between the web layer, services and repositories.
package dto

import (
	"time"

	"github.com/google/uuid"
)

const (
	DefaultPageLimit = 50
	MaxPageLimit     = 200
)

// TransactionFilter narrows a transaction listing. Zero values mean "no filter".
type TransactionFilter struct {
	AccountID *uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
	Category  string
	Search    string
	Skip      int
	Limit     int
}

// Normalize clamps pagination to sane bounds.
func (f TransactionFilter) Normalize() TransactionFilter {
	if f.Skip < 0 {
		f.Skip = 0
	}
	if f.Limit <= 0 {
		f.Limit = DefaultPageLimit
	}
	if f.Limit > MaxPageLimit {
		f.Limit = MaxPageLimit
	}
	return f
}
