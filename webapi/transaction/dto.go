package transaction

import (
	"fmt"
	"time"

	"github.com/amirasaad/spendwise/pkg/domain"
	"github.com/amirasaad/spendwise/pkg/dto"
	"github.com/google/uuid"
)

// ListQuery holds the query string of GET /transactions.
type ListQuery struct {
	AccountID string `query:"account_id"`
	StartDate string `query:"start_date"`
	EndDate   string `query:"end_date"`
	Category  string `query:"category"`
	Search    string `query:"search"`
	Skip      int    `query:"skip"`
	Limit     int    `query:"limit"`
}

func (q ListQuery) toFilter() (dto.TransactionFilter, error) {
	f := dto.TransactionFilter{
		Category: q.Category,
		Search:   q.Search,
		Skip:     q.Skip,
		Limit:    q.Limit,
	}
	if q.AccountID != "" {
		id, err := uuid.Parse(q.AccountID)
		if err != nil {
			return f, fmt.Errorf("%w: account_id must be a UUID", domain.ErrValidation)
		}
		f.AccountID = &id
	}
	var err error
	if f.StartDate, err = parseDate("start_date", q.StartDate); err != nil {
		return f, err
	}
	if f.EndDate, err = parseDate("end_date", q.EndDate); err != nil {
		return f, err
	}
	return f, nil
}

func parseDate(name, s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be YYYY-MM-DD", domain.ErrValidation, name)
	}
	return &d, nil
}
