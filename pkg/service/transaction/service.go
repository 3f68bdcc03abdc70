// Package transaction provides transaction queries, period summaries and
// reconciliation against the banking provider.
package transaction

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/amirasaad/spendwise/pkg/analytics"
	"github.com/amirasaad/spendwise/pkg/domain"
	"github.com/amirasaad/spendwise/pkg/domain/transaction"
	"github.com/amirasaad/spendwise/pkg/dto"
	"github.com/amirasaad/spendwise/pkg/repository"
	txrepo "github.com/amirasaad/spendwise/pkg/repository/transaction"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Period names a trailing window anchored at today.
type Period string

const (
	PeriodDay     Period = "day"
	PeriodWeek    Period = "week"
	PeriodMonth   Period = "month"
	PeriodQuarter Period = "quarter"
	PeriodYear    Period = "year"
)

// daysBack excludes today, so "week" spans 7 calendar days.
var daysBack = map[Period]int{
	PeriodDay:     0,
	PeriodWeek:    6,
	PeriodMonth:   29,
	PeriodQuarter: 89,
	PeriodYear:    364,
}

// ParsePeriod maps a period name to its window; unknown names mean month.
func ParsePeriod(s string) Period {
	p := Period(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := daysBack[p]; ok {
		return p
	}
	return PeriodMonth
}

// Window returns the trailing window of p ending on today.
func (p Period) Window(today time.Time) domain.DateRange {
	return domain.Trailing(today, daysBack[ParsePeriod(string(p))])
}

// CategoryTotal is the signed sum of one category.
type CategoryTotal struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// Summary reports totals over a named period.
type Summary struct {
	Period           Period          `json:"period"`
	StartDate        time.Time       `json:"start_date"`
	EndDate          time.Time       `json:"end_date"`
	TotalIncome      decimal.Decimal `json:"total_income"`
	TotalExpenses    decimal.Decimal `json:"total_expenses"`
	NetSavings       decimal.Decimal `json:"net_savings"`
	TransactionCount int             `json:"transaction_count"`
	ByCategory       []CategoryTotal `json:"by_category"`
}

// Service exposes read access to a user's transactions.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
	now    func() time.Time
}

func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{uow: uow, logger: logger, now: time.Now}
}

// WithClock replaces the time source; used by tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// List returns one page of the user's transactions.
func (s *Service) List(
	ctx context.Context,
	userID uuid.UUID,
	filter dto.TransactionFilter,
) (out []transaction.Transaction, err error) {
	filter = filter.Normalize()
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[txrepo.Repository](uow)
		if err != nil {
			return err
		}
		out, err = repo.List(ctx, userID, filter)
		return err
	})
	return
}

// Get returns one transaction of the user.
func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (tx *transaction.Transaction, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[txrepo.Repository](uow)
		if err != nil {
			return err
		}
		tx, err = repo.Get(ctx, userID, id)
		return err
	})
	if err != nil {
		tx = nil
	}
	return
}

// Summary totals income and expenses over the named period.
func (s *Service) Summary(ctx context.Context, userID uuid.UUID, period string) (*Summary, error) {
	p := ParsePeriod(period)
	window := p.Window(s.now().UTC())

	var txs []transaction.Transaction
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[txrepo.Repository](uow)
		if err != nil {
			return err
		}
		txs, err = repo.ListBetween(ctx, userID, window.Start, window.End)
		return err
	})
	if err != nil {
		return nil, err
	}

	agg := analytics.Aggregate(txs, window)
	byCategory := make([]CategoryTotal, 0, len(agg.NetByCategory))
	for cat, amount := range agg.NetByCategory {
		byCategory = append(byCategory, CategoryTotal{Category: cat, Amount: amount})
	}
	sort.Slice(byCategory, func(i, j int) bool {
		return byCategory[i].Category < byCategory[j].Category
	})
	return &Summary{
		Period:           p,
		StartDate:        window.Start,
		EndDate:          window.End,
		TotalIncome:      agg.TotalIncome,
		TotalExpenses:    agg.TotalExpense,
		NetSavings:       agg.NetSavings(),
		TransactionCount: agg.Count,
		ByCategory:       byCategory,
	}, nil
}
