// Package budget provides budget management and status evaluation.
package budget

import (
	"context"
	"log/slog"
	"time"

	"github.com/amirasaad/spendwise/pkg/analytics"
	"github.com/amirasaad/spendwise/pkg/domain/budget"
	"github.com/amirasaad/spendwise/pkg/domain/transaction"
	"github.com/amirasaad/spendwise/pkg/repository"
	budgetrepo "github.com/amirasaad/spendwise/pkg/repository/budget"
	txrepo "github.com/amirasaad/spendwise/pkg/repository/transaction"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateInput carries the fields of a new budget.
type CreateInput struct {
	Category       string
	Amount         decimal.Decimal
	Period         string
	AlertThreshold *decimal.Decimal
}

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

// List returns the user's budgets, only active ones when activeOnly is set.
func (s *Service) List(ctx context.Context, userID uuid.UUID, activeOnly bool) (out []budget.Budget, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[budgetrepo.Repository](uow)
		if err != nil {
			return err
		}
		out, err = repo.List(ctx, userID, activeOnly)
		return err
	})
	return
}

// Status evaluates one budget over its current period window.
// Budgets of other users are reported as not found.
func (s *Service) Status(ctx context.Context, userID, id uuid.UUID) (status *budget.Status, err error) {
	now := s.now().UTC()
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		budgets, err := repository.Get[budgetrepo.Repository](uow)
		if err != nil {
			return err
		}
		txs, err := repository.Get[txrepo.Repository](uow)
		if err != nil {
			return err
		}
		b, err := budgets.Get(ctx, userID, id)
		if err != nil {
			return err
		}
		window := b.Period.Window(now)
		inWindow, err := txs.ListBetween(ctx, userID, window.Start, window.End)
		if err != nil {
			return err
		}
		st := budget.Evaluate(b, analytics.CategorySpend(inWindow, b.Category, window), window)
		status = &st
		return nil
	})
	if err != nil {
		status = nil
	}
	return
}

// AllStatuses evaluates every active budget. Transactions are loaded once
// per distinct period window.
func (s *Service) AllStatuses(ctx context.Context, userID uuid.UUID) (out []budget.Status, err error) {
	now := s.now().UTC()
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		budgets, err := repository.Get[budgetrepo.Repository](uow)
		if err != nil {
			return err
		}
		txs, err := repository.Get[txrepo.Repository](uow)
		if err != nil {
			return err
		}
		active, err := budgets.List(ctx, userID, true)
		if err != nil {
			return err
		}
		byWindow := make(map[string][]transaction.Transaction)
		out = make([]budget.Status, 0, len(active))
		for i := range active {
			b := &active[i]
			window := b.Period.Window(now)
			inWindow, ok := byWindow[window.Key()]
			if !ok {
				if inWindow, err = txs.ListBetween(ctx, userID, window.Start, window.End); err != nil {
					return err
				}
				byWindow[window.Key()] = inWindow
			}
			out = append(out, budget.Evaluate(b, analytics.CategorySpend(inWindow, b.Category, window), window))
		}
		return nil
	})
	if err != nil {
		out = nil
	}
	return
}

// Create validates and stores a new active budget.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, in CreateInput) (b *budget.Budget, err error) {
	period, ok := budget.ParsePeriod(in.Period)
	if !ok {
		return nil, budget.ErrInvalidPeriod
	}
	b, err = budget.New(userID, in.Category, in.Amount, period, in.AlertThreshold)
	if err != nil {
		return nil, err
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[budgetrepo.Repository](uow)
		if err != nil {
			return err
		}
		return repo.Create(ctx, b)
	})
	if err != nil {
		s.logger.Error("Failed to create budget", "user_id", userID, "category", in.Category, "error", err)
		return nil, err
	}
	s.logger.Info("Budget created", "user_id", userID, "budget_id", b.ID, "category", b.Category)
	return b, nil
}

// Update applies a partial update to the user's budget.
func (s *Service) Update(ctx context.Context, userID, id uuid.UUID, patch budget.Patch) (b *budget.Budget, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[budgetrepo.Repository](uow)
		if err != nil {
			return err
		}
		if b, err = repo.Get(ctx, userID, id); err != nil {
			return err
		}
		if err = b.Apply(patch); err != nil {
			return err
		}
		return repo.Update(ctx, b)
	})
	if err != nil {
		b = nil
	}
	return
}

// Delete deactivates the budget. It stays readable but no longer counts
// toward statuses or insight generation.
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	inactive := false
	_, err := s.Update(ctx, userID, id, budget.Patch{IsActive: &inactive})
	if err == nil {
		s.logger.Info("Budget deactivated", "user_id", userID, "budget_id", id)
	}
	return err
}
