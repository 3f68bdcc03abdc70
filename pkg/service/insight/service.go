// Package insight generates, ranks and stores spending insights.
//
// A generation run aggregates the trailing 90 days of transactions, asks the
// configured language model for candidates and falls back to a threshold
// heuristic when it gets none. Candidates are then deduplicated, ranked,
// enriched with a 30-day comparison and stored in place of the user's
// undismissed insights.
package insight

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/amirasaad/spendwise/pkg/analytics"
	"github.com/amirasaad/spendwise/pkg/domain"
	"github.com/amirasaad/spendwise/pkg/domain/budget"
	"github.com/amirasaad/spendwise/pkg/domain/insight"
	"github.com/amirasaad/spendwise/pkg/domain/transaction"
	"github.com/amirasaad/spendwise/pkg/ratelimit"
	"github.com/amirasaad/spendwise/pkg/repository"
	budgetrepo "github.com/amirasaad/spendwise/pkg/repository/budget"
	insightrepo "github.com/amirasaad/spendwise/pkg/repository/insight"
	txrepo "github.com/amirasaad/spendwise/pkg/repository/transaction"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// Service runs insight generation and the user actions on stored insights.
type Service struct {
	uow         repository.UnitOfWork
	synthesizer *Synthesizer
	ranker      *Ranker
	limiter     ratelimit.Limiter
	logger      *slog.Logger
	runs        singleflight.Group
	now         func() time.Time
}

// New creates a Service. limiter may be nil to disable the on-demand quota.
func New(
	uow repository.UnitOfWork,
	synthesizer *Synthesizer,
	ranker *Ranker,
	limiter ratelimit.Limiter,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		uow:         uow,
		synthesizer: synthesizer,
		ranker:      ranker,
		limiter:     limiter,
		logger:      logger,
		now:         time.Now,
	}
}

// WithClock replaces the time source; used by tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// GenerateOnDemand runs Generate after charging the user's on-demand quota.
func (s *Service) GenerateOnDemand(ctx context.Context, userID uuid.UUID) ([]insight.Insight, error) {
	if s.limiter != nil {
		res, err := s.limiter.Allow(ctx, "insights:"+userID.String())
		if err != nil {
			return nil, fmt.Errorf("check generation quota: %w", err)
		}
		if !res.Allowed {
			s.logger.Info("Insight generation rate limited",
				"user_id", userID, "retry_after", res.RetryAfter)
			return nil, &RateLimitError{RetryAfter: res.RetryAfter}
		}
	}
	return s.Generate(ctx, userID)
}

// Generate replaces the user's undismissed insights with a fresh set.
// Concurrent calls for the same user share one run. The shared run does not
// observe cancellation of whichever caller started it; a cancelled caller
// returns early while the run completes for the others.
func (s *Service) Generate(ctx context.Context, userID uuid.UUID) ([]insight.Insight, error) {
	runCtx := context.WithoutCancel(ctx)
	ch := s.runs.DoChan(userID.String(), func() (any, error) {
		return s.generate(runCtx, userID)
	})
	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-ch:
	}
	if res.Err != nil {
		return nil, res.Err
	}
	if res.Shared {
		s.logger.Debug("Joined in-flight insight generation", "user_id", userID)
	}
	result := res.Val.([]insight.Insight)
	return append([]insight.Insight(nil), result...), nil
}

func (s *Service) generate(ctx context.Context, userID uuid.UUID) ([]insight.Insight, error) {
	logger := s.logger.With("user_id", userID)
	now := s.now().UTC()
	window := domain.Trailing(now, GenerationWindowDays)

	var (
		txs     []transaction.Transaction
		budgets []budget.Budget
	)
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		txRepo, err := repository.Get[txrepo.Repository](uow)
		if err != nil {
			return err
		}
		budgetRepo, err := repository.Get[budgetrepo.Repository](uow)
		if err != nil {
			return err
		}
		if txs, err = txRepo.ListBetween(ctx, userID, window.Start, window.End); err != nil {
			return err
		}
		budgets, err = budgetRepo.List(ctx, userID, true)
		return err
	})
	if err != nil {
		logger.Error("Failed to load insight inputs", "error", err)
		return nil, fmt.Errorf("load insight inputs: %w", err)
	}

	summary := analytics.Aggregate(txs, window)
	candidates := s.synthesizer.Synthesize(ctx, BuildPayload(summary, txs, budgets, now))

	var selected []insight.Insight
	if len(candidates) == 0 {
		recent := analytics.Aggregate(txs, domain.Trailing(now, RecentWindowDays))
		selected = s.ranker.Select(Heuristic(recent), nil)
		logger.Info("Using heuristic insights", "count", len(selected))
	} else {
		selected = s.ranker.Select(candidates, &summary)
	}
	Enrich(selected, txs, now)
	Sanitize(selected)

	stored, err := s.replace(ctx, userID, selected, now)
	if err != nil {
		logger.Error("Failed to store insights", "error", err)
		return nil, err
	}
	logger.Info("Generated insights", "count", len(stored), "transactions", len(txs))
	return stored, nil
}

// replace swaps the undismissed insights for the new set in one transaction.
func (s *Service) replace(
	ctx context.Context,
	userID uuid.UUID,
	selected []insight.Insight,
	now time.Time,
) ([]insight.Insight, error) {
	out := make([]insight.Insight, len(selected))
	for i, in := range selected {
		in.ID = uuid.New()
		in.UserID = userID
		in.IsDismissed = false
		in.IsViewed = false
		in.CreatedAt = now
		out[i] = in
	}

	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[insightrepo.Repository](uow)
		if err != nil {
			return err
		}
		if _, err := repo.DeleteUndismissed(ctx, userID); err != nil {
			return err
		}
		if len(out) == 0 {
			return nil
		}
		return repo.CreateBatch(ctx, out)
	})
	if err != nil {
		return nil, fmt.Errorf("replace insights: %w", err)
	}
	SortForDisplay(out)
	return out, nil
}

// SortForDisplay orders by priority desc, then created_at desc.
func SortForDisplay(insights []insight.Insight) {
	sort.SliceStable(insights, func(i, j int) bool {
		if insights[i].Priority != insights[j].Priority {
			return insights[i].Priority > insights[j].Priority
		}
		return insights[i].CreatedAt.After(insights[j].CreatedAt)
	})
}

// ListActive returns the user's non-dismissed, non-expired insights.
func (s *Service) ListActive(ctx context.Context, userID uuid.UUID) (out []insight.Insight, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[insightrepo.Repository](uow)
		if err != nil {
			return err
		}
		out, err = repo.ListActive(ctx, userID, s.now().UTC())
		return err
	})
	return
}

// MarkViewed flags the insight as viewed.
func (s *Service) MarkViewed(ctx context.Context, userID, id uuid.UUID) (*insight.Insight, error) {
	return s.setFlag(ctx, userID, id, func(in *insight.Insight) { in.IsViewed = true })
}

// Dismiss hides the insight from the active list; it survives regeneration.
func (s *Service) Dismiss(ctx context.Context, userID, id uuid.UUID) (*insight.Insight, error) {
	return s.setFlag(ctx, userID, id, func(in *insight.Insight) { in.IsDismissed = true })
}

func (s *Service) setFlag(
	ctx context.Context,
	userID, id uuid.UUID,
	apply func(*insight.Insight),
) (in *insight.Insight, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[insightrepo.Repository](uow)
		if err != nil {
			return err
		}
		in, err = repo.Get(ctx, userID, id)
		if err != nil {
			return err
		}
		apply(in)
		return repo.SetFlags(ctx, in)
	})
	if err != nil {
		in = nil
	}
	return
}

// Delete removes the insight permanently.
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[insightrepo.Repository](uow)
		if err != nil {
			return err
		}
		return repo.Delete(ctx, userID, id)
	})
}
