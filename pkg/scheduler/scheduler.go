// Package scheduler runs the daily insight sweep over every user.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/amirasaad/spendwise/pkg/domain/insight"
	"github.com/amirasaad/spendwise/pkg/repository"
	userrepo "github.com/amirasaad/spendwise/pkg/repository/user"
	"github.com/google/uuid"
)

const DefaultPageSize = 100

// InsightRunner generates insights for one user.
type InsightRunner interface {
	Generate(ctx context.Context, userID uuid.UUID) ([]insight.Insight, error)
}

// SweepResult summarizes one pass over all users.
type SweepResult struct {
	Users  int
	Failed int
}

// Scheduler triggers a sweep once a day at a fixed UTC hour.
type Scheduler struct {
	uow      repository.UnitOfWork
	runner   InsightRunner
	hourUTC  int
	pageSize int
	logger   *slog.Logger
	now      func() time.Time
}

func New(
	uow repository.UnitOfWork,
	runner InsightRunner,
	hourUTC, pageSize int,
	logger *slog.Logger,
) *Scheduler {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		uow:      uow,
		runner:   runner,
		hourUTC:  hourUTC,
		pageSize: pageSize,
		logger:   logger,
		now:      time.Now,
	}
}

// NextRun returns the first instant at hourUTC:00 strictly after now.
func NextRun(now time.Time, hourUTC int) time.Time {
	now = now.UTC()
	next := time.Date(now.Year(), now.Month(), now.Day(), hourUTC, 0, 0, 0, time.UTC)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// Start blocks, sweeping once per day until ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	for {
		next := NextRun(s.now(), s.hourUTC)
		s.logger.Info("Next insight sweep scheduled", "at", next)
		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			s.logger.Info("Insight scheduler stopped")
			return
		case <-timer.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce generates insights for every user, one at a time, page by page.
// A failing user is logged and skipped.
func (s *Scheduler) RunOnce(ctx context.Context) SweepResult {
	start := s.now()
	var res SweepResult
	for page := 1; ; page++ {
		users, err := s.listUsers(ctx, page)
		if err != nil {
			s.logger.Error("Insight sweep could not list users", "page", page, "error", err)
			break
		}
		for _, u := range users {
			if ctx.Err() != nil {
				return res
			}
			res.Users++
			if _, err := s.runner.Generate(ctx, u); err != nil {
				res.Failed++
				s.logger.Warn("Insight generation failed", "user_id", u, "error", err)
			}
		}
		if len(users) < s.pageSize {
			break
		}
	}
	s.logger.Info("Insight sweep finished",
		"users", res.Users, "failed", res.Failed, "duration", s.now().Sub(start))
	return res
}

func (s *Scheduler) listUsers(ctx context.Context, page int) (ids []uuid.UUID, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[userrepo.Repository](uow)
		if err != nil {
			return err
		}
		users, err := repo.List(ctx, page, s.pageSize)
		if err != nil {
			return err
		}
		ids = make([]uuid.UUID, 0, len(users))
		for _, u := range users {
			ids = append(ids, u.ID)
		}
		return nil
	})
	return
}
