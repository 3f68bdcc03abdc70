// Package account lists linked bank accounts and summarizes their balances.
package account

import (
	"context"
	"log/slog"

	"github.com/amirasaad/spendwise/pkg/domain/account"
	"github.com/amirasaad/spendwise/pkg/repository"
	accountrepo "github.com/amirasaad/spendwise/pkg/repository/account"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	subtypeChecking = "checking"
	subtypeSavings  = "savings"
	typeCredit      = "credit"
)

// AccountBalance is an account with the institution of its connection.
type AccountBalance struct {
	account.Account
	InstitutionName string `json:"institution_name,omitempty"`
}

// Summary totals the current balances of a user's accounts.
// Accounts without a reported balance count as zero.
type Summary struct {
	TotalBalance    decimal.Decimal  `json:"total_balance"`
	CheckingBalance decimal.Decimal  `json:"checking_balance"`
	SavingsBalance  decimal.Decimal  `json:"savings_balance"`
	CreditBalance   decimal.Decimal  `json:"credit_balance"`
	TotalAccounts   int              `json:"total_accounts"`
	Accounts        []AccountBalance `json:"accounts"`
}

type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{uow: uow, logger: logger}
}

// List returns the user's accounts ordered by name.
func (s *Service) List(ctx context.Context, userID uuid.UUID) (out []account.Account, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[accountrepo.Repository](uow)
		if err != nil {
			return err
		}
		out, err = repo.ListAccounts(ctx, userID)
		return err
	})
	return
}

// Summary returns the balance totals of the user's accounts.
func (s *Service) Summary(ctx context.Context, userID uuid.UUID) (*Summary, error) {
	var (
		accounts []account.Account
		conns    []account.Connection
	)
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[accountrepo.Repository](uow)
		if err != nil {
			return err
		}
		if accounts, err = repo.ListAccounts(ctx, userID); err != nil {
			return err
		}
		conns, err = repo.ListConnections(ctx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}

	institutions := make(map[uuid.UUID]string, len(conns))
	for _, c := range conns {
		institutions[c.ID] = c.InstitutionName
	}

	sum := &Summary{
		TotalAccounts: len(accounts),
		Accounts:      make([]AccountBalance, 0, len(accounts)),
	}
	for _, a := range accounts {
		sum.Accounts = append(sum.Accounts, AccountBalance{
			Account:         a,
			InstitutionName: institutions[a.ConnectionID],
		})
		if a.CurrentBalance == nil {
			continue
		}
		current := *a.CurrentBalance
		sum.TotalBalance = sum.TotalBalance.Add(current)
		switch a.Subtype {
		case subtypeChecking:
			sum.CheckingBalance = sum.CheckingBalance.Add(current)
		case subtypeSavings:
			sum.SavingsBalance = sum.SavingsBalance.Add(current)
		}
		if a.Type == typeCredit {
			sum.CreditBalance = sum.CreditBalance.Add(current)
		}
	}
	s.logger.Debug("Account summary built", "user_id", userID, "accounts", sum.TotalAccounts)
	return sum, nil
}
