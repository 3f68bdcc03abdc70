package transaction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/amirasaad/spendwise/pkg/domain"
	"github.com/amirasaad/spendwise/pkg/domain/account"
	"github.com/amirasaad/spendwise/pkg/domain/transaction"
	"github.com/amirasaad/spendwise/pkg/provider"
	"github.com/amirasaad/spendwise/pkg/repository"
	accountrepo "github.com/amirasaad/spendwise/pkg/repository/account"
	txrepo "github.com/amirasaad/spendwise/pkg/repository/transaction"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultLookbackDays = 90
	DefaultSyncWorkers  = 4
)

// SyncResult counts the committed writes of a sync pass.
type SyncResult struct {
	Created  int `json:"created"`
	Updated  int `json:"updated"`
	Accounts int `json:"accounts_refreshed"`
}

// Reconciler imports provider transactions into the local store.
type Reconciler struct {
	uow          repository.UnitOfWork
	bank         provider.BankingProvider
	lookbackDays int
	workers      int
	logger       *slog.Logger
	now          func() time.Time
}

func NewReconciler(
	uow repository.UnitOfWork,
	bank provider.BankingProvider,
	lookbackDays, workers int,
	logger *slog.Logger,
) *Reconciler {
	if lookbackDays <= 0 {
		lookbackDays = DefaultLookbackDays
	}
	if workers <= 0 {
		workers = DefaultSyncWorkers
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Reconciler{
		uow:          uow,
		bank:         bank,
		lookbackDays: lookbackDays,
		workers:      workers,
		logger:       logger,
		now:          time.Now,
	}
}

// WithClock replaces the time source; used by tests.
func (r *Reconciler) WithClock(now func() time.Time) *Reconciler {
	r.now = now
	return r
}

// Sync fetches the trailing window of every linked connection and upserts
// each transaction by its provider ID. Each connection commits on its own;
// a failing connection is logged and skipped.
func (r *Reconciler) Sync(ctx context.Context, userID uuid.UUID) (SyncResult, error) {
	logger := r.logger.With("user_id", userID)
	window := domain.Trailing(r.now().UTC(), r.lookbackDays)

	var conns []account.Connection
	err := r.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[accountrepo.Repository](uow)
		if err != nil {
			return err
		}
		conns, err = repo.ListConnections(ctx, userID)
		return err
	})
	if err != nil {
		return SyncResult{}, fmt.Errorf("list connections: %w", err)
	}

	var (
		mu     sync.Mutex
		result SyncResult
		g      errgroup.Group
	)
	g.SetLimit(r.workers)
	for _, conn := range conns {
		g.Go(func() error {
			res, err := r.syncConnection(ctx, userID, conn, window)
			if err != nil {
				logger.Warn("Skipping connection after sync failure",
					"connection_id", conn.ID, "institution", conn.InstitutionName, "error", err)
				return nil
			}
			mu.Lock()
			result.Created += res.Created
			result.Updated += res.Updated
			result.Accounts += res.Accounts
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	logger.Info("Transactions synced",
		"connections", len(conns),
		"created", result.Created,
		"updated", result.Updated,
		"accounts_refreshed", result.Accounts)
	return result, nil
}

func (r *Reconciler) syncConnection(
	ctx context.Context,
	userID uuid.UUID,
	conn account.Connection,
	window domain.DateRange,
) (SyncResult, error) {
	records, err := r.bank.FetchTransactions(ctx, conn.AccessToken, window.Start, window.End)
	if err != nil {
		return SyncResult{}, fmt.Errorf("fetch transactions: %w", err)
	}
	// Stale balances do not block the transaction import.
	bankAccounts, err := r.bank.FetchAccounts(ctx, conn.AccessToken)
	if err != nil {
		r.logger.Warn("Keeping stored balances after account fetch failure",
			"user_id", userID, "connection_id", conn.ID, "error", err)
		bankAccounts = nil
	}

	var res SyncResult
	err = r.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		res = SyncResult{}
		accounts, err := repository.Get[accountrepo.Repository](uow)
		if err != nil {
			return err
		}
		txs, err := repository.Get[txrepo.Repository](uow)
		if err != nil {
			return err
		}
		for _, rec := range records {
			created, skipped, err := upsert(ctx, accounts, txs, userID, rec)
			if err != nil {
				return fmt.Errorf("transaction %s: %w", rec.TransactionID, err)
			}
			if skipped {
				continue
			}
			if created {
				res.Created++
			} else {
				res.Updated++
			}
		}
		for _, ba := range bankAccounts {
			err := accounts.UpdateBalance(ctx, userID, BalanceOf(ba))
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			if err != nil {
				return fmt.Errorf("account %s: %w", ba.AccountID, err)
			}
			res.Accounts++
		}
		return nil
	})
	if err != nil {
		return SyncResult{}, err
	}
	return res, nil
}

func upsert(
	ctx context.Context,
	accounts accountrepo.Repository,
	txs txrepo.Repository,
	userID uuid.UUID,
	rec provider.BankTransaction,
) (created, skipped bool, err error) {
	acct, err := accounts.GetByProviderAccountID(ctx, userID, rec.AccountID)
	if errors.Is(err, domain.ErrNotFound) {
		return false, true, nil
	}
	if err != nil {
		return false, false, err
	}

	categories, primary := ResolveCategories(rec)
	externalID := rec.TransactionID
	fields := transaction.Transaction{
		UserID:          userID,
		AccountID:       acct.ID,
		ExternalID:      &externalID,
		Amount:          decimal.NewFromFloat(rec.Amount).Neg(),
		Date:            domain.DateOf(rec.Date),
		Name:            rec.Name,
		MerchantName:    rec.MerchantName,
		Categories:      categories,
		PrimaryCategory: primary,
		Pending:         rec.Pending,
	}

	existing, err := txs.GetByExternalID(ctx, externalID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		now := time.Now().UTC()
		fields.ID = uuid.New()
		fields.CreatedAt = now
		fields.UpdatedAt = now
		return true, false, txs.Create(ctx, &fields)
	case err != nil:
		return false, false, err
	}

	fields.ID = existing.ID
	fields.Note = existing.Note
	fields.CreatedAt = existing.CreatedAt
	fields.UpdatedAt = time.Now().UTC()
	return false, false, txs.Update(ctx, &fields)
}

// BalanceOf converts provider balances to cents.
func BalanceOf(ba provider.BankAccount) account.Balance {
	b := account.Balance{
		ProviderAccountID: ba.AccountID,
		CurrencyCode:      ba.CurrencyCode,
	}
	if ba.CurrentBalance != nil {
		v := decimal.NewFromFloat(*ba.CurrentBalance).Round(2)
		b.Current = &v
	}
	if ba.AvailableBalance != nil {
		v := decimal.NewFromFloat(*ba.AvailableBalance).Round(2)
		b.Available = &v
	}
	return b
}

// ResolveCategories prefers the personal finance category pair and falls
// back to the raw category list. The primary may be empty.
func ResolveCategories(rec provider.BankTransaction) ([]string, string) {
	var raw []string
	if pfc := rec.PersonalFinanceCategory; pfc != nil {
		raw = []string{pfc.Primary, pfc.Detailed}
	} else {
		raw = rec.Category
	}
	categories := make([]string, 0, len(raw))
	for _, c := range raw {
		if c = strings.TrimSpace(c); c != "" {
			categories = append(categories, c)
		}
	}
	if len(categories) == 0 {
		return categories, ""
	}
	return categories, categories[0]
}
