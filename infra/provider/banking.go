package provider

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/spendwise/infra/provider/plaid"
	"github.com/amirasaad/spendwise/pkg/config"
	"github.com/amirasaad/spendwise/pkg/domain"
	"github.com/amirasaad/spendwise/pkg/provider"
)

var ErrBankingNotConfigured = fmt.Errorf("%w: banking provider not configured", domain.ErrUpstreamUnavailable)

// Unlinked is the banking provider used when Plaid credentials are missing.
// Sync then skips every connection.
type Unlinked struct{}

func (Unlinked) FetchTransactions(context.Context, string, time.Time, time.Time) ([]provider.BankTransaction, error) {
	return nil, ErrBankingNotConfigured
}

func (Unlinked) FetchAccounts(context.Context, string) ([]provider.BankAccount, error) {
	return nil, ErrBankingNotConfigured
}

// NewBankingProvider returns the Plaid client, or Unlinked without credentials.
func NewBankingProvider(cfg *config.Plaid, logger *slog.Logger) provider.BankingProvider {
	if cfg == nil || cfg.ClientID == "" || cfg.Secret == "" {
		logger.Warn("Plaid credentials missing, transaction sync disabled")
		return Unlinked{}
	}
	client, err := plaid.NewClient(cfg, logger)
	if err != nil {
		logger.Warn("Failed to create Plaid client, transaction sync disabled", "error", err)
		return Unlinked{}
	}
	return client
}
