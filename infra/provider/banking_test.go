package provider

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/amirasaad/spendwise/infra/provider/plaid"
	"github.com/amirasaad/spendwise/pkg/config"
	"github.com/amirasaad/spendwise/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestNewBankingProvider(t *testing.T) {
	logger := slog.Default()

	bank := NewBankingProvider(&config.Plaid{}, logger)
	assert.IsType(t, Unlinked{}, bank)
	_, err := bank.FetchTransactions(context.Background(), "token", time.Now(), time.Now())
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
	_, err = bank.FetchAccounts(context.Background(), "token")
	assert.ErrorIs(t, err, ErrBankingNotConfigured)

	bank = NewBankingProvider(&config.Plaid{ClientID: "id", Secret: "secret", Env: "sandbox"}, logger)
	assert.IsType(t, &plaid.Client{}, bank)
}
