package account_test

import (
	"context"
	"errors"
	"testing"

	"github.com/amirasaad/spendwise/internal/fixtures/mocks"
	"github.com/amirasaad/spendwise/pkg/domain/account"
	accountsvc "github.com/amirasaad/spendwise/pkg/service/account"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func money(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestSummary(t *testing.T) {
	repo := mocks.NewMockAccountRepository(t)
	svc := accountsvc.New(mocks.NewMockUnitOfWork(repo), nil)
	userID := uuid.New()
	conn := account.Connection{ID: uuid.New(), InstitutionName: "First Platypus Bank"}
	repo.On("ListAccounts", mock.Anything, userID).Return([]account.Account{
		{ConnectionID: conn.ID, Name: "Checking", Type: "depository", Subtype: "checking", CurrentBalance: money("110.50")},
		{ConnectionID: conn.ID, Name: "Credit Card", Type: "credit", Subtype: "credit card", CurrentBalance: money("410")},
		{ConnectionID: conn.ID, Name: "Savings", Type: "depository", Subtype: "savings", CurrentBalance: money("200.25")},
		{ConnectionID: uuid.New(), Name: "Brokerage", Type: "investment"},
	}, nil).Once()
	repo.On("ListConnections", mock.Anything, userID).Return([]account.Connection{conn}, nil).Once()

	got, err := svc.Summary(context.Background(), userID)

	require.NoError(t, err)
	assert.Equal(t, 4, got.TotalAccounts)
	assert.Equal(t, "720.75", got.TotalBalance.String())
	assert.Equal(t, "110.5", got.CheckingBalance.String())
	assert.Equal(t, "200.25", got.SavingsBalance.String())
	assert.Equal(t, "410", got.CreditBalance.String())
	require.Len(t, got.Accounts, 4)
	assert.Equal(t, "First Platypus Bank", got.Accounts[0].InstitutionName)
	assert.Empty(t, got.Accounts[3].InstitutionName)
}

func TestSummary_NoAccounts(t *testing.T) {
	repo := mocks.NewMockAccountRepository(t)
	svc := accountsvc.New(mocks.NewMockUnitOfWork(repo), nil)
	userID := uuid.New()
	repo.On("ListAccounts", mock.Anything, userID).Return([]account.Account{}, nil).Once()
	repo.On("ListConnections", mock.Anything, userID).Return([]account.Connection{}, nil).Once()

	got, err := svc.Summary(context.Background(), userID)

	require.NoError(t, err)
	assert.Zero(t, got.TotalAccounts)
	assert.True(t, got.TotalBalance.IsZero())
	assert.NotNil(t, got.Accounts)
}

func TestList(t *testing.T) {
	repo := mocks.NewMockAccountRepository(t)
	svc := accountsvc.New(mocks.NewMockUnitOfWork(repo), nil)
	userID := uuid.New()
	want := []account.Account{{ID: uuid.New(), Name: "Checking"}}
	repo.On("ListAccounts", mock.Anything, userID).Return(want, nil).Once()

	got, err := svc.List(context.Background(), userID)

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestList_RepositoryError(t *testing.T) {
	repo := mocks.NewMockAccountRepository(t)
	svc := accountsvc.New(mocks.NewMockUnitOfWork(repo), nil)
	userID := uuid.New()
	repo.On("ListAccounts", mock.Anything, userID).Return(nil, errors.New("db down")).Once()

	_, err := svc.List(context.Background(), userID)

	assert.ErrorContains(t, err, "db down")
}
