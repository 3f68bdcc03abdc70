package mocks

import (
	"context"
	"time"

	"github.com/amirasaad/spendwise/pkg/domain/account"
	"github.com/amirasaad/spendwise/pkg/domain/budget"
	"github.com/amirasaad/spendwise/pkg/domain/insight"
	"github.com/amirasaad/spendwise/pkg/domain/transaction"
	"github.com/amirasaad/spendwise/pkg/domain/user"
	"github.com/amirasaad/spendwise/pkg/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

func register(t testingT, m *mock.Mock) {
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
}

// MockTransactionRepository mocks transaction.Repository.
type MockTransactionRepository struct{ mock.Mock }

func NewMockTransactionRepository(t testingT) *MockTransactionRepository {
	m := &MockTransactionRepository{}
	register(t, &m.Mock)
	return m
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx *transaction.Transaction) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *MockTransactionRepository) Update(ctx context.Context, tx *transaction.Transaction) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *MockTransactionRepository) Get(
	ctx context.Context,
	userID, id uuid.UUID,
) (*transaction.Transaction, error) {
	args := m.Called(ctx, userID, id)
	tx, _ := args.Get(0).(*transaction.Transaction)
	return tx, args.Error(1)
}

func (m *MockTransactionRepository) GetByExternalID(
	ctx context.Context,
	externalID string,
) (*transaction.Transaction, error) {
	args := m.Called(ctx, externalID)
	tx, _ := args.Get(0).(*transaction.Transaction)
	return tx, args.Error(1)
}

func (m *MockTransactionRepository) List(
	ctx context.Context,
	userID uuid.UUID,
	filter dto.TransactionFilter,
) ([]transaction.Transaction, error) {
	args := m.Called(ctx, userID, filter)
	txs, _ := args.Get(0).([]transaction.Transaction)
	return txs, args.Error(1)
}

func (m *MockTransactionRepository) ListBetween(
	ctx context.Context,
	userID uuid.UUID,
	start, end time.Time,
) ([]transaction.Transaction, error) {
	args := m.Called(ctx, userID, start, end)
	txs, _ := args.Get(0).([]transaction.Transaction)
	return txs, args.Error(1)
}

// MockBudgetRepository mocks budget.Repository.
type MockBudgetRepository struct{ mock.Mock }

func NewMockBudgetRepository(t testingT) *MockBudgetRepository {
	m := &MockBudgetRepository{}
	register(t, &m.Mock)
	return m
}

func (m *MockBudgetRepository) Create(ctx context.Context, b *budget.Budget) error {
	return m.Called(ctx, b).Error(0)
}

func (m *MockBudgetRepository) Update(ctx context.Context, b *budget.Budget) error {
	return m.Called(ctx, b).Error(0)
}

func (m *MockBudgetRepository) Get(ctx context.Context, userID, id uuid.UUID) (*budget.Budget, error) {
	args := m.Called(ctx, userID, id)
	b, _ := args.Get(0).(*budget.Budget)
	return b, args.Error(1)
}

func (m *MockBudgetRepository) List(
	ctx context.Context,
	userID uuid.UUID,
	activeOnly bool,
) ([]budget.Budget, error) {
	args := m.Called(ctx, userID, activeOnly)
	bs, _ := args.Get(0).([]budget.Budget)
	return bs, args.Error(1)
}

// MockInsightRepository mocks insight.Repository.
type MockInsightRepository struct{ mock.Mock }

func NewMockInsightRepository(t testingT) *MockInsightRepository {
	m := &MockInsightRepository{}
	register(t, &m.Mock)
	return m
}

func (m *MockInsightRepository) ListActive(
	ctx context.Context,
	userID uuid.UUID,
	now time.Time,
) ([]insight.Insight, error) {
	args := m.Called(ctx, userID, now)
	out, _ := args.Get(0).([]insight.Insight)
	return out, args.Error(1)
}

func (m *MockInsightRepository) Get(ctx context.Context, userID, id uuid.UUID) (*insight.Insight, error) {
	args := m.Called(ctx, userID, id)
	in, _ := args.Get(0).(*insight.Insight)
	return in, args.Error(1)
}

func (m *MockInsightRepository) SetFlags(ctx context.Context, in *insight.Insight) error {
	return m.Called(ctx, in).Error(0)
}

func (m *MockInsightRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *MockInsightRepository) DeleteUndismissed(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	n, _ := args.Get(0).(int64)
	return n, args.Error(1)
}

func (m *MockInsightRepository) CreateBatch(ctx context.Context, insights []insight.Insight) error {
	return m.Called(ctx, insights).Error(0)
}

// MockAccountRepository mocks account.Repository.
type MockAccountRepository struct{ mock.Mock }

func NewMockAccountRepository(t testingT) *MockAccountRepository {
	m := &MockAccountRepository{}
	register(t, &m.Mock)
	return m
}

func (m *MockAccountRepository) ListConnections(
	ctx context.Context,
	userID uuid.UUID,
) ([]account.Connection, error) {
	args := m.Called(ctx, userID)
	out, _ := args.Get(0).([]account.Connection)
	return out, args.Error(1)
}

func (m *MockAccountRepository) GetByProviderAccountID(
	ctx context.Context,
	userID uuid.UUID,
	providerAccountID string,
) (*account.Account, error) {
	args := m.Called(ctx, userID, providerAccountID)
	a, _ := args.Get(0).(*account.Account)
	return a, args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, userID uuid.UUID) ([]account.Account, error) {
	args := m.Called(ctx, userID)
	out, _ := args.Get(0).([]account.Account)
	return out, args.Error(1)
}

func (m *MockAccountRepository) UpdateBalance(
	ctx context.Context,
	userID uuid.UUID,
	balance account.Balance,
) error {
	return m.Called(ctx, userID, balance).Error(0)
}

// MockUserRepository mocks user.Repository.
type MockUserRepository struct{ mock.Mock }

func NewMockUserRepository(t testingT) *MockUserRepository {
	m := &MockUserRepository{}
	register(t, &m.Mock)
	return m
}

func (m *MockUserRepository) Get(ctx context.Context, id uuid.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, page, pageSize int) ([]user.User, error) {
	args := m.Called(ctx, page, pageSize)
	out, _ := args.Get(0).([]user.User)
	return out, args.Error(1)
}
