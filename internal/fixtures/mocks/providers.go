package mocks

import (
	"context"
	"time"

	"github.com/amirasaad/spendwise/pkg/provider"
	"github.com/amirasaad/spendwise/pkg/ratelimit"
	"github.com/stretchr/testify/mock"
)

// MockInsightGenerator mocks provider.InsightGenerator.
type MockInsightGenerator struct{ mock.Mock }

func NewMockInsightGenerator(t testingT) *MockInsightGenerator {
	m := &MockInsightGenerator{}
	register(t, &m.Mock)
	return m
}

func (m *MockInsightGenerator) Generate(ctx context.Context, system, payload string) (string, error) {
	args := m.Called(ctx, system, payload)
	return args.String(0), args.Error(1)
}

func (m *MockInsightGenerator) Name() string { return "mock" }

// MockBankingProvider mocks provider.BankingProvider.
type MockBankingProvider struct{ mock.Mock }

func NewMockBankingProvider(t testingT) *MockBankingProvider {
	m := &MockBankingProvider{}
	register(t, &m.Mock)
	return m
}

func (m *MockBankingProvider) FetchTransactions(
	ctx context.Context,
	accessToken string,
	start, end time.Time,
) ([]provider.BankTransaction, error) {
	args := m.Called(ctx, accessToken, start, end)
	out, _ := args.Get(0).([]provider.BankTransaction)
	return out, args.Error(1)
}

func (m *MockBankingProvider) FetchAccounts(ctx context.Context, accessToken string) ([]provider.BankAccount, error) {
	args := m.Called(ctx, accessToken)
	out, _ := args.Get(0).([]provider.BankAccount)
	return out, args.Error(1)
}

// MockLimiter mocks ratelimit.Limiter.
type MockLimiter struct{ mock.Mock }

func NewMockLimiter(t testingT) *MockLimiter {
	m := &MockLimiter{}
	register(t, &m.Mock)
	return m
}

func (m *MockLimiter) Allow(ctx context.Context, key string) (ratelimit.Result, error) {
	args := m.Called(ctx, key)
	res, _ := args.Get(0).(ratelimit.Result)
	return res, args.Error(1)
}
