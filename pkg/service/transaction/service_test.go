package transaction_test

import (
	"context"
	"testing"
	"time"

	"github.com/amirasaad/spendwise/internal/fixtures/mocks"
	"github.com/amirasaad/spendwise/pkg/domain"
	"github.com/amirasaad/spendwise/pkg/domain/transaction"
	"github.com/amirasaad/spendwise/pkg/dto"
	txsvc "github.com/amirasaad/spendwise/pkg/service/transaction"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2025, 6, 30, 15, 0, 0, 0, time.UTC)

func newService(t *testing.T) (*txsvc.Service, *mocks.MockTransactionRepository) {
	repo := mocks.NewMockTransactionRepository(t)
	svc := txsvc.New(mocks.NewMockUnitOfWork(repo), nil).WithClock(func() time.Time { return today })
	return svc, repo
}

func TestParsePeriod(t *testing.T) {
	midnight := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		in        string
		want      txsvc.Period
		wantStart time.Time
	}{
		{"day", txsvc.PeriodDay, midnight},
		{"Week", txsvc.PeriodWeek, midnight.AddDate(0, 0, -6)},
		{"month", txsvc.PeriodMonth, midnight.AddDate(0, 0, -29)},
		{"quarter", txsvc.PeriodQuarter, midnight.AddDate(0, 0, -89)},
		{"year", txsvc.PeriodYear, midnight.AddDate(0, 0, -364)},
		{"decade", txsvc.PeriodMonth, midnight.AddDate(0, 0, -29)},
		{"", txsvc.PeriodMonth, midnight.AddDate(0, 0, -29)},
	}
	for _, tt := range tests {
		p := txsvc.ParsePeriod(tt.in)
		assert.Equal(t, tt.want, p, tt.in)
		w := p.Window(today)
		assert.Equal(t, tt.wantStart, w.Start, tt.in)
		assert.Equal(t, midnight, w.End, tt.in)
	}
}

func TestSummary(t *testing.T) {
	svc, repo := newService(t)
	userID := uuid.New()
	start := time.Date(2025, 6, 24, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	repo.On("ListBetween", mock.Anything, userID, start, end).Return([]transaction.Transaction{
		{Amount: decimal.NewFromInt(-40), Date: end, PrimaryCategory: "FOOD_AND_DRINK"},
		{Amount: decimal.NewFromInt(-60), Date: start, PrimaryCategory: "FOOD_AND_DRINK"},
		{Amount: decimal.NewFromInt(1000), Date: end, PrimaryCategory: "INCOME"},
		{Amount: decimal.NewFromInt(-25), Date: end},
		{Amount: decimal.Zero, Date: end, PrimaryCategory: "TRANSFER_IN"},
	}, nil).Once()

	sum, err := svc.Summary(context.Background(), userID, "week")

	require.NoError(t, err)
	assert.Equal(t, txsvc.PeriodWeek, sum.Period)
	assert.Equal(t, "1000", sum.TotalIncome.String())
	assert.Equal(t, "125", sum.TotalExpenses.String())
	assert.Equal(t, "875", sum.NetSavings.String())
	assert.Equal(t, 5, sum.TransactionCount)
	require.Len(t, sum.ByCategory, 4)
	assert.Equal(t, "FOOD_AND_DRINK", sum.ByCategory[0].Category)
	assert.Equal(t, "-100", sum.ByCategory[0].Amount.String())
	assert.Equal(t, transaction.Uncategorized, sum.ByCategory[3].Category)
}

func TestList_NormalizesFilter(t *testing.T) {
	svc, repo := newService(t)
	userID := uuid.New()
	repo.On("List", mock.Anything, userID, mock.MatchedBy(func(f dto.TransactionFilter) bool {
		return f.Limit == dto.MaxPageLimit && f.Skip == 0 && f.Search == "coffee"
	})).Return([]transaction.Transaction{{ID: uuid.New()}}, nil).Once()

	out, err := svc.List(context.Background(), userID, dto.TransactionFilter{Limit: 1000, Skip: -3, Search: "coffee"})

	require.NoError(t, err)
	assert.Len(t, out, 1)
}

func TestGet(t *testing.T) {
	svc, repo := newService(t)
	userID, id := uuid.New(), uuid.New()
	repo.On("Get", mock.Anything, userID, id).Return(&transaction.Transaction{ID: id}, nil).Once()
	repo.On("Get", mock.Anything, userID, mock.Anything).Return(nil, transaction.ErrTransactionNotFound).Once()

	tx, err := svc.Get(context.Background(), userID, id)
	require.NoError(t, err)
	assert.Equal(t, id, tx.ID)

	tx, err = svc.Get(context.Background(), userID, uuid.New())
	assert.Nil(t, tx)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
