package budget_test

import (
	"context"
	"testing"
	"time"

	"github.com/amirasaad/spendwise/internal/fixtures/mocks"
	"github.com/amirasaad/spendwise/pkg/domain"
	"github.com/amirasaad/spendwise/pkg/domain/budget"
	"github.com/amirasaad/spendwise/pkg/domain/transaction"
	budgetsvc "github.com/amirasaad/spendwise/pkg/service/budget"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Wednesday
var fixedNow = time.Date(2024, 2, 14, 9, 30, 0, 0, time.UTC)

func newService(t *testing.T) (*budgetsvc.Service, *mocks.MockBudgetRepository, *mocks.MockTransactionRepository) {
	budgets := mocks.NewMockBudgetRepository(t)
	txs := mocks.NewMockTransactionRepository(t)
	uow := mocks.NewMockUnitOfWork(budgets, txs)
	svc := budgetsvc.New(uow, nil).WithClock(func() time.Time { return fixedNow })
	return svc, budgets, txs
}

func day(m time.Month, d int) time.Time {
	return time.Date(2024, m, d, 0, 0, 0, 0, time.UTC)
}

func expense(category string, amount int64, date time.Time) transaction.Transaction {
	return transaction.Transaction{
		Amount:          decimal.NewFromInt(amount),
		Date:            date,
		PrimaryCategory: category,
	}
}

func TestStatus(t *testing.T) {
	svc, budgets, txs := newService(t)
	userID := uuid.New()
	b := &budget.Budget{
		ID:             uuid.New(),
		UserID:         userID,
		Category:       "FOOD_AND_DRINK",
		Amount:         decimal.NewFromInt(200),
		Period:         budget.Monthly,
		IsActive:       true,
		AlertThreshold: decimal.NewFromInt(80),
	}
	budgets.On("Get", mock.Anything, userID, b.ID).Return(b, nil).Once()
	txs.On("ListBetween", mock.Anything, userID, day(2, 1), day(2, 29)).Return([]transaction.Transaction{
		expense("FOOD_AND_DRINK", -120, day(2, 3)),
		expense("FOOD_AND_DRINK", -50, day(2, 10)),
		expense("FOOD_AND_DRINK", 40, day(2, 11)),
		expense("TRAVEL", -500, day(2, 12)),
	}, nil).Once()

	st, err := svc.Status(context.Background(), userID, b.ID)

	require.NoError(t, err)
	assert.Equal(t, "170", st.Spent.String())
	assert.Equal(t, "30", st.Remaining.String())
	assert.Equal(t, "85", st.PercentageUsed.String())
	assert.False(t, st.IsOverBudget)
	assert.True(t, st.IsNearThreshold)
	assert.Equal(t, day(2, 1), st.PeriodStart)
	assert.Equal(t, day(2, 29), st.PeriodEnd)
}

func TestStatus_MatchesCategoryExactly(t *testing.T) {
	svc, budgets, txs := newService(t)
	userID := uuid.New()
	b := &budget.Budget{
		ID:       uuid.New(),
		UserID:   userID,
		Category: "FOOD_AND_DRINK",
		Amount:   decimal.NewFromInt(100),
		Period:   budget.Monthly,
		IsActive: true,
	}
	budgets.On("Get", mock.Anything, userID, b.ID).Return(b, nil).Once()
	txs.On("ListBetween", mock.Anything, userID, day(2, 1), day(2, 29)).Return([]transaction.Transaction{
		expense("FOOD_AND_DRINK", -30, day(2, 3)),
		expense("food_and_drink", -500, day(2, 4)),
		expense(" FOOD_AND_DRINK", -500, day(2, 5)),
	}, nil).Once()

	st, err := svc.Status(context.Background(), userID, b.ID)

	require.NoError(t, err)
	assert.Equal(t, "30", st.Spent.String())
	assert.False(t, st.IsOverBudget)
}

func TestStatus_NotFound(t *testing.T) {
	svc, budgets, _ := newService(t)
	userID, id := uuid.New(), uuid.New()
	budgets.On("Get", mock.Anything, userID, id).Return(nil, budget.ErrBudgetNotFound).Once()

	st, err := svc.Status(context.Background(), userID, id)

	assert.Nil(t, st)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAllStatuses_LoadsEachWindowOnce(t *testing.T) {
	svc, budgets, txs := newService(t)
	userID := uuid.New()
	active := []budget.Budget{
		{ID: uuid.New(), Category: "FOOD_AND_DRINK", Amount: decimal.NewFromInt(100), Period: budget.Weekly,
			IsActive: true, AlertThreshold: decimal.NewFromInt(80)},
		{ID: uuid.New(), Category: "TRAVEL", Amount: decimal.NewFromInt(100), Period: budget.Weekly,
			IsActive: true, AlertThreshold: decimal.NewFromInt(80)},
		{ID: uuid.New(), Category: "TRAVEL", Amount: decimal.Zero, Period: budget.Yearly,
			IsActive: true, AlertThreshold: decimal.NewFromInt(80)},
	}
	budgets.On("List", mock.Anything, userID, true).Return(active, nil).Once()
	week := []transaction.Transaction{
		expense("FOOD_AND_DRINK", -30, day(2, 12)),
		expense("TRAVEL", -150, day(2, 13)),
	}
	txs.On("ListBetween", mock.Anything, userID, day(2, 12), day(2, 18)).Return(week, nil).Once()
	txs.On("ListBetween", mock.Anything, userID, day(1, 1), day(12, 31)).Return(week, nil).Once()

	out, err := svc.AllStatuses(context.Background(), userID)

	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, "30", out[0].Spent.String())
	assert.False(t, out[0].IsNearThreshold)
	assert.True(t, out[1].IsOverBudget)
	assert.Equal(t, "0", out[1].Remaining.String())
	assert.True(t, out[2].PercentageUsed.IsZero(), "zero target never divides")
	assert.True(t, out[2].IsOverBudget)
}

func TestCreate(t *testing.T) {
	svc, budgets, _ := newService(t)
	userID := uuid.New()
	budgets.On("Create", mock.Anything, mock.MatchedBy(func(b *budget.Budget) bool {
		return b.UserID == userID && b.Category == "TRAVEL" && b.Period == budget.Yearly
	})).Return(nil).Once()

	b, err := svc.Create(context.Background(), userID, budgetsvc.CreateInput{
		Category: "TRAVEL",
		Amount:   decimal.NewFromInt(1200),
		Period:   "Yearly",
	})

	require.NoError(t, err)
	assert.True(t, b.IsActive)
	assert.Equal(t, "80", b.AlertThreshold.String())
}

func TestCreate_Validation(t *testing.T) {
	svc, _, _ := newService(t)
	tests := []struct {
		name string
		in   budgetsvc.CreateInput
	}{
		{"negative amount", budgetsvc.CreateInput{Category: "TRAVEL", Amount: decimal.NewFromInt(-1), Period: "monthly"}},
		{"unknown period", budgetsvc.CreateInput{Category: "TRAVEL", Amount: decimal.NewFromInt(1), Period: "daily"}},
		{"missing category", budgetsvc.CreateInput{Amount: decimal.NewFromInt(1), Period: "weekly"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), uuid.New(), tt.in)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestUpdateAndDelete(t *testing.T) {
	svc, budgets, _ := newService(t)
	userID := uuid.New()
	b := &budget.Budget{ID: uuid.New(), UserID: userID, Category: "TRAVEL", Amount: decimal.NewFromInt(100),
		Period: budget.Monthly, IsActive: true, AlertThreshold: decimal.NewFromInt(80)}
	budgets.On("Get", mock.Anything, userID, b.ID).Return(b, nil).Twice()
	budgets.On("Update", mock.Anything, b).Return(nil).Twice()

	threshold := decimal.NewFromInt(50)
	updated, err := svc.Update(context.Background(), userID, b.ID, budget.Patch{AlertThreshold: &threshold})
	require.NoError(t, err)
	assert.Equal(t, "50", updated.AlertThreshold.String())
	assert.Equal(t, "100", updated.Amount.String())

	require.NoError(t, svc.Delete(context.Background(), userID, b.ID))
	assert.False(t, b.IsActive)
}

func TestUpdate_InvalidPatch(t *testing.T) {
	svc, budgets, _ := newService(t)
	userID := uuid.New()
	b := &budget.Budget{ID: uuid.New(), UserID: userID, Amount: decimal.NewFromInt(100), Period: budget.Monthly}
	budgets.On("Get", mock.Anything, userID, b.ID).Return(b, nil).Once()

	threshold := decimal.NewFromInt(150)
	_, err := svc.Update(context.Background(), userID, b.ID, budget.Patch{AlertThreshold: &threshold})

	assert.ErrorIs(t, err, budget.ErrInvalidThreshold)
}
