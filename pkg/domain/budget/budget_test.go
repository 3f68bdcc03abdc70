package budget

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/amirasaad/spendwise/pkg/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPeriod_Window(t *testing.T) {
	tests := []struct {
		name      string
		period    Period
		now       time.Time
		wantStart time.Time
		wantEnd   time.Time
	}{
		{"monthly leap february", Monthly, time.Date(2024, 2, 10, 15, 0, 0, 0, time.UTC), day(2024, 2, 1), day(2024, 2, 29)},
		{"monthly non-leap february", Monthly, day(2023, 2, 28), day(2023, 2, 1), day(2023, 2, 28)},
		{"monthly december", Monthly, day(2024, 12, 31), day(2024, 12, 1), day(2024, 12, 31)},
		{"weekly on wednesday", Weekly, day(2024, 5, 15), day(2024, 5, 13), day(2024, 5, 19)},
		{"weekly on monday", Weekly, day(2024, 5, 13), day(2024, 5, 13), day(2024, 5, 19)},
		{"weekly on sunday", Weekly, day(2024, 5, 19), day(2024, 5, 13), day(2024, 5, 19)},
		{"yearly", Yearly, day(2024, 7, 4), day(2024, 1, 1), day(2024, 12, 31)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := tt.period.Window(tt.now)
			assert.Equal(t, tt.wantStart, w.Start)
			assert.Equal(t, tt.wantEnd, w.End)
			if tt.period == Weekly {
				assert.Equal(t, time.Monday, w.Start.Weekday())
			}
		})
	}
}

func TestParsePeriod(t *testing.T) {
	p, ok := ParsePeriod(" Monthly ")
	assert.True(t, ok)
	assert.Equal(t, Monthly, p)
	_, ok = ParsePeriod("daily")
	assert.False(t, ok)
}

func TestEvaluate(t *testing.T) {
	w := Monthly.Window(day(2024, 2, 10))
	tests := []struct {
		name       string
		amount     string
		spent      string
		wantPct    string
		wantRemain string
		wantOver   bool
		wantNear   bool
	}{
		{"under budget", "500", "100", "20", "400", false, false},
		{"at threshold", "500", "400", "80", "100", false, true},
		{"exactly at target is not over", "500", "500", "100", "0", false, true},
		{"over budget clamps remaining", "500", "600", "120", "0", true, true},
		{"zero target", "0", "0", "0", "0", false, false},
		{"zero target with spend", "0", "25", "0", "0", true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := New(uuid.New(), "FOOD_AND_DRINK", decimal.RequireFromString(tt.amount), Monthly, nil)
			require.NoError(t, err)
			st := Evaluate(b, decimal.RequireFromString(tt.spent), w)
			assert.True(t, decimal.RequireFromString(tt.wantPct).Equal(st.PercentageUsed), "pct %s", st.PercentageUsed)
			assert.True(t, decimal.RequireFromString(tt.wantRemain).Equal(st.Remaining), "remaining %s", st.Remaining)
			assert.Equal(t, tt.wantOver, st.IsOverBudget)
			assert.Equal(t, tt.wantNear, st.IsNearThreshold)
			assert.Equal(t, w.Start, st.PeriodStart)
			assert.Equal(t, w.End, st.PeriodEnd)
		})
	}
}

func TestNew_Validation(t *testing.T) {
	user := uuid.New()
	_, err := New(user, "", decimal.NewFromInt(10), Monthly, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = New(user, "TRAVEL", decimal.NewFromInt(-1), Monthly, nil)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = New(user, "TRAVEL", decimal.NewFromInt(10), Period("daily"), nil)
	assert.ErrorIs(t, err, ErrInvalidPeriod)

	_, err = New(user, strings.Repeat("x", MaxCategoryLength+1), decimal.NewFromInt(10), Monthly, nil)
	assert.ErrorIs(t, err, ErrCategoryTooLong)

	bad := decimal.NewFromInt(-5)
	_, err = New(user, "TRAVEL", decimal.NewFromInt(10), Monthly, &bad)
	assert.True(t, errors.Is(err, ErrInvalidThreshold))

	b, err := New(user, " TRAVEL ", decimal.NewFromInt(10), Monthly, nil)
	require.NoError(t, err)
	assert.Equal(t, "TRAVEL", b.Category)
	assert.True(t, b.IsActive)
	assert.True(t, DefaultAlertThreshold.Equal(b.AlertThreshold))
}

func TestBudget_Apply(t *testing.T) {
	b, err := New(uuid.New(), "TRAVEL", decimal.NewFromInt(100), Monthly, nil)
	require.NoError(t, err)

	neg := decimal.NewFromInt(-1)
	assert.ErrorIs(t, b.Apply(Patch{Amount: &neg}), ErrInvalidAmount)
	assert.True(t, decimal.NewFromInt(100).Equal(b.Amount), "failed patch must not mutate")

	amount := decimal.NewFromInt(250)
	yearly := Yearly
	inactive := false
	require.NoError(t, b.Apply(Patch{Amount: &amount, Period: &yearly, IsActive: &inactive}))
	assert.True(t, amount.Equal(b.Amount))
	assert.Equal(t, Yearly, b.Period)
	assert.False(t, b.IsActive)
}
