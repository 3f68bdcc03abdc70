package analytics

import (
	"fmt"
	"testing"
	"time"

	"github.com/amirasaad/spendwise/pkg/domain"
	"github.com/amirasaad/spendwise/pkg/domain/transaction"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

func tx(daysAgo int, amount, name, merchant, category string) transaction.Transaction {
	return transaction.Transaction{
		Amount:          decimal.RequireFromString(amount),
		Date:            today.AddDate(0, 0, -daysAgo),
		Name:            name,
		MerchantName:    merchant,
		PrimaryCategory: category,
	}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestAggregate_Polarity(t *testing.T) {
	txs := []transaction.Transaction{
		tx(1, "-50", "Coffee", "Starbucks", "FOOD_AND_DRINK"),
		tx(2, "-25.50", "Lunch", "", "FOOD_AND_DRINK"),
		tx(3, "2000", "Payroll", "ACME", "INCOME"),
		tx(4, "0", "Adjustment", "", "OTHER"),
		tx(5, "-10", "", "", ""),
		tx(120, "-999", "Old", "", "TRAVEL"),
	}
	s := Aggregate(txs, domain.Trailing(today, 90))

	assert.Equal(t, 5, s.Count)
	assert.True(t, dec("85.50").Equal(s.TotalExpense), s.TotalExpense.String())
	assert.True(t, dec("2000").Equal(s.TotalIncome))
	assert.True(t, dec("75.50").Equal(s.ExpenseByCategory["FOOD_AND_DRINK"]))
	assert.True(t, dec("10").Equal(s.ExpenseByCategory[transaction.Uncategorized]))
	assert.True(t, dec("10").Equal(s.ExpenseByCounterparty[transaction.UnknownCounterparty]))
	assert.True(t, dec("50").Equal(s.ExpenseByCounterparty["Starbucks"]))
	assert.True(t, dec("25.50").Equal(s.ExpenseByCounterparty["Lunch"]))
	assert.True(t, dec("2000").Equal(s.IncomeByCounterparty["ACME"]))
	assert.True(t, dec("-75.50").Equal(s.NetByCategory["FOOD_AND_DRINK"]))
	assert.NotContains(t, s.ExpenseByCategory, "TRAVEL")
	assert.NotContains(t, s.ExpenseByCategory, "OTHER")
	assert.NotContains(t, s.IncomeByCategory, "OTHER")
	assert.True(t, dec("1914.50").Equal(s.NetSavings()))

	sum := decimal.Zero
	for _, v := range s.ExpenseByCategory {
		assert.False(t, v.IsNegative())
		sum = sum.Add(v)
	}
	assert.True(t, sum.Equal(s.TotalExpense))
}

func TestAggregate_LargeTransactionsOrderAndCap(t *testing.T) {
	txs := []transaction.Transaction{
		tx(3, "-150", "B", "", "SHOPS"),
		tx(1, "-100", "Z", "", "SHOPS"),
		tx(1, "500", "A", "", "INCOME"),
		tx(1, "-100", "M", "", "SHOPS"),
		tx(2, "-99.99", "Small", "", "SHOPS"),
	}
	s := Aggregate(txs, domain.Trailing(today, 30))
	require.Len(t, s.LargeTransactions, 4)
	names := []string{}
	for _, l := range s.LargeTransactions {
		names = append(names, l.Name)
	}
	assert.Equal(t, []string{"A", "M", "Z", "B"}, names)
	assert.Equal(t, transaction.DirectionIncome, s.LargeTransactions[0].Direction)
	assert.True(t, dec("100").Equal(s.LargeTransactions[1].Magnitude))

	var many []transaction.Transaction
	for i := 0; i < 80; i++ {
		many = append(many, tx(i%30, "-200", fmt.Sprintf("tx-%02d", i), "", "SHOPS"))
	}
	s = Aggregate(many, domain.Trailing(today, 30))
	assert.Len(t, s.LargeTransactions, MaxLargeTransactions)
}

func TestCategorySpend(t *testing.T) {
	txs := []transaction.Transaction{
		tx(1, "-40", "a", "", "FOOD_AND_DRINK"),
		tx(2, "-60", "b", "", "food_and_drink"),
		tx(3, "30", "refund", "", "FOOD_AND_DRINK"),
		tx(4, "-70", "c", "", "TRAVEL"),
		tx(5, "-25", "d", "", "FOOD_AND_DRINK"),
		tx(40, "-500", "e", "", "FOOD_AND_DRINK"),
	}
	w := domain.Trailing(today, 30)

	got := CategorySpend(txs, "FOOD_AND_DRINK", w)
	assert.True(t, dec("65").Equal(got), got.String())
	got = DisplayCategorySpend(txs, "food_and_drink", w)
	assert.True(t, dec("125").Equal(got), got.String())
}

func TestDisplayCategorySpend_Uncategorized(t *testing.T) {
	txs := []transaction.Transaction{
		tx(2, "-600", "Dinner", "", ""),
		tx(3, "-40", "Taxi", "", "TRANSPORTATION"),
	}
	w := domain.Trailing(today, 30)

	got := DisplayCategorySpend(txs, transaction.Uncategorized, w)
	assert.True(t, dec("600").Equal(got), got.String())
	assert.True(t, CategorySpend(txs, transaction.Uncategorized, w).IsZero())
}

func TestTopKeys(t *testing.T) {
	m := map[string]decimal.Decimal{
		"a": dec("10"),
		"b": dec("30"),
		"c": dec("30"),
		"d": dec("0"),
		"e": dec("5"),
	}
	assert.Equal(t, []string{"b", "c", "a"}, TopKeys(m, 3))
	assert.Equal(t, []string{"b", "c", "a", "e"}, TopKeys(m, -1))
}
