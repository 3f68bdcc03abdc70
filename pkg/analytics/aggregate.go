// Package analytics turns raw transactions into the spending aggregates that
// feed budgets, summaries and insight generation.
package analytics

import (
	"sort"
	"strings"
	"time"

	"github.com/amirasaad/spendwise/pkg/domain"
	"github.com/amirasaad/spendwise/pkg/domain/transaction"
	"github.com/shopspring/decimal"
)

const MaxLargeTransactions = 50

// LargeTransactionThreshold is the minimum magnitude of a large transaction.
var LargeTransactionThreshold = decimal.NewFromInt(100)

// LargeTransaction is a notable single movement inside the window.
type LargeTransaction struct {
	Date      time.Time             `json:"date"`
	Name      string                `json:"name"`
	Merchant  string                `json:"merchant,omitempty"`
	Amount    decimal.Decimal       `json:"amount"`
	Magnitude decimal.Decimal       `json:"amount_abs"`
	Direction transaction.Direction `json:"direction"`
	Category  string                `json:"category"`
}

// Summary is the aggregate view of transactions inside one window.
// All maps except NetByCategory hold non-negative magnitudes.
type Summary struct {
	Window                domain.DateRange
	ExpenseByCategory     map[string]decimal.Decimal
	IncomeByCategory      map[string]decimal.Decimal
	ExpenseByCounterparty map[string]decimal.Decimal
	IncomeByCounterparty  map[string]decimal.Decimal
	NetByCategory         map[string]decimal.Decimal
	TotalExpense          decimal.Decimal
	TotalIncome           decimal.Decimal
	Count                 int
	LargeTransactions     []LargeTransaction
}

// NetSavings is income minus expense.
func (s Summary) NetSavings() decimal.Decimal {
	return s.TotalIncome.Sub(s.TotalExpense)
}

// Aggregate sums the transactions whose date falls inside w.
// Large transactions are ordered by date desc, magnitude desc, name asc.
func Aggregate(txs []transaction.Transaction, w domain.DateRange) Summary {
	s := Summary{
		Window:                w,
		ExpenseByCategory:     map[string]decimal.Decimal{},
		IncomeByCategory:      map[string]decimal.Decimal{},
		ExpenseByCounterparty: map[string]decimal.Decimal{},
		IncomeByCounterparty:  map[string]decimal.Decimal{},
		NetByCategory:         map[string]decimal.Decimal{},
	}
	for _, tx := range txs {
		if !w.Contains(tx.Date) {
			continue
		}
		s.Count++
		cat := tx.DisplayCategory()
		party := tx.Counterparty()
		mag := tx.Magnitude()
		s.NetByCategory[cat] = s.NetByCategory[cat].Add(tx.Amount)

		switch tx.Direction() {
		case transaction.DirectionExpense:
			s.ExpenseByCategory[cat] = s.ExpenseByCategory[cat].Add(mag)
			s.ExpenseByCounterparty[party] = s.ExpenseByCounterparty[party].Add(mag)
			s.TotalExpense = s.TotalExpense.Add(mag)
		case transaction.DirectionIncome:
			s.IncomeByCategory[cat] = s.IncomeByCategory[cat].Add(mag)
			s.IncomeByCounterparty[party] = s.IncomeByCounterparty[party].Add(mag)
			s.TotalIncome = s.TotalIncome.Add(mag)
		}

		if mag.GreaterThanOrEqual(LargeTransactionThreshold) {
			s.LargeTransactions = append(s.LargeTransactions, LargeTransaction{
				Date:      domain.DateOf(tx.Date),
				Name:      tx.Name,
				Merchant:  tx.MerchantName,
				Amount:    tx.Amount,
				Magnitude: mag,
				Direction: tx.Direction(),
				Category:  cat,
			})
		}
	}

	sort.SliceStable(s.LargeTransactions, func(i, j int) bool {
		a, b := s.LargeTransactions[i], s.LargeTransactions[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.After(b.Date)
		}
		if c := a.Magnitude.Cmp(b.Magnitude); c != 0 {
			return c > 0
		}
		return a.Name < b.Name
	})
	if len(s.LargeTransactions) > MaxLargeTransactions {
		s.LargeTransactions = s.LargeTransactions[:MaxLargeTransactions]
	}
	return s
}

// CategorySpend sums expense magnitudes inside w whose primary category
// equals category exactly.
func CategorySpend(txs []transaction.Transaction, category string, w domain.DateRange) decimal.Decimal {
	return sumExpenses(txs, w, func(tx transaction.Transaction) bool {
		return tx.PrimaryCategory == category
	})
}

// DisplayCategorySpend is CategorySpend keyed by the display category, so
// Uncategorized collects transactions without a primary category. Case is
// ignored.
func DisplayCategorySpend(txs []transaction.Transaction, category string, w domain.DateRange) decimal.Decimal {
	category = strings.TrimSpace(category)
	return sumExpenses(txs, w, func(tx transaction.Transaction) bool {
		return strings.EqualFold(tx.DisplayCategory(), category)
	})
}

func sumExpenses(
	txs []transaction.Transaction,
	w domain.DateRange,
	match func(transaction.Transaction) bool,
) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txs {
		if tx.IsExpense() && w.Contains(tx.Date) && match(tx) {
			total = total.Add(tx.Magnitude())
		}
	}
	return total
}

// TopKeys returns up to n keys of m ordered by value desc, then key asc.
func TopKeys(m map[string]decimal.Decimal, n int) []string {
	keys := make([]string, 0, len(m))
	for k, v := range m {
		if v.IsPositive() {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if c := m[keys[i]].Cmp(m[keys[j]]); c != 0 {
			return c > 0
		}
		return keys[i] < keys[j]
	})
	if n >= 0 && len(keys) > n {
		keys = keys[:n]
	}
	return keys
}
