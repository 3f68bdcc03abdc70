package insight

import (
	"sort"
	"time"

	"github.com/amirasaad/spendwise/pkg/analytics"
	"github.com/amirasaad/spendwise/pkg/domain"
	"github.com/amirasaad/spendwise/pkg/domain/budget"
	"github.com/amirasaad/spendwise/pkg/domain/transaction"
	"github.com/shopspring/decimal"
)

const (
	// GenerationWindowDays is the trailing window analysed on each run.
	GenerationWindowDays = 90
	// RecentWindowDays drives the heuristic fallback and period comparisons.
	RecentWindowDays  = 30
	MaxRecentExpenses = 50
)

const polarityNote = "Amounts use accounting polarity: negative = expense/cash outflow, " +
	"positive = income/cash inflow. Report amounts as positive magnitudes and say " +
	"clearly whether they are expenses or income."

// Payload is the analysis document sent to the language model.
type Payload struct {
	Instruction       string                       `json:"instruction"`
	Period            PayloadPeriod                `json:"period"`
	Totals            PayloadTotals                `json:"totals"`
	ExpenseByCategory map[string]decimal.Decimal   `json:"expense_by_category"`
	IncomeByCategory  map[string]decimal.Decimal   `json:"income_by_category"`
	ExpenseByMerchant map[string]decimal.Decimal   `json:"expense_by_merchant"`
	IncomeByMerchant  map[string]decimal.Decimal   `json:"income_by_merchant"`
	LargeTransactions []analytics.LargeTransaction `json:"large_transactions"`
	RecentExpenses    []RecentExpense              `json:"recent_expenses"`
	Budgets           []PayloadBudget              `json:"budgets"`
	PolarityNote      string                       `json:"polarity_note"`
	Considerations    []string                     `json:"considerations"`
	ReturnFormat      []map[string]string          `json:"return_format"`
}

type PayloadPeriod struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type PayloadTotals struct {
	Expense decimal.Decimal `json:"expense"`
	Income  decimal.Decimal `json:"income"`
}

// RecentExpense is one outflow from the trailing 30 days.
type RecentExpense struct {
	Date     string          `json:"date"`
	Name     string          `json:"name"`
	Merchant string          `json:"merchant,omitempty"`
	Amount   decimal.Decimal `json:"amount"`
	Category string          `json:"category"`
}

type PayloadBudget struct {
	Category       string          `json:"category"`
	Amount         decimal.Decimal `json:"amount"`
	Period         budget.Period   `json:"period"`
	AlertThreshold decimal.Decimal `json:"alert_threshold"`
}

var considerations = []string{
	"spending anomalies",
	"budget alerts",
	"recurring charges",
	"trends",
	"savings opportunities",
	"positive patterns",
	"duplicate charges",
	"unusual merchants",
}

// BuildPayload assembles the analysis document from the generation-window
// summary, the raw transactions and the user's active budgets.
func BuildPayload(
	summary analytics.Summary,
	txs []transaction.Transaction,
	budgets []budget.Budget,
	today time.Time,
) Payload {
	p := Payload{
		Instruction: "Analyze the user's expenses and produce high-priority, non-duplicative insights. " +
			"Avoid repeating the same merchant or topic; consolidate duplicates.",
		Period: PayloadPeriod{
			Start: summary.Window.Start.Format(time.DateOnly),
			End:   summary.Window.End.Format(time.DateOnly),
		},
		Totals:            PayloadTotals{Expense: summary.TotalExpense, Income: summary.TotalIncome},
		ExpenseByCategory: summary.ExpenseByCategory,
		IncomeByCategory:  summary.IncomeByCategory,
		ExpenseByMerchant: summary.ExpenseByCounterparty,
		IncomeByMerchant:  summary.IncomeByCounterparty,
		LargeTransactions: summary.LargeTransactions,
		RecentExpenses:    recentExpenses(txs, today),
		Budgets:           []PayloadBudget{},
		PolarityNote:      polarityNote,
		Considerations:    considerations,
		ReturnFormat: []map[string]string{{
			"type":        "alert|warning|info|success|tip",
			"title":       "string",
			"description": "string",
			"action":      "string|optional",
			"amount":      "number|optional (positive magnitude)",
			"category":    "string|optional",
			"priority":    "1-10",
		}},
	}
	if p.LargeTransactions == nil {
		p.LargeTransactions = []analytics.LargeTransaction{}
	}
	for _, b := range budgets {
		if !b.IsActive {
			continue
		}
		p.Budgets = append(p.Budgets, PayloadBudget{
			Category:       b.Category,
			Amount:         b.Amount,
			Period:         b.Period,
			AlertThreshold: b.AlertThreshold,
		})
	}
	return p
}

func recentExpenses(txs []transaction.Transaction, today time.Time) []RecentExpense {
	w := domain.Trailing(today, RecentWindowDays)
	recent := make([]transaction.Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx.IsExpense() && w.Contains(tx.Date) {
			recent = append(recent, tx)
		}
	}
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].Date.After(recent[j].Date)
	})
	if len(recent) > MaxRecentExpenses {
		recent = recent[:MaxRecentExpenses]
	}
	out := make([]RecentExpense, 0, len(recent))
	for _, tx := range recent {
		out = append(out, RecentExpense{
			Date:     domain.DateOf(tx.Date).Format(time.DateOnly),
			Name:     tx.Name,
			Merchant: tx.MerchantName,
			Amount:   tx.Magnitude(),
			Category: tx.DisplayCategory(),
		})
	}
	return out
}
