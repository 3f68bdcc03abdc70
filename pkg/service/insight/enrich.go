package insight

import (
	"fmt"
	"strings"
	"time"

	"github.com/amirasaad/spendwise/pkg/analytics"
	"github.com/amirasaad/spendwise/pkg/domain"
	"github.com/amirasaad/spendwise/pkg/domain/insight"
	"github.com/amirasaad/spendwise/pkg/domain/transaction"
	"github.com/shopspring/decimal"
)

const comparisonMarker = "(Last 30 days:"

var hundred = decimal.NewFromInt(100)

// ComparisonWindows returns the trailing 30 days and the 30 days before them.
func ComparisonWindows(today time.Time) (current, prior domain.DateRange) {
	current = domain.Trailing(today, RecentWindowDays)
	end := current.Start.AddDate(0, 0, -1)
	prior = domain.DateRange{Start: end.AddDate(0, 0, -(RecentWindowDays - 1)), End: end}
	return current, prior
}

// PercentDelta is the change from prior to current, rounded to whole percent.
// A zero prior with positive current counts as +100%.
func PercentDelta(current, prior decimal.Decimal) decimal.Decimal {
	if prior.IsZero() {
		if current.IsPositive() {
			return hundred
		}
		return decimal.Zero
	}
	return current.Sub(prior).Div(prior).Mul(hundred).Round(0)
}

func formatDelta(d decimal.Decimal) string {
	if d.IsNegative() {
		return d.String() + "%"
	}
	return "+" + d.String() + "%"
}

// Enrich appends a period comparison clause to every categorized insight.
// Categories with no spend in either window are left untouched.
func Enrich(insights []insight.Insight, txs []transaction.Transaction, today time.Time) {
	current, prior := ComparisonWindows(today)
	for i := range insights {
		in := &insights[i]
		if in.Category == "" || strings.Contains(in.Description, comparisonMarker) {
			continue
		}
		cur := analytics.DisplayCategorySpend(txs, in.Category, current)
		prev := analytics.DisplayCategorySpend(txs, in.Category, prior)
		if cur.IsZero() && prev.IsZero() {
			continue
		}
		delta := PercentDelta(cur, prev)
		clause := fmt.Sprintf("%s %s spent in %s, %s vs prior 30 days.)",
			comparisonMarker, money(cur), in.Category, formatDelta(delta))
		in.Description = strings.TrimSpace(strings.TrimSpace(in.Description) + " " + clause)
		if in.Data == nil {
			in.Data = map[string]any{}
		}
		in.Data["period_comparison"] = map[string]any{
			"current":   cur.StringFixed(2),
			"prior":     prev.StringFixed(2),
			"delta_pct": delta.String(),
		}
	}
}
