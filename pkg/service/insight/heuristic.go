package insight

import (
	"fmt"
	"sort"

	"github.com/amirasaad/spendwise/pkg/analytics"
	"github.com/amirasaad/spendwise/pkg/domain/insight"
	"github.com/shopspring/decimal"
)

const (
	SourceHeuristic = "heuristic"
	SourceGapFill   = "gap_fill"
)

// HeuristicNetThreshold flags a category whose 30-day net falls below it.
var HeuristicNetThreshold = decimal.NewFromInt(-500)

// Heuristic emits one warning per category whose signed net over the
// summary window is below HeuristicNetThreshold.
func Heuristic(recent analytics.Summary) []insight.Insight {
	cats := make([]string, 0, len(recent.NetByCategory))
	for cat, net := range recent.NetByCategory {
		if net.LessThan(HeuristicNetThreshold) {
			cats = append(cats, cat)
		}
	}
	sort.Strings(cats)

	out := make([]insight.Insight, 0, len(cats))
	for _, cat := range cats {
		spent := recent.NetByCategory[cat].Abs()
		out = append(out, insight.Insight{
			Type:  insight.TypeWarning,
			Title: fmt.Sprintf("High spending in %s", cat),
			Description: fmt.Sprintf(
				"You've spent %s in %s over the past %d days.", money(spent), cat, RecentWindowDays),
			Action:   fmt.Sprintf("Review recent %s purchases", cat),
			Amount:   insight.AmountOf(spent),
			Category: cat,
			Priority: 7,
			Data:     map[string]any{"source": SourceHeuristic},
		})
	}
	return out
}

func money(d decimal.Decimal) string {
	return "$" + d.Abs().StringFixed(2)
}
