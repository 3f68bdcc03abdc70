package insight

import (
	"fmt"

	"github.com/amirasaad/spendwise/pkg/analytics"
	"github.com/amirasaad/spendwise/pkg/domain/insight"
	"github.com/shopspring/decimal"
)

var (
	savingsTarget = decimal.NewFromFloat(0.8)
	savingsShare  = decimal.NewFromFloat(0.2)
)

// GapFillers derives deterministic insights per type from the aggregates.
// Every category and merchant named comes from s, ordered by spend desc.
func GapFillers(s analytics.Summary) map[insight.Type][]insight.Insight {
	fillers := make(map[insight.Type][]insight.Insight, len(insight.Types))
	cats := analytics.TopKeys(s.ExpenseByCategory, -1)
	for _, cat := range cats {
		spent := s.ExpenseByCategory[cat]
		fillers[insight.TypeAlert] = append(fillers[insight.TypeAlert], filler(insight.Insight{
			Type:        insight.TypeAlert,
			Title:       fmt.Sprintf("Top spending category: %s", cat),
			Description: fmt.Sprintf("%s accounts for %s of your spending in this period.", cat, money(spent)),
			Amount:      insight.AmountOf(spent),
			Category:    cat,
			Priority:    8,
		}))
		fillers[insight.TypeWarning] = append(fillers[insight.TypeWarning], filler(insight.Insight{
			Type:  insight.TypeWarning,
			Title: fmt.Sprintf("Keep an eye on %s", cat),
			Description: fmt.Sprintf(
				"You've spent %s on %s in this period. A budget can keep it in check.", money(spent), cat),
			Action:   fmt.Sprintf("Create a budget for %s", cat),
			Amount:   insight.AmountOf(spent),
			Category: cat,
			Priority: 6,
		}))
		target := spent.Mul(savingsTarget).Round(2)
		saving := spent.Mul(savingsShare).Round(2)
		fillers[insight.TypeTip] = append(fillers[insight.TypeTip], filler(insight.Insight{
			Type:  insight.TypeTip,
			Title: fmt.Sprintf("Save on %s", cat),
			Description: fmt.Sprintf(
				"Bringing %s down to %s would save %s.", cat, money(target), money(saving)),
			Action:   fmt.Sprintf("Set a %s target of %s", cat, money(target)),
			Amount:   insight.AmountOf(saving),
			Category: cat,
			Priority: 5,
		}))
	}

	for _, merchant := range analytics.TopKeys(s.ExpenseByCounterparty, -1) {
		spent := s.ExpenseByCounterparty[merchant]
		fillers[insight.TypeInfo] = append(fillers[insight.TypeInfo], filler(insight.Insight{
			Type:        insight.TypeInfo,
			Title:       fmt.Sprintf("Frequent merchant: %s", merchant),
			Description: fmt.Sprintf("You've spent %s at %s in this period.", money(spent), merchant),
			Amount:      insight.AmountOf(spent),
			Priority:    4,
		}))
	}

	if s.Count > 0 {
		fillers[insight.TypeSuccess] = []insight.Insight{filler(insight.Insight{
			Type:  insight.TypeSuccess,
			Title: "Consistent tracking",
			Description: fmt.Sprintf(
				"You've tracked %d transactions in this period. Keep it up!", s.Count),
			Priority: 3,
		})}
	}
	return fillers
}

func filler(in insight.Insight) insight.Insight {
	in.Data = map[string]any{"source": SourceGapFill}
	return in
}
