package insight

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/amirasaad/spendwise/pkg/domain/insight"
)

// spendCategories are provider categories that only ever hold outflows.
var spendCategories = map[string]bool{
	"food_and_drink":            true,
	"general_merchandise":       true,
	"general_services":          true,
	"transportation":            true,
	"travel":                    true,
	"rent_and_utilities":        true,
	"entertainment":             true,
	"personal_care":             true,
	"home_improvement":          true,
	"medical":                   true,
	"loan_payments":             true,
	"bank_fees":                 true,
	"government_and_non_profit": true,
	"food and drink":            true,
	"restaurants":               true,
	"groceries":                 true,
	"shops":                     true,
	"recreation":                true,
	"service":                   true,
	"healthcare":                true,
}

var incomeWording = []struct {
	pattern     *regexp.Regexp
	replacement string
}{
	{regexp.MustCompile(`(?i)\bincome\b`), "expense"},
	{regexp.MustCompile(`(?i)\breceived\b`), "spent"},
	{regexp.MustCompile(`(?i)\bearnings?\b`), "spending"},
}

// IsSpendCategory reports whether category only ever holds expenses.
func IsSpendCategory(category string) bool {
	return spendCategories[strings.ToLower(strings.TrimSpace(category))]
}

// Sanitize rewrites income wording on insights about spend categories.
func Sanitize(insights []insight.Insight) {
	for i := range insights {
		in := &insights[i]
		if !IsSpendCategory(in.Category) {
			continue
		}
		in.Title = rewriteIncomeWording(in.Title)
		in.Description = rewriteIncomeWording(in.Description)
	}
}

func rewriteIncomeWording(s string) string {
	for _, w := range incomeWording {
		s = w.pattern.ReplaceAllStringFunc(s, func(match string) string {
			return matchCase(match, w.replacement)
		})
	}
	return s
}

// matchCase capitalizes replacement when match starts with an upper-case letter.
func matchCase(match, replacement string) string {
	r, _ := utf8.DecodeRuneInString(match)
	if !unicode.IsUpper(r) {
		return replacement
	}
	first, size := utf8.DecodeRuneInString(replacement)
	return string(unicode.ToUpper(first)) + replacement[size:]
}
