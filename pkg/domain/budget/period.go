package budget

import (
	"strings"
	"time"

	"github.com/amirasaad/spendwise/pkg/domain"
)

// Period is the recurrence of a budget.
type Period string

const (
	Weekly  Period = "weekly"
	Monthly Period = "monthly"
	Yearly  Period = "yearly"
)

// ParsePeriod normalizes s and reports whether it names a known period.
func ParsePeriod(s string) (Period, bool) {
	p := Period(strings.ToLower(strings.TrimSpace(s)))
	return p, p.Valid()
}

func (p Period) Valid() bool {
	switch p {
	case Weekly, Monthly, Yearly:
		return true
	}
	return false
}

// Window returns the calendar range of the period containing now.
// Weeks run Monday to Sunday.
func (p Period) Window(now time.Time) domain.DateRange {
	today := domain.DateOf(now)
	switch p {
	case Weekly:
		// time.Weekday starts on Sunday
		offset := (int(today.Weekday()) + 6) % 7
		start := today.AddDate(0, 0, -offset)
		return domain.DateRange{Start: start, End: start.AddDate(0, 0, 6)}
	case Yearly:
		start := time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		return domain.DateRange{Start: start, End: time.Date(today.Year(), time.December, 31, 0, 0, 0, 0, time.UTC)}
	default:
		start := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
		return domain.DateRange{Start: start, End: start.AddDate(0, 1, -1)}
	}
}
