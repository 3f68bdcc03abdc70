package domain

import "time"

// DateRange is a closed range of calendar days [Start, End].
// Both bounds are normalized to midnight UTC.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// DateOf truncates t to its calendar day in UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NewDateRange builds a range from two instants, keeping only their dates.
func NewDateRange(start, end time.Time) DateRange {
	return DateRange{Start: DateOf(start), End: DateOf(end)}
}

// Trailing returns [today-days, today].
func Trailing(today time.Time, days int) DateRange {
	end := DateOf(today)
	return DateRange{Start: end.AddDate(0, 0, -days), End: end}
}

// Contains reports whether the calendar day of t falls inside the range.
func (r DateRange) Contains(t time.Time) bool {
	d := DateOf(t)
	return !d.Before(r.Start) && !d.After(r.End)
}

// Key identifies the range, used to group work per window.
func (r DateRange) Key() string {
	return r.Start.Format(time.DateOnly) + ".." + r.End.Format(time.DateOnly)
}
