package insight

import (
	"regexp"
	"sort"
	"strings"

	"github.com/amirasaad/spendwise/pkg/analytics"
	"github.com/amirasaad/spendwise/pkg/domain/insight"
)

var (
	numeralRun = regexp.MustCompile(`\d+(?:[.,]\d+)*`)
	whitespace = regexp.MustCompile(`\s+`)
)

// Quotas bound how many insights of each type survive selection.
type Quotas struct {
	PerType    int
	Total      int
	MinPerType int
}

// DefaultQuotas are 7 per type, 30 overall and a minimum of 3 per type.
var DefaultQuotas = Quotas{PerType: 7, Total: 30, MinPerType: 3}

// DedupKey identifies candidates that say the same thing. Numbers in the
// title are masked so "Spent $100 at Amazon" and "Spent $250 at Amazon" match.
func DedupKey(in insight.Insight) string {
	title := strings.ToLower(in.Title)
	title = numeralRun.ReplaceAllString(title, "#")
	title = strings.TrimSpace(whitespace.ReplaceAllString(title, " "))
	category := strings.ToLower(strings.TrimSpace(in.Category))
	return string(in.Type) + "|" + category + "|" + title
}

// Deduplicate collapses candidates sharing a DedupKey. The survivor has the
// higher priority, then the larger amount. First-seen order is kept.
func Deduplicate(candidates []insight.Insight) []insight.Insight {
	index := make(map[string]int, len(candidates))
	out := make([]insight.Insight, 0, len(candidates))
	for _, c := range candidates {
		key := DedupKey(c)
		i, seen := index[key]
		if !seen {
			index[key] = len(out)
			out = append(out, c)
			continue
		}
		if outranks(c, out[i]) {
			out[i] = c
		}
	}
	return out
}

// outranks orders by priority, then amount magnitude.
func outranks(a, b insight.Insight) bool {
	if a.Priority != b.Priority {
		return a.Priority > b.Priority
	}
	return a.Magnitude().GreaterThan(b.Magnitude())
}

// Rank sorts candidates by priority desc, then amount magnitude desc.
func Rank(candidates []insight.Insight) {
	sort.SliceStable(candidates, func(i, j int) bool {
		return outranks(candidates[i], candidates[j])
	})
}

// Ranker deduplicates, ranks and selects insights within Quotas.
type Ranker struct {
	quotas Quotas
}

func NewRanker(q Quotas) *Ranker {
	if q.PerType <= 0 {
		q.PerType = DefaultQuotas.PerType
	}
	if q.Total <= 0 {
		q.Total = DefaultQuotas.Total
	}
	if q.MinPerType < 0 {
		q.MinPerType = 0
	}
	if q.MinPerType > q.PerType {
		q.MinPerType = q.PerType
	}
	return &Ranker{quotas: q}
}

// Select returns the final ranked set. When fill is non-nil, types left
// below the minimum are topped up first from unpicked candidates and then
// from deterministic insights derived from fill's aggregates.
func (r *Ranker) Select(candidates []insight.Insight, fill *analytics.Summary) []insight.Insight {
	ranked := Deduplicate(candidates)
	Rank(ranked)

	sel := newSelection(r.quotas)
	picked := make([]bool, len(ranked))
	for i, c := range ranked {
		if len(sel.items) >= r.quotas.Total {
			break
		}
		if sel.counts[c.Type] >= r.quotas.PerType {
			continue
		}
		sel.add(c)
		picked[i] = true
	}

	if fill != nil {
		for _, t := range insight.Types {
			for i, c := range ranked {
				if sel.counts[t] >= r.quotas.MinPerType {
					break
				}
				if picked[i] || c.Type != t || sel.has(c) {
					continue
				}
				if sel.admit(c) {
					picked[i] = true
				}
			}
		}
		r.gapFill(sel, GapFillers(*fill))
	}

	out := sel.items
	Rank(out)
	return out
}

// gapFill visits types round-robin, taking one filler per under-filled type
// per round, and stops once a full round makes no progress.
func (r *Ranker) gapFill(sel *selection, fillers map[insight.Type][]insight.Insight) {
	next := make(map[insight.Type]int, len(fillers))
	for {
		progress := false
		for _, t := range insight.Types {
			if sel.counts[t] >= r.quotas.MinPerType {
				continue
			}
			queue := fillers[t]
			for next[t] < len(queue) {
				c := queue[next[t]]
				next[t]++
				if sel.has(c) {
					continue
				}
				if sel.admit(c) {
					progress = true
				}
				break
			}
		}
		if !progress {
			return
		}
	}
}

type selection struct {
	quotas Quotas
	items  []insight.Insight
	counts map[insight.Type]int
	keys   map[string]bool
}

func newSelection(q Quotas) *selection {
	return &selection{
		quotas: q,
		counts: make(map[insight.Type]int),
		keys:   make(map[string]bool),
	}
}

func (s *selection) has(c insight.Insight) bool { return s.keys[DedupKey(c)] }

func (s *selection) add(c insight.Insight) {
	s.items = append(s.items, c)
	s.counts[c.Type]++
	s.keys[DedupKey(c)] = true
}

// admit adds c, evicting the lowest-ranked insight of a type holding more
// than its minimum when the total cap is reached.
func (s *selection) admit(c insight.Insight) bool {
	if s.counts[c.Type] >= s.quotas.PerType {
		return false
	}
	if len(s.items) >= s.quotas.Total && !s.evict(c.Type) {
		return false
	}
	s.add(c)
	return true
}

func (s *selection) evict(keep insight.Type) bool {
	victim := -1
	for i, it := range s.items {
		if it.Type == keep || s.counts[it.Type] <= s.quotas.MinPerType {
			continue
		}
		if victim < 0 || outranks(s.items[victim], it) {
			victim = i
		}
	}
	if victim < 0 {
		return false
	}
	v := s.items[victim]
	s.items = append(s.items[:victim], s.items[victim+1:]...)
	s.counts[v.Type]--
	delete(s.keys, DedupKey(v))
	return true
}
