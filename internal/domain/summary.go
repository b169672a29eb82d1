package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// NumberSummary aggregates every live entry staked on one number within a
// category. Derived data: recomputed from the entry set, never persisted.
type NumberSummary struct {
	Number      string
	FirstTotal  decimal.Decimal
	SecondTotal decimal.Decimal
	EntryCount  int
	Entries     []*Entry
}

// Aggregate folds entries of the given category into per-number summaries.
// A bulk entry counts its full first/second amounts against each of its
// numbers, not divided between them.
func Aggregate(entries []*Entry, category Category) map[string]*NumberSummary {
	summaries := make(map[string]*NumberSummary)

	for _, e := range entries {
		if e.Category != category {
			continue
		}

		for _, number := range e.AllNumbers() {
			s, ok := summaries[number]
			if !ok {
				s = &NumberSummary{
					Number:      number,
					FirstTotal:  decimal.Zero,
					SecondTotal: decimal.Zero,
				}
				summaries[number] = s
			}

			s.FirstTotal = s.FirstTotal.Add(e.First)
			s.SecondTotal = s.SecondTotal.Add(e.Second)
			s.EntryCount++
			s.Entries = append(s.Entries, e)
		}
	}

	return summaries
}

// SortedSummaries returns the summaries ordered by number for stable display.
func SortedSummaries(summaries map[string]*NumberSummary) []*NumberSummary {
	out := make([]*NumberSummary, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, s)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })

	return out
}

// SideTotal returns the summary total for one stake leg.
func (s *NumberSummary) SideTotal(side Side) decimal.Decimal {
	if side == SideSecond {
		return s.SecondTotal
	}

	return s.FirstTotal
}
