package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// FilterOperator compares a summary total against a threshold.
type FilterOperator string

const (
	OpGreater      FilterOperator = "gt"
	OpGreaterEqual FilterOperator = "gte"
	OpEqual        FilterOperator = "eq"
	OpLessEqual    FilterOperator = "lte"
	OpLess         FilterOperator = "lt"
)

func (op FilterOperator) apply(total, threshold decimal.Decimal) bool {
	switch op {
	case OpGreater:
		return total.GreaterThan(threshold)
	case OpGreaterEqual:
		return total.GreaterThanOrEqual(threshold)
	case OpEqual:
		return total.Equal(threshold)
	case OpLessEqual:
		return total.LessThanOrEqual(threshold)
	case OpLess:
		return total.LessThan(threshold)
	default:
		return false
	}
}

// SideCriteria selects numbers by one stake leg and optionally caps the
// remaining total. Limit <= 0 means no deduction is computed for the side.
type SideCriteria struct {
	Operator  FilterOperator
	Threshold decimal.Decimal
	Limit     decimal.Decimal
}

// FilterCriteria drives the deduction calculator for one category.
type FilterCriteria struct {
	Category Category
	First    *SideCriteria
	Second   *SideCriteria
}

// Valid reports whether op is a known operator.
func (op FilterOperator) Valid() bool {
	switch op {
	case OpGreater, OpGreaterEqual, OpEqual, OpLessEqual, OpLess:
		return true
	default:
		return false
	}
}

// Validate checks the criteria name a real category, at least one side, and
// known operators.
func (c FilterCriteria) Validate() error {
	if !c.Category.Valid() {
		return ErrInvalidCategory
	}

	if c.First == nil && c.Second == nil {
		return ErrInvalidFilter
	}

	if c.First != nil && !c.First.Operator.Valid() {
		return ErrInvalidFilter
	}

	if c.Second != nil && !c.Second.Operator.Valid() {
		return ErrInvalidFilter
	}

	return nil
}

// Deduction is the per-number amount to subtract from each side so the
// number's running total drops back under the configured limit.
type Deduction struct {
	Number string
	First  decimal.Decimal
	Second decimal.Decimal
}

// ComputeDeductions selects numbers whose aggregate satisfies either side's
// operator/threshold test and computes max(0, total-limit) per capped side.
// Numbers with zero deduction on both sides are excluded. Output is sorted
// by number.
func ComputeDeductions(summaries map[string]*NumberSummary, criteria FilterCriteria) []Deduction {
	var out []Deduction

	for _, s := range summaries {
		if !matches(s, criteria) {
			continue
		}

		d := Deduction{
			Number: s.Number,
			First:  sideDeduction(s.FirstTotal, criteria.First),
			Second: sideDeduction(s.SecondTotal, criteria.Second),
		}

		if d.First.IsZero() && d.Second.IsZero() {
			continue
		}

		out = append(out, d)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })

	return out
}

func matches(s *NumberSummary, criteria FilterCriteria) bool {
	if criteria.First != nil && criteria.First.Operator.apply(s.FirstTotal, criteria.First.Threshold) {
		return true
	}

	if criteria.Second != nil && criteria.Second.Operator.apply(s.SecondTotal, criteria.Second.Threshold) {
		return true
	}

	return false
}

func sideDeduction(total decimal.Decimal, c *SideCriteria) decimal.Decimal {
	if c == nil || !c.Limit.IsPositive() {
		return decimal.Zero
	}

	d := total.Sub(c.Limit)
	if d.IsNegative() {
		return decimal.Zero
	}

	return d
}
