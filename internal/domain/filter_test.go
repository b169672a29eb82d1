package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestComputeDeductions(t *testing.T) {
	summaries := Aggregate([]*Entry{
		entry("23", CategoryAkra, 800, 100),
		entry("45", CategoryAkra, 300, 900),
		entry("67", CategoryAkra, 100, 100),
	}, CategoryAkra)

	criteria := FilterCriteria{
		Category: CategoryAkra,
		First:    &SideCriteria{Operator: OpGreater, Threshold: d(500), Limit: d(500)},
		Second:   &SideCriteria{Operator: OpGreater, Threshold: d(500), Limit: d(400)},
	}

	deductions := ComputeDeductions(summaries, criteria)

	if len(deductions) != 2 {
		t.Fatalf("expected 2 deductions, got %d: %v", len(deductions), deductions)
	}

	// Sorted by number: 23 then 45.
	if deductions[0].Number != "23" || deductions[0].First.String() != "300" || !deductions[0].Second.IsZero() {
		t.Errorf("unexpected deduction for 23: %+v", deductions[0])
	}

	if deductions[1].Number != "45" || !deductions[1].First.IsZero() || deductions[1].Second.String() != "500" {
		t.Errorf("unexpected deduction for 45: %+v", deductions[1])
	}
}

func TestComputeDeductions_NoLimitMeansNoOutput(t *testing.T) {
	summaries := Aggregate([]*Entry{entry("23", CategoryAkra, 800, 0)}, CategoryAkra)

	// Matches the threshold but has no limit set: nothing to cap.
	criteria := FilterCriteria{
		Category: CategoryAkra,
		First:    &SideCriteria{Operator: OpGreater, Threshold: d(500)},
	}

	if got := ComputeDeductions(summaries, criteria); len(got) != 0 {
		t.Errorf("expected no deductions, got %v", got)
	}
}

func TestComputeDeductions_UnderLimitExcluded(t *testing.T) {
	summaries := Aggregate([]*Entry{entry("23", CategoryAkra, 600, 0)}, CategoryAkra)

	criteria := FilterCriteria{
		Category: CategoryAkra,
		First:    &SideCriteria{Operator: OpGreaterEqual, Threshold: d(600), Limit: d(700)},
	}

	// Qualifies by threshold but total is already under the limit.
	if got := ComputeDeductions(summaries, criteria); len(got) != 0 {
		t.Errorf("expected no deductions, got %v", got)
	}
}

func TestFilterOperators(t *testing.T) {
	tests := []struct {
		op    FilterOperator
		total int64
		want  bool
	}{
		{OpGreater, 501, true},
		{OpGreater, 500, false},
		{OpGreaterEqual, 500, true},
		{OpEqual, 500, true},
		{OpEqual, 499, false},
		{OpLessEqual, 500, true},
		{OpLess, 499, true},
		{OpLess, 500, false},
	}

	for _, tt := range tests {
		if got := tt.op.apply(d(tt.total), d(500)); got != tt.want {
			t.Errorf("%s(%d, 500): expected %v, got %v", tt.op, tt.total, tt.want, got)
		}
	}
}

func TestLimitConfig_Check(t *testing.T) {
	cap := d(500)
	limits := LimitConfig{
		CategoryAkra: SideLimits{First: &cap},
	}

	// 450 + 100 > 500 must fail with full context.
	err := limits.Check(CategoryAkra, "23", SideFirst, d(450), d(100))

	var exceeded *LimitExceededError
	if !errors.As(err, &exceeded) {
		t.Fatalf("expected LimitExceededError, got %v", err)
	}

	if exceeded.Number != "23" || exceeded.Side != SideFirst {
		t.Errorf("wrong context: %+v", exceeded)
	}

	if exceeded.Cap.String() != "500" || exceeded.Current.String() != "450" {
		t.Errorf("wrong amounts: %+v", exceeded)
	}

	if exceeded.Excess().String() != "50" {
		t.Errorf("expected excess 50, got %s", exceeded.Excess())
	}

	// Exactly at the cap passes.
	if err := limits.Check(CategoryAkra, "23", SideFirst, d(450), d(50)); err != nil {
		t.Errorf("expected cap-exact to pass, got %v", err)
	}

	// Unconfigured side is unlimited.
	if err := limits.Check(CategoryAkra, "23", SideSecond, d(10000), d(10000)); err != nil {
		t.Errorf("expected unlimited side to pass, got %v", err)
	}

	// Deductions always pass.
	if err := limits.Check(CategoryAkra, "23", SideFirst, d(1000), d(-100)); err != nil {
		t.Errorf("expected deduction to pass, got %v", err)
	}
}
