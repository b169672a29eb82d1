package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func entry(number string, c Category, first, second int64) *Entry {
	return &Entry{
		ID:       "e-" + number,
		Number:   number,
		Category: c,
		First:    decimal.NewFromInt(first),
		Second:   decimal.NewFromInt(second),
	}
}

func TestAggregate(t *testing.T) {
	entries := []*Entry{
		entry("23", CategoryAkra, 100, 50),
		entry("23", CategoryAkra, 200, 0),
		entry("45", CategoryAkra, 10, 10),
		entry("150", CategoryRing, 999, 0), // other category, ignored
	}

	summaries := Aggregate(entries, CategoryAkra)

	if len(summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(summaries))
	}

	s := summaries["23"]
	if s == nil {
		t.Fatal("missing summary for 23")
	}

	if s.FirstTotal.String() != "300" || s.SecondTotal.String() != "50" {
		t.Errorf("unexpected totals: first=%s second=%s", s.FirstTotal, s.SecondTotal)
	}

	if s.EntryCount != 2 || len(s.Entries) != 2 {
		t.Errorf("expected 2 contributing entries, got count=%d len=%d", s.EntryCount, len(s.Entries))
	}
}

func TestAggregate_BulkEntryCountsFullAmountPerNumber(t *testing.T) {
	bulk := &Entry{
		ID:       "bulk-1",
		Numbers:  []string{"01", "02", "03"},
		Category: CategoryAkra,
		First:    decimal.NewFromInt(100),
		Second:   decimal.Zero,
	}

	summaries := Aggregate([]*Entry{bulk}, CategoryAkra)

	if len(summaries) != 3 {
		t.Fatalf("expected 3 summaries, got %d", len(summaries))
	}

	for _, n := range []string{"01", "02", "03"} {
		s := summaries[n]
		if s == nil {
			t.Fatalf("missing summary for %s", n)
		}
		if s.FirstTotal.String() != "100" {
			t.Errorf("number %s: expected first total 100 (not divided), got %s", n, s.FirstTotal)
		}
		if s.EntryCount != 1 {
			t.Errorf("number %s: expected entry count 1, got %d", n, s.EntryCount)
		}
	}
}

func TestAggregate_Idempotent(t *testing.T) {
	entries := []*Entry{
		entry("7", CategoryOpen, 10, 20),
		entry("7", CategoryOpen, 5, 5),
	}

	first := Aggregate(entries, CategoryOpen)
	second := Aggregate(entries, CategoryOpen)

	if len(first) != len(second) {
		t.Fatalf("aggregation not stable: %d vs %d", len(first), len(second))
	}

	for number, s1 := range first {
		s2 := second[number]
		if s2 == nil {
			t.Fatalf("missing %s on second run", number)
		}
		if !s1.FirstTotal.Equal(s2.FirstTotal) || !s1.SecondTotal.Equal(s2.SecondTotal) || s1.EntryCount != s2.EntryCount {
			t.Errorf("number %s differs between runs", number)
		}
	}
}

func TestSortedSummaries(t *testing.T) {
	summaries := Aggregate([]*Entry{
		entry("45", CategoryAkra, 1, 0),
		entry("02", CategoryAkra, 1, 0),
		entry("23", CategoryAkra, 1, 0),
	}, CategoryAkra)

	sorted := SortedSummaries(summaries)

	want := []string{"02", "23", "45"}
	for i, s := range sorted {
		if s.Number != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], s.Number)
		}
	}
}

func TestSplitLegacyNumbers(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{"01 02 03", []string{"01", "02", "03"}},
		{"01,02,03", []string{"01", "02", "03"}},
		{"01, 02 ,03", []string{"01", "02", "03"}},
		{"42", []string{"42"}},
	}

	for _, tt := range tests {
		got := SplitLegacyNumbers(tt.raw)
		if len(got) != len(tt.want) {
			t.Fatalf("%q: expected %d numbers, got %v", tt.raw, len(tt.want), got)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("%q: position %d: expected %s, got %s", tt.raw, i, tt.want[i], got[i])
			}
		}
	}
}
