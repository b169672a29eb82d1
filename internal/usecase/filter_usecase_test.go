package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/farazahmedph003/GULL-2025-sub000/internal/domain"
	"github.com/farazahmedph003/GULL-2025-sub000/internal/usecase"
)

func newFilterFixture(t *testing.T, balance *domain.Balance) (*fixture, *usecase.FilterUseCase) {
	t.Helper()

	f := newFixture(t, balance, nil)
	filter := usecase.NewFilterUseCase(f.submit, entryRepoOf(f), zerolog.Nop())

	return f, filter
}

// entryRepoOf adapts the fixture's store into the repository port without
// re-mocking it.
func entryRepoOf(f *fixture) usecase.EntryRepository {
	return storeRepo{f.store}
}

type storeRepo struct{ s *entryStore }

func (r storeRepo) Create(ctx context.Context, e *domain.Entry) error { return r.s.create(ctx, e) }
func (r storeRepo) GetByID(ctx context.Context, id string) (*domain.Entry, error) {
	return r.s.get(ctx, id)
}
func (r storeRepo) Update(ctx context.Context, e *domain.Entry) error { return r.s.update(ctx, e) }
func (r storeRepo) Delete(ctx context.Context, id string) error       { return r.s.delete(ctx, id) }
func (r storeRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Entry, error) {
	return r.s.listByUser(ctx, userID, limit, offset)
}
func (r storeRepo) ListByUserAndCategory(ctx context.Context, userID string, c domain.Category) ([]*domain.Entry, error) {
	return r.s.listByCategory(ctx, userID, c)
}

func overLimitCriteria(threshold, limit int64) domain.FilterCriteria {
	return domain.FilterCriteria{
		Category: domain.CategoryAkra,
		First: &domain.SideCriteria{
			Operator:  domain.OpGreater,
			Threshold: decimal.NewFromInt(threshold),
			Limit:     decimal.NewFromInt(limit),
		},
	}
}

func TestFilter_PreviewComputesWithoutMutating(t *testing.T) {
	f, filter := newFilterFixture(t, testBalance(0))
	f.balance.TotalSpent = decimal.NewFromInt(900)
	f.store.seed(&domain.Entry{
		ID: "e-1", UserID: testUser, Number: "23", Category: domain.CategoryAkra,
		First: decimal.NewFromInt(700),
	})
	f.store.seed(&domain.Entry{
		ID: "e-2", UserID: testUser, Number: "45", Category: domain.CategoryAkra,
		First: decimal.NewFromInt(200),
	})

	result, err := filter.Preview(context.Background(), testUser, overLimitCriteria(500, 500))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Deductions) != 1 {
		t.Fatalf("expected 1 deduction, got %d", len(result.Deductions))
	}

	d := result.Deductions[0]
	if d.Number != "23" {
		t.Fatalf("expected number 23, got %s", d.Number)
	}
	assertAmount(t, d.First, 200)

	// Preview is read-only.
	assertAmount(t, f.balance.TotalSpent, 900)
	if f.store.count() != 2 {
		t.Fatalf("expected 2 entries, got %d", f.store.count())
	}
}

func TestFilter_ApplyCreatesNegativeEntriesAndCredits(t *testing.T) {
	f, filter := newFilterFixture(t, testBalance(100))
	f.balance.TotalSpent = decimal.NewFromInt(700)
	f.store.seed(&domain.Entry{
		ID: "e-1", UserID: testUser, Number: "23", Category: domain.CategoryAkra,
		First: decimal.NewFromInt(700),
	})

	result, err := filter.Apply(context.Background(), testUser, testUser, overLimitCriteria(500, 500))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Deductions) != 1 {
		t.Fatalf("expected 1 deduction, got %d", len(result.Deductions))
	}

	// The 200 overage comes back as credit and reduces the spent counter.
	assertAmount(t, f.balance.Amount, 300)
	assertAmount(t, f.balance.TotalSpent, 500)

	if f.store.count() != 2 {
		t.Fatalf("expected original plus deduction entry, got %d", f.store.count())
	}

	var deduction *domain.Entry
	entries, _ := f.store.listByCategory(context.Background(), testUser, domain.CategoryAkra)
	for _, e := range entries {
		if e.IsDeduction {
			deduction = e
		}
	}

	if deduction == nil {
		t.Fatal("expected a deduction entry")
	}

	assertAmount(t, deduction.First, -200)

	if result.Action == nil || result.Action.Type != domain.ActionFilter {
		t.Fatalf("expected filter action, got %+v", result.Action)
	}
}

func TestFilter_ApplyThenAggregateNetsToLimit(t *testing.T) {
	f, filter := newFilterFixture(t, testBalance(100))
	f.balance.TotalSpent = decimal.NewFromInt(700)
	f.store.seed(&domain.Entry{
		ID: "e-1", UserID: testUser, Number: "23", Category: domain.CategoryAkra,
		First: decimal.NewFromInt(700),
	})

	if _, err := filter.Apply(context.Background(), testUser, testUser, overLimitCriteria(500, 500)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries, _ := f.store.listByCategory(context.Background(), testUser, domain.CategoryAkra)
	summaries := domain.Aggregate(entries, domain.CategoryAkra)

	assertAmount(t, summaries["23"].FirstTotal, 500)
}

func TestFilter_NoMatchesIsANoOp(t *testing.T) {
	f, filter := newFilterFixture(t, testBalance(100))
	f.store.seed(&domain.Entry{
		ID: "e-1", UserID: testUser, Number: "23", Category: domain.CategoryAkra,
		First: decimal.NewFromInt(100),
	})

	result, err := filter.Apply(context.Background(), testUser, testUser, overLimitCriteria(500, 500))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Deductions) != 0 || result.Action != nil {
		t.Fatalf("expected no-op, got %+v", result)
	}

	assertAmount(t, f.balance.Amount, 100)
}

func TestFilter_InvalidCriteriaRejected(t *testing.T) {
	_, filter := newFilterFixture(t, testBalance(100))

	_, err := filter.Preview(context.Background(), testUser, domain.FilterCriteria{Category: domain.CategoryAkra})
	if !errors.Is(err, domain.ErrInvalidFilter) {
		t.Fatalf("expected ErrInvalidFilter, got %v", err)
	}

	_, err = filter.Preview(context.Background(), testUser, domain.FilterCriteria{
		Category: "double",
		First:    &domain.SideCriteria{Operator: domain.OpGreater},
	})
	if !errors.Is(err, domain.ErrInvalidCategory) {
		t.Fatalf("expected ErrInvalidCategory, got %v", err)
	}
}
