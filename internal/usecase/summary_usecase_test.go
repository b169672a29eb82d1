package usecase_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"github.com/farazahmedph003/GULL-2025-sub000/internal/domain"
	"github.com/farazahmedph003/GULL-2025-sub000/internal/usecase"
	"github.com/farazahmedph003/GULL-2025-sub000/internal/usecase/mocks"
)

// memoryCache is a minimal Cache for exercising the summary memoization.
type memoryCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
	hits int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: make(map[string][]byte)}
}

func (c *memoryCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.data[key]; ok {
		c.hits++
		return v, nil
	}
	return nil, nil
}

func (c *memoryCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	c.sets++
	return nil
}

func (c *memoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func summaryEntry(id, number string, first, second int64) *domain.Entry {
	return &domain.Entry{
		ID:       id,
		UserID:   "user-1",
		Number:   number,
		Category: domain.CategoryAkra,
		First:    decimal.NewFromInt(first),
		Second:   decimal.NewFromInt(second),
	}
}

func TestSummaries_AggregatesAndTotals(t *testing.T) {
	ctrl := gomock.NewController(t)
	entryRepo := mocks.NewMockEntryRepository(ctrl)

	entries := []*domain.Entry{
		summaryEntry("e1", "23", 100, 50),
		summaryEntry("e2", "23", 200, 0),
		summaryEntry("e3", "45", 75, 25),
	}
	entryRepo.EXPECT().
		ListByUserAndCategory(gomock.Any(), "user-1", domain.CategoryAkra).
		Return(entries, nil)

	uc := usecase.NewSummaryUseCase(entryRepo, nil, 0, zerolog.Nop())

	summary, err := uc.Summaries(context.Background(), "user-1", domain.CategoryAkra)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(summary.Summaries) != 2 {
		t.Fatalf("expected 2 numbers, got %d", len(summary.Summaries))
	}
	if summary.Summaries[0].Number != "23" || summary.Summaries[1].Number != "45" {
		t.Errorf("summaries not sorted by number: %+v", summary.Summaries)
	}
	if !summary.Summaries[0].FirstTotal.Equal(decimal.NewFromInt(300)) {
		t.Errorf("expected 300 first total for 23, got %s", summary.Summaries[0].FirstTotal)
	}

	if !summary.Totals.FirstTotal.Equal(decimal.NewFromInt(375)) {
		t.Errorf("expected 375 first grand total, got %s", summary.Totals.FirstTotal)
	}
	if !summary.Totals.NetTotal.Equal(decimal.NewFromInt(450)) {
		t.Errorf("expected 450 net total, got %s", summary.Totals.NetTotal)
	}
	if summary.Totals.NumberCount != 2 || summary.Totals.EntryCount != 3 {
		t.Errorf("unexpected counts: %+v", summary.Totals)
	}
}

func TestSummaries_BulkEntryCountsPerNumber(t *testing.T) {
	ctrl := gomock.NewController(t)
	entryRepo := mocks.NewMockEntryRepository(ctrl)

	bulk := &domain.Entry{
		ID:       "e1",
		UserID:   "user-1",
		Numbers:  []string{"90", "91", "92"},
		Category: domain.CategoryAkra,
		First:    decimal.NewFromInt(100),
	}
	entryRepo.EXPECT().
		ListByUserAndCategory(gomock.Any(), "user-1", domain.CategoryAkra).
		Return([]*domain.Entry{bulk}, nil)

	uc := usecase.NewSummaryUseCase(entryRepo, nil, 0, zerolog.Nop())

	summary, err := uc.Summaries(context.Background(), "user-1", domain.CategoryAkra)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.Totals.NumberCount != 3 {
		t.Fatalf("expected 3 numbers from bulk row, got %d", summary.Totals.NumberCount)
	}
	// Each covered number carries the full stake; the charge was per number.
	if !summary.Totals.FirstTotal.Equal(decimal.NewFromInt(300)) {
		t.Errorf("expected 300 first total, got %s", summary.Totals.FirstTotal)
	}
	for _, s := range summary.Summaries {
		if !s.FirstTotal.Equal(decimal.NewFromInt(100)) {
			t.Errorf("number %s: expected 100 first total, got %s", s.Number, s.FirstTotal)
		}
	}
}

func TestSummaries_CacheRoundTrip(t *testing.T) {
	ctrl := gomock.NewController(t)
	entryRepo := mocks.NewMockEntryRepository(ctrl)
	cache := newMemoryCache()

	entryRepo.EXPECT().
		ListByUserAndCategory(gomock.Any(), "user-1", domain.CategoryAkra).
		Return([]*domain.Entry{summaryEntry("e1", "23", 100, 0)}, nil).
		Times(1)

	uc := usecase.NewSummaryUseCase(entryRepo, cache, time.Minute, zerolog.Nop())

	first, err := uc.Summaries(context.Background(), "user-1", domain.CategoryAkra)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Second call must be served from the cache: the repo expectation above
	// allows exactly one list.
	second, err := uc.Summaries(context.Background(), "user-1", domain.CategoryAkra)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cache.sets != 1 || cache.hits != 1 {
		t.Errorf("expected one cache write and one hit, got sets=%d hits=%d", cache.sets, cache.hits)
	}
	if !first.Totals.FirstTotal.Equal(second.Totals.FirstTotal) {
		t.Errorf("cached summary diverged: %s vs %s", first.Totals.FirstTotal, second.Totals.FirstTotal)
	}
}

func TestSummaries_InvalidCategory(t *testing.T) {
	ctrl := gomock.NewController(t)
	entryRepo := mocks.NewMockEntryRepository(ctrl)

	uc := usecase.NewSummaryUseCase(entryRepo, nil, 0, zerolog.Nop())

	if _, err := uc.Summaries(context.Background(), "user-1", domain.Category("triple")); err != domain.ErrInvalidCategory {
		t.Fatalf("expected ErrInvalidCategory, got %v", err)
	}
}
