package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/farazahmedph003/GULL-2025-sub000/internal/domain"
)

// SummaryUseCase serves per-number aggregates over a user's entries, with a
// short-lived cache in front of the repository. The cache is invalidated by
// the submit pipeline whenever a category's entries change.
type SummaryUseCase struct {
	entryRepo EntryRepository
	cache     Cache
	cacheTTL  time.Duration
	logger    zerolog.Logger
}

// NewSummaryUseCase creates a new SummaryUseCase.
func NewSummaryUseCase(entryRepo EntryRepository, cache Cache, cacheTTL time.Duration, logger zerolog.Logger) *SummaryUseCase {
	return &SummaryUseCase{
		entryRepo: entryRepo,
		cache:     cache,
		cacheTTL:  cacheTTL,
		logger:    logger,
	}
}

// CategoryTotals is the grand total line for one category view.
type CategoryTotals struct {
	FirstTotal  decimal.Decimal `json:"first_total"`
	SecondTotal decimal.Decimal `json:"second_total"`
	NetTotal    decimal.Decimal `json:"net_total"`
	EntryCount  int             `json:"entry_count"`
	NumberCount int             `json:"number_count"`
}

// CategorySummary bundles the sorted per-number rows with their totals.
type CategorySummary struct {
	Category  domain.Category         `json:"category"`
	Summaries []*domain.NumberSummary `json:"summaries"`
	Totals    CategoryTotals          `json:"totals"`
}

// Summaries returns the per-number aggregation for one category, sorted by
// number ascending.
func (uc *SummaryUseCase) Summaries(ctx context.Context, userID string, category domain.Category) (*CategorySummary, error) {
	if !category.Valid() {
		return nil, domain.ErrInvalidCategory
	}

	key := summaryCacheKey(userID, category)

	if uc.cache != nil {
		if data, err := uc.cache.Get(ctx, key); err == nil && data != nil {
			var cached CategorySummary
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, nil
			}

			uc.logger.Debug().Str("key", key).Msg("discarding undecodable summary cache entry")
		}
	}

	entries, err := uc.entryRepo.ListByUserAndCategory(ctx, userID, category)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	summaries := domain.SortedSummaries(domain.Aggregate(entries, category))

	result := &CategorySummary{
		Category:  category,
		Summaries: summaries,
		Totals:    totalsOf(summaries, entries),
	}

	if uc.cache != nil {
		if data, err := json.Marshal(result); err == nil {
			if err := uc.cache.Set(ctx, key, data, uc.cacheTTL); err != nil {
				uc.logger.Debug().Err(err).Str("key", key).Msg("summary cache write failed")
			}
		}
	}

	return result, nil
}

// EntriesByCategory returns the raw entry list behind one category view,
// newest first as the repository orders them.
func (uc *SummaryUseCase) EntriesByCategory(ctx context.Context, userID string, category domain.Category) ([]*domain.Entry, error) {
	if !category.Valid() {
		return nil, domain.ErrInvalidCategory
	}

	return uc.entryRepo.ListByUserAndCategory(ctx, userID, category)
}

// Entries returns a page of the user's entries across categories.
func (uc *SummaryUseCase) Entries(ctx context.Context, userID string, limit, offset int) ([]*domain.Entry, error) {
	return uc.entryRepo.ListByUser(ctx, userID, limit, offset)
}

func totalsOf(summaries []*domain.NumberSummary, entries []*domain.Entry) CategoryTotals {
	t := CategoryTotals{
		FirstTotal:  decimal.Zero,
		SecondTotal: decimal.Zero,
		NumberCount: len(summaries),
		EntryCount:  len(entries),
	}

	// A bulk entry stands for one entry per covered number, so its amounts
	// count once per number in the money totals, matching what was charged.
	for _, e := range entries {
		n := decimal.NewFromInt(int64(e.NumberCount()))
		t.FirstTotal = t.FirstTotal.Add(e.First.Mul(n))
		t.SecondTotal = t.SecondTotal.Add(e.Second.Mul(n))
		t.NetTotal = t.NetTotal.Add(e.NetStake())
	}

	return t
}

func summaryCacheKey(userID string, category domain.Category) string {
	return fmt.Sprintf("summary:%s:%s", userID, category)
}
