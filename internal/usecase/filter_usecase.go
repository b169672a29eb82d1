package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/farazahmedph003/GULL-2025-sub000/internal/domain"
)

// FilterUseCase runs the deduction calculator: select numbers whose
// aggregated totals match the criteria, cap each matched side at the
// configured limit, and materialize the overage as negative entries.
type FilterUseCase struct {
	submit    *SubmitUseCase
	entryRepo EntryRepository
	logger    zerolog.Logger
}

// NewFilterUseCase creates a new FilterUseCase.
func NewFilterUseCase(submit *SubmitUseCase, entryRepo EntryRepository, logger zerolog.Logger) *FilterUseCase {
	return &FilterUseCase{
		submit:    submit,
		entryRepo: entryRepo,
		logger:    logger,
	}
}

// FilterResult is a computed deduction set, previewed or applied.
type FilterResult struct {
	Category   domain.Category
	Deductions []domain.Deduction
	Action     *domain.HistoryAction
}

// Preview computes the deductions the criteria would produce without
// touching any state.
func (uc *FilterUseCase) Preview(ctx context.Context, userID string, criteria domain.FilterCriteria) (*FilterResult, error) {
	deductions, err := uc.compute(ctx, userID, criteria)
	if err != nil {
		return nil, err
	}

	return &FilterResult{Category: criteria.Category, Deductions: deductions}, nil
}

// Apply computes the deductions and commits them as one batch of negative
// entries, crediting the owner's balance by the deducted total. The batch is
// recorded as a single reversible action.
func (uc *FilterUseCase) Apply(ctx context.Context, ownerID, actorID string, criteria domain.FilterCriteria) (*FilterResult, error) {
	deductions, err := uc.compute(ctx, ownerID, criteria)
	if err != nil {
		return nil, err
	}

	result := &FilterResult{Category: criteria.Category, Deductions: deductions}
	if len(deductions) == 0 {
		return result, nil
	}

	now := time.Now().UTC()

	entries := make([]*domain.Entry, 0, len(deductions))
	for _, d := range deductions {
		entries = append(entries, &domain.Entry{
			UserID:      ownerID,
			Number:      d.Number,
			Category:    criteria.Category,
			First:       d.First.Neg(),
			Second:      d.Second.Neg(),
			IsDeduction: true,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}

	batch, err := uc.submit.SubmitEntries(ctx, ownerID, actorID, entries, domain.ActionFilter)
	if batch != nil {
		result.Action = batch.Action
	}
	if err != nil {
		return result, err
	}

	if uc.submit.metrics != nil {
		uc.submit.metrics.DeductionsApplied.Add(float64(len(deductions)))
		uc.submit.metrics.DeductionAmount.Observe(batch.TotalCost.Abs().InexactFloat64())
	}

	uc.logger.Info().
		Str("user_id", ownerID).
		Str("category", string(criteria.Category)).
		Int("deductions", len(deductions)).
		Msg("filter deductions applied")

	return result, nil
}

func (uc *FilterUseCase) compute(ctx context.Context, userID string, criteria domain.FilterCriteria) ([]domain.Deduction, error) {
	if err := criteria.Validate(); err != nil {
		return nil, err
	}

	entries, err := uc.entryRepo.ListByUserAndCategory(ctx, userID, criteria.Category)
	if err != nil {
		return nil, err
	}

	summaries := domain.Aggregate(entries, criteria.Category)

	return domain.ComputeDeductions(summaries, criteria), nil
}
