package dto

import (
	"github.com/shopspring/decimal"

	"github.com/farazahmedph003/GULL-2025-sub000/internal/domain"
	"github.com/farazahmedph003/GULL-2025-sub000/internal/usecase"
)

// SubmitBatchRequest represents a free-text batch submission.
type SubmitBatchRequest struct {
	Text     string `json:"text"`
	Category string `json:"category,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *SubmitBatchRequest) ToUseCaseInput(ownerID, actorID string) (usecase.SubmitTextInput, error) {
	input := usecase.SubmitTextInput{
		OwnerID: ownerID,
		ActorID: actorID,
		Text:    r.Text,
		Notes:   r.Notes,
	}

	if r.Category != "" {
		category, err := domain.ParseCategory(r.Category)
		if err != nil {
			return usecase.SubmitTextInput{}, err
		}
		input.DefaultCategory = category
	}

	return input, nil
}

// EditEntryRequest represents a request to change an entry's amounts.
type EditEntryRequest struct {
	First  decimal.Decimal `json:"first"`
	Second decimal.Decimal `json:"second"`
	Notes  string          `json:"notes,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *EditEntryRequest) ToUseCaseInput(ownerID, actorID, entryID string) usecase.EditEntryInput {
	return usecase.EditEntryInput{
		OwnerID: ownerID,
		ActorID: actorID,
		EntryID: entryID,
		First:   r.First,
		Second:  r.Second,
		Notes:   r.Notes,
	}
}

// SideCriteriaRequest represents one stake leg of a filter.
type SideCriteriaRequest struct {
	Operator  string          `json:"operator"`
	Threshold decimal.Decimal `json:"threshold"`
	Limit     decimal.Decimal `json:"limit"`
}

// FilterRequest represents a deduction filter over one category.
type FilterRequest struct {
	Category string               `json:"category"`
	First    *SideCriteriaRequest `json:"first,omitempty"`
	Second   *SideCriteriaRequest `json:"second,omitempty"`
}

// ToCriteria converts to domain filter criteria.
func (r *FilterRequest) ToCriteria() (domain.FilterCriteria, error) {
	category, err := domain.ParseCategory(r.Category)
	if err != nil {
		return domain.FilterCriteria{}, err
	}

	criteria := domain.FilterCriteria{Category: category}
	if r.First != nil {
		criteria.First = &domain.SideCriteria{
			Operator:  domain.FilterOperator(r.First.Operator),
			Threshold: r.First.Threshold,
			Limit:     r.First.Limit,
		}
	}
	if r.Second != nil {
		criteria.Second = &domain.SideCriteria{
			Operator:  domain.FilterOperator(r.Second.Operator),
			Threshold: r.Second.Threshold,
			Limit:     r.Second.Limit,
		}
	}

	return criteria, nil
}

// CreateBalanceRequest represents a request to open a balance.
type CreateBalanceRequest struct {
	UserID    string          `json:"user_id"`
	Opening   decimal.Decimal `json:"opening"`
	Unlimited bool            `json:"unlimited"`
}

// TopupRequest represents a request to add funds to a balance.
type TopupRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// SetUnlimitedRequest represents a request to toggle the unlimited flag.
type SetUnlimitedRequest struct {
	Unlimited bool `json:"unlimited"`
}
