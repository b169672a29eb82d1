package dto

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/farazahmedph003/GULL-2025-sub000/internal/domain"
)

func TestSubmitBatchRequest_ToUseCaseInput(t *testing.T) {
	req := &SubmitBatchRequest{
		Text:     "90 91 92 first 100",
		Category: "Akra",
		Notes:    "evening book",
	}

	input, err := req.ToUseCaseInput("user-1", "operator-9")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if input.OwnerID != "user-1" || input.ActorID != "operator-9" {
		t.Errorf("identity not carried: %+v", input)
	}
	if input.DefaultCategory != domain.CategoryAkra {
		t.Errorf("expected akra default category, got %q", input.DefaultCategory)
	}
	if input.Notes != "evening book" {
		t.Errorf("notes not carried: %q", input.Notes)
	}
}

func TestSubmitBatchRequest_InvalidCategory(t *testing.T) {
	req := &SubmitBatchRequest{Text: "12 first 50", Category: "triple"}

	if _, err := req.ToUseCaseInput("user-1", "user-1"); err == nil {
		t.Fatal("expected an error for an unknown category")
	}
}

func TestSubmitBatchRequest_EmptyCategoryAllowed(t *testing.T) {
	req := &SubmitBatchRequest{Text: "open 5 first 50"}

	input, err := req.ToUseCaseInput("user-1", "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if input.DefaultCategory != "" {
		t.Errorf("expected no default category, got %q", input.DefaultCategory)
	}
}

func TestFilterRequest_ToCriteria(t *testing.T) {
	req := &FilterRequest{
		Category: "akra",
		First: &SideCriteriaRequest{
			Operator:  "gt",
			Threshold: decimal.NewFromInt(500),
			Limit:     decimal.NewFromInt(500),
		},
	}

	criteria, err := req.ToCriteria()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if criteria.Category != domain.CategoryAkra {
		t.Errorf("expected akra, got %q", criteria.Category)
	}
	if criteria.First == nil || criteria.First.Operator != domain.OpGreater {
		t.Errorf("first side criteria not mapped: %+v", criteria.First)
	}
	if criteria.Second != nil {
		t.Errorf("expected nil second side, got %+v", criteria.Second)
	}
	if err := criteria.Validate(); err != nil {
		t.Errorf("mapped criteria should validate: %v", err)
	}
}

func TestFilterRequest_InvalidCategory(t *testing.T) {
	req := &FilterRequest{Category: "bogus"}

	if _, err := req.ToCriteria(); err == nil {
		t.Fatal("expected an error for an unknown category")
	}
}
