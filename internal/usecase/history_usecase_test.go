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

func newHistoryFixture(t *testing.T, balance *domain.Balance) (*fixture, *usecase.HistoryUseCase) {
	t.Helper()

	f := newFixture(t, balance, nil)

	return f, usecase.NewHistoryUseCase(f.submit, 0, zerolog.Nop())
}

func submitBatch(t *testing.T, f *fixture, history *usecase.HistoryUseCase, text string) *usecase.BatchResult {
	t.Helper()

	result, err := f.submit.SubmitText(context.Background(), usecase.SubmitTextInput{
		OwnerID:         testUser,
		ActorID:         testUser,
		Text:            text,
		DefaultCategory: domain.CategoryAkra,
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	history.Record(testUser, result.Action)

	return result
}

func TestHistory_UndoRedoBatchRoundTrip(t *testing.T) {
	f, history := newHistoryFixture(t, testBalance(1000))

	submitBatch(t, f, history, "90 91 92 first 100")

	assertAmount(t, f.balance.Amount, 700)

	if _, err := history.Undo(context.Background(), testUser, testUser); err != nil {
		t.Fatalf("undo failed: %v", err)
	}

	// Undo removes the entries and restores the balance exactly.
	assertAmount(t, f.balance.Amount, 1000)
	assertAmount(t, f.balance.TotalSpent, 0)

	if f.store.count() != 0 {
		t.Fatalf("expected empty store after undo, got %d", f.store.count())
	}

	if _, err := history.Redo(context.Background(), testUser, testUser); err != nil {
		t.Fatalf("redo failed: %v", err)
	}

	assertAmount(t, f.balance.Amount, 700)
	assertAmount(t, f.balance.TotalSpent, 300)

	if f.store.count() != 3 {
		t.Fatalf("expected 3 entries after redo, got %d", f.store.count())
	}
}

func TestHistory_UndoEditRestoresOriginalAmounts(t *testing.T) {
	f, history := newHistoryFixture(t, testBalance(1000))

	result := submitBatch(t, f, history, "45 first 100 second 50")
	entryID := result.Entries[0].ID

	action, err := f.submit.EditEntry(context.Background(), usecase.EditEntryInput{
		OwnerID: testUser,
		ActorID: testUser,
		EntryID: entryID,
		First:   decimal.NewFromInt(200),
		Second:  decimal.NewFromInt(50),
	})
	if err != nil {
		t.Fatalf("edit failed: %v", err)
	}
	history.Record(testUser, action)

	assertAmount(t, f.balance.Amount, 750)

	if _, err := history.Undo(context.Background(), testUser, testUser); err != nil {
		t.Fatalf("undo failed: %v", err)
	}

	assertAmount(t, f.balance.Amount, 850)

	stored, err := f.store.get(context.Background(), entryID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertAmount(t, stored.First, 100)
}

func TestHistory_UndoDeleteRestoresEntryAndCharge(t *testing.T) {
	f, history := newHistoryFixture(t, testBalance(1000))

	result := submitBatch(t, f, history, "45 first 100 second 50")
	entryID := result.Entries[0].ID

	action, err := f.submit.DeleteEntry(context.Background(), testUser, testUser, entryID)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	history.Record(testUser, action)

	assertAmount(t, f.balance.Amount, 1000)

	if _, err := history.Undo(context.Background(), testUser, testUser); err != nil {
		t.Fatalf("undo failed: %v", err)
	}

	assertAmount(t, f.balance.Amount, 850)
	assertAmount(t, f.balance.TotalSpent, 150)

	if _, err := f.store.get(context.Background(), entryID); err != nil {
		t.Fatalf("expected entry restored, got %v", err)
	}
}

func TestHistory_EmptyStacks(t *testing.T) {
	_, history := newHistoryFixture(t, testBalance(1000))

	if _, err := history.Undo(context.Background(), testUser, testUser); !errors.Is(err, domain.ErrNothingToUndo) {
		t.Fatalf("expected ErrNothingToUndo, got %v", err)
	}

	if _, err := history.Redo(context.Background(), testUser, testUser); !errors.Is(err, domain.ErrNothingToRedo) {
		t.Fatalf("expected ErrNothingToRedo, got %v", err)
	}
}

func TestHistory_NewActionTruncatesRedoTail(t *testing.T) {
	f, history := newHistoryFixture(t, testBalance(1000))

	submitBatch(t, f, history, "10 first 50")

	if _, err := history.Undo(context.Background(), testUser, testUser); err != nil {
		t.Fatalf("undo failed: %v", err)
	}

	submitBatch(t, f, history, "20 first 60")

	if _, err := history.Redo(context.Background(), testUser, testUser); !errors.Is(err, domain.ErrNothingToRedo) {
		t.Fatalf("expected truncated redo tail, got %v", err)
	}
}

func TestHistory_StaleActionIsAbandonedAndDiscarded(t *testing.T) {
	f, history := newHistoryFixture(t, testBalance(1000))

	result := submitBatch(t, f, history, "45 first 100")

	// Entry vanishes outside the history stack.
	if err := f.store.delete(context.Background(), result.Entries[0].ID); err != nil {
		t.Fatalf("setup delete failed: %v", err)
	}

	balanceBefore := f.balance.Amount

	if _, err := history.Undo(context.Background(), testUser, testUser); !errors.Is(err, domain.ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}

	// Nothing was mutated by the abandoned replay.
	if !f.balance.Amount.Equal(balanceBefore) {
		t.Fatalf("balance changed during abandoned undo: %s", f.balance.Amount)
	}

	// The action was dropped, the stack is empty again.
	if _, err := history.Undo(context.Background(), testUser, testUser); !errors.Is(err, domain.ErrNothingToUndo) {
		t.Fatalf("expected ErrNothingToUndo, got %v", err)
	}
}

func TestHistory_Status(t *testing.T) {
	f, history := newHistoryFixture(t, testBalance(1000))

	submitBatch(t, f, history, "10 first 50")
	submitBatch(t, f, history, "20 first 50")

	if undo, redo := history.Status(testUser); undo != 2 || redo != 0 {
		t.Fatalf("expected 2/0, got %d/%d", undo, redo)
	}

	if _, err := history.Undo(context.Background(), testUser, testUser); err != nil {
		t.Fatalf("undo failed: %v", err)
	}

	if undo, redo := history.Status(testUser); undo != 1 || redo != 1 {
		t.Fatalf("expected 1/1, got %d/%d", undo, redo)
	}
}
