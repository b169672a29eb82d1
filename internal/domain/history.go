package domain

import "time"

// ActionType classifies a reversible mutation.
type ActionType string

const (
	ActionAdd    ActionType = "add"
	ActionEdit   ActionType = "edit"
	ActionDelete ActionType = "delete"
	ActionBatch  ActionType = "batch"
	ActionFilter ActionType = "filter"
)

// HistoryAction records one committed mutation with enough payload to replay
// its inverse (undo) or forward (redo) effect without re-deriving anything
// from current state.
type HistoryAction struct {
	Timestamp       time.Time
	Type            ActionType
	AffectedNumbers []string

	// add/batch/filter: the entries created by the action.
	Created []*Entry
	// delete: the removed entry.
	Deleted *Entry
	// edit: both sides of the change.
	Original *Entry
	Updated  *Entry
}

// NewBatchAction records a committed batch (or single add, or filter
// deduction run) over its persisted entries.
func NewBatchAction(t ActionType, entries []*Entry) *HistoryAction {
	a := &HistoryAction{
		Timestamp: time.Now().UTC(),
		Type:      t,
	}

	for _, e := range entries {
		a.Created = append(a.Created, e.Clone())
		a.AffectedNumbers = append(a.AffectedNumbers, e.AllNumbers()...)
	}

	return a
}

// NewEditAction records an edit with both the original and updated entry.
func NewEditAction(original, updated *Entry) *HistoryAction {
	return &HistoryAction{
		Timestamp:       time.Now().UTC(),
		Type:            ActionEdit,
		AffectedNumbers: original.AllNumbers(),
		Original:        original.Clone(),
		Updated:         updated.Clone(),
	}
}

// NewDeleteAction records a delete with the full removed entry.
func NewDeleteAction(deleted *Entry) *HistoryAction {
	return &HistoryAction{
		Timestamp:       time.Now().UTC(),
		Type:            ActionDelete,
		AffectedNumbers: deleted.AllNumbers(),
		Deleted:         deleted.Clone(),
	}
}
