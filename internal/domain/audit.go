package domain

import "time"

// AuditLog records who performed a mutation and against whose balance. For
// admin impersonation ActorID differs from OwnerID: the action is attributed
// to the admin while the owner's balance carries the effect.
type AuditLog struct {
	ID           string
	ActorID      string
	OwnerID      string
	Action       string
	ResourceType string
	ResourceID   string
	RequestID    string
	BeforeState  JSON
	AfterState   JSON
	Status       string
	ErrorMessage string
	CreatedAt    time.Time
}

// JSON is a type alias for JSON data
type JSON map[string]any

// AuditAction represents different types of auditable actions
type AuditAction string

const (
	AuditActionBatchSubmit AuditAction = "batch.submit"
	AuditActionEntryEdit   AuditAction = "entry.edit"
	AuditActionEntryDelete AuditAction = "entry.delete"
	AuditActionFilterApply AuditAction = "filter.apply"
	AuditActionUndo        AuditAction = "history.undo"
	AuditActionRedo        AuditAction = "history.redo"
	AuditActionTopup       AuditAction = "balance.topup"
)

// AuditStatus represents the status of an audited action
type AuditStatus string

const (
	AuditStatusSuccess AuditStatus = "success"
	AuditStatusFailure AuditStatus = "failure"
	AuditStatusError   AuditStatus = "error"
)
