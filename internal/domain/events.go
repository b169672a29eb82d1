package domain

import "time"

// Event types
const (
	EventTypeEntriesCommitted = "entries.committed"
	EventTypeEntryUpdated     = "entry.updated"
	EventTypeEntryDeleted     = "entry.deleted"
	EventTypeBalanceChanged   = "balance.changed"
)

// Aggregate types
const (
	AggregateTypeBatch   = "batch"
	AggregateTypeEntry   = "entry"
	AggregateTypeBalance = "balance"
)

// OutboxEvent represents an event written transactionally with a balance
// mutation and published asynchronously.
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}

// EntriesCommittedEvent payload
type EntriesCommittedEvent struct {
	BatchID   string   `json:"batch_id"`
	UserID    string   `json:"user_id"`
	EntryIDs  []string `json:"entry_ids"`
	Category  string   `json:"category"`
	TotalCost string   `json:"total_cost"`
	Deduction bool     `json:"deduction"`
}

// EntryUpdatedEvent payload
type EntryUpdatedEvent struct {
	EntryID      string `json:"entry_id"`
	UserID       string `json:"user_id"`
	BalanceDelta string `json:"balance_delta"`
}

// EntryDeletedEvent payload
type EntryDeletedEvent struct {
	EntryID  string `json:"entry_id"`
	UserID   string `json:"user_id"`
	Refunded string `json:"refunded"`
}

// BalanceChangedEvent payload
type BalanceChangedEvent struct {
	UserID   string `json:"user_id"`
	Previous string `json:"previous"`
	Current  string `json:"current"`
}
