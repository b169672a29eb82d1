package usecase

import (
	"context"
	"time"

	"github.com/farazahmedph003/GULL-2025-sub000/internal/domain"
)

// EntryRepository defines data access for ledger entries. Entry writes are
// independent: batches fan out over Create without a shared transaction, and
// balance consistency is guarded by compensation instead.
type EntryRepository interface {
	Create(ctx context.Context, entry *domain.Entry) error
	GetByID(ctx context.Context, id string) (*domain.Entry, error)
	Update(ctx context.Context, entry *domain.Entry) error
	Delete(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Entry, error)
	ListByUserAndCategory(ctx context.Context, userID string, category domain.Category) ([]*domain.Entry, error)
}

// BalanceRepository defines data access for user balances.
type BalanceRepository interface {
	Create(ctx context.Context, balance *domain.Balance) error
	GetByUserID(ctx context.Context, userID string) (*domain.Balance, error)
	GetByUserIDForUpdate(ctx context.Context, tx Transaction, userID string) (*domain.Balance, error)
	Update(ctx context.Context, tx Transaction, balance *domain.Balance) error
	List(ctx context.Context, limit, offset int) ([]*domain.Balance, error)
}

// OutboxRepository defines data access for outbox events.
type OutboxRepository interface {
	Create(ctx context.Context, tx Transaction, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
	DeletePublished(ctx context.Context, before time.Time) error
}

// AuditRepository defines data access for audit logs.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
	ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*domain.AuditLog, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Retrier retries an operation on transient store errors.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IdempotencyStore backs idempotent request handling.
type IdempotencyStore interface {
	// CheckAndSet claims key with a processing placeholder when unseen and
	// returns any response already stored for it.
	CheckAndSet(ctx context.Context, key string, ttl time.Duration) (bool, []byte, error)
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
