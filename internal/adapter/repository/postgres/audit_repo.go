package postgres

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/farazahmedph003/GULL-2025-sub000/internal/domain"
)

// AuditRepository implements audit log persistence. Audit writes stay off
// the generated query path: the table evolves more often than the ledger
// schema and best-effort inserts do not need prepared plans.
type AuditRepository struct {
	pool *pgxpool.Pool
}

// NewAuditRepository creates a new audit repository.
func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{pool: pool}
}

// Create inserts a new audit log entry.
func (r *AuditRepository) Create(ctx context.Context, log *domain.AuditLog) error {
	var beforeStateJSON, afterStateJSON []byte
	var err error

	if log.BeforeState != nil {
		beforeStateJSON, err = json.Marshal(log.BeforeState)
		if err != nil {
			return err
		}
	}

	if log.AfterState != nil {
		afterStateJSON, err = json.Marshal(log.AfterState)
		if err != nil {
			return err
		}
	}

	query := `
		INSERT INTO audit_logs (
			id, actor_id, owner_id, action, resource_type, resource_id,
			request_id, before_state, after_state, status, error_message, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err = r.pool.Exec(ctx, query,
		log.ID,
		log.ActorID,
		log.OwnerID,
		log.Action,
		log.ResourceType,
		log.ResourceID,
		textOrNull(log.RequestID),
		beforeStateJSON,
		afterStateJSON,
		log.Status,
		textOrNull(log.ErrorMessage),
		log.CreatedAt,
	)

	return err
}

// ListByOwner retrieves the audit trail against one owner's ledger, newest
// first.
func (r *AuditRepository) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*domain.AuditLog, error) {
	query := `
		SELECT id, actor_id, owner_id, action, resource_type, resource_id,
		       request_id, before_state, after_state, status, error_message, created_at
		FROM audit_logs
		WHERE owner_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*domain.AuditLog
	for rows.Next() {
		var (
			log          domain.AuditLog
			requestID    pgtype.Text
			errorMessage pgtype.Text
			beforeState  []byte
			afterState   []byte
			createdAt    pgtype.Timestamptz
		)

		if err := rows.Scan(
			&log.ID,
			&log.ActorID,
			&log.OwnerID,
			&log.Action,
			&log.ResourceType,
			&log.ResourceID,
			&requestID,
			&beforeState,
			&afterState,
			&log.Status,
			&errorMessage,
			&createdAt,
		); err != nil {
			return nil, err
		}

		log.RequestID = requestID.String
		log.ErrorMessage = errorMessage.String
		log.CreatedAt = createdAt.Time

		if len(beforeState) > 0 {
			if err := json.Unmarshal(beforeState, &log.BeforeState); err != nil {
				return nil, err
			}
		}

		if len(afterState) > 0 {
			if err := json.Unmarshal(afterState, &log.AfterState); err != nil {
				return nil, err
			}
		}

		logs = append(logs, &log)
	}

	return logs, rows.Err()
}
