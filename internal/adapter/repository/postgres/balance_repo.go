package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/farazahmedph003/GULL-2025-sub000/internal/domain"
	"github.com/farazahmedph003/GULL-2025-sub000/internal/infrastructure/postgres/generated"
	"github.com/farazahmedph003/GULL-2025-sub000/internal/usecase"
)

// BalanceRepository implements usecase.BalanceRepository.
type BalanceRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewBalanceRepository creates a new BalanceRepository.
func NewBalanceRepository(pool *pgxpool.Pool) *BalanceRepository {
	return &BalanceRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Create provisions a balance row.
func (r *BalanceRepository) Create(ctx context.Context, balance *domain.Balance) error {
	return r.queries.CreateBalance(ctx, generated.CreateBalanceParams{
		UserID:     balance.UserID,
		Amount:     decimalToNumeric(balance.Amount),
		TotalSpent: decimalToNumeric(balance.TotalSpent),
		Version:    balance.Version,
		Unlimited:  balance.Unlimited,
		CreatedAt:  timeToPgTimestamptz(balance.CreatedAt),
		UpdatedAt:  timeToPgTimestamptz(balance.UpdatedAt),
	})
}

// GetByUserID retrieves a balance without locking.
func (r *BalanceRepository) GetByUserID(ctx context.Context, userID string) (*domain.Balance, error) {
	row, err := r.queries.GetBalanceByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBalanceNotFound
		}

		return nil, err
	}

	return rowToBalance(row), nil
}

// GetByUserIDForUpdate retrieves a balance with a row lock inside tx. The
// lock serializes concurrent mutations of the same user's balance.
func (r *BalanceRepository) GetByUserIDForUpdate(ctx context.Context, tx usecase.Transaction, userID string) (*domain.Balance, error) {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	row, err := queries.GetBalanceByUserIDForUpdate(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBalanceNotFound
		}

		return nil, err
	}

	return rowToBalance(row), nil
}

// Update writes a balance within a transaction.
func (r *BalanceRepository) Update(ctx context.Context, tx usecase.Transaction, balance *domain.Balance) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	affected, err := queries.UpdateBalance(ctx, generated.UpdateBalanceParams{
		UserID:     balance.UserID,
		Amount:     decimalToNumeric(balance.Amount),
		TotalSpent: decimalToNumeric(balance.TotalSpent),
		Version:    balance.Version,
		Unlimited:  balance.Unlimited,
		UpdatedAt:  timeToPgTimestamptz(balance.UpdatedAt),
	})
	if err != nil {
		return err
	}

	if affected == 0 {
		return domain.ErrBalanceNotFound
	}

	return nil
}

// List retrieves a page of balances ordered by user ID.
func (r *BalanceRepository) List(ctx context.Context, limit, offset int) ([]*domain.Balance, error) {
	rows, err := r.queries.ListBalances(ctx, generated.ListBalancesParams{
		Limit:  int32(limit),
		Offset: int32(offset),
	})
	if err != nil {
		return nil, err
	}

	balances := make([]*domain.Balance, 0, len(rows))
	for _, row := range rows {
		balances = append(balances, rowToBalance(row))
	}

	return balances, nil
}

func rowToBalance(row generated.Balance) *domain.Balance {
	return &domain.Balance{
		UserID:     row.UserID,
		Amount:     numericToDecimal(row.Amount),
		TotalSpent: numericToDecimal(row.TotalSpent),
		Version:    row.Version,
		Unlimited:  row.Unlimited,
		CreatedAt:  row.CreatedAt.Time,
		UpdatedAt:  row.UpdatedAt.Time,
	}
}

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}
