package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/farazahmedph003/GULL-2025-sub000/internal/domain"
	"github.com/farazahmedph003/GULL-2025-sub000/internal/infrastructure/postgres/generated"
)

// EntryRepository implements usecase.EntryRepository. Entry writes run
// outside the balance transaction: each create or delete is its own
// statement, retried independently by the caller.
type EntryRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(pool *pgxpool.Pool) *EntryRepository {
	return &EntryRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Create creates a new entry.
func (r *EntryRepository) Create(ctx context.Context, entry *domain.Entry) error {
	return r.queries.CreateEntry(ctx, generated.CreateEntryParams{
		ID:           entry.ID,
		UserID:       entry.UserID,
		Number:       numberColumn(entry),
		Category:     string(entry.Category),
		FirstAmount:  decimalToNumeric(entry.First),
		SecondAmount: decimalToNumeric(entry.Second),
		Notes:        textOrNull(entry.Notes),
		IsDeduction:  entry.IsDeduction,
		CreatedAt:    timeToPgTimestamptz(entry.CreatedAt),
		UpdatedAt:    timeToPgTimestamptz(entry.UpdatedAt),
	})
}

// GetByID retrieves an entry by ID.
func (r *EntryRepository) GetByID(ctx context.Context, id string) (*domain.Entry, error) {
	row, err := r.queries.GetEntryByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}

		return nil, err
	}

	return rowToEntry(row), nil
}

// Update updates an entry's amounts and notes.
func (r *EntryRepository) Update(ctx context.Context, entry *domain.Entry) error {
	affected, err := r.queries.UpdateEntry(ctx, generated.UpdateEntryParams{
		ID:           entry.ID,
		FirstAmount:  decimalToNumeric(entry.First),
		SecondAmount: decimalToNumeric(entry.Second),
		Notes:        textOrNull(entry.Notes),
		UpdatedAt:    timeToPgTimestamptz(entry.UpdatedAt),
	})
	if err != nil {
		return err
	}

	if affected == 0 {
		return domain.ErrEntryNotFound
	}

	return nil
}

// Delete removes an entry.
func (r *EntryRepository) Delete(ctx context.Context, id string) error {
	affected, err := r.queries.DeleteEntry(ctx, id)
	if err != nil {
		return err
	}

	if affected == 0 {
		return domain.ErrEntryNotFound
	}

	return nil
}

// ListByUser retrieves a page of the user's entries, newest first.
func (r *EntryRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Entry, error) {
	rows, err := r.queries.ListEntriesByUser(ctx, generated.ListEntriesByUserParams{
		UserID: userID,
		Limit:  int32(limit),
		Offset: int32(offset),
	})
	if err != nil {
		return nil, err
	}

	entries := make([]*domain.Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, rowToEntry(row))
	}

	return entries, nil
}

// ListByUserAndCategory retrieves all of the user's entries in one category.
func (r *EntryRepository) ListByUserAndCategory(ctx context.Context, userID string, category domain.Category) ([]*domain.Entry, error) {
	rows, err := r.queries.ListEntriesByUserAndCategory(ctx, generated.ListEntriesByUserAndCategoryParams{
		UserID:   userID,
		Category: string(category),
	})
	if err != nil {
		return nil, err
	}

	entries := make([]*domain.Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, rowToEntry(row))
	}

	return entries, nil
}

// numberColumn flattens a bulk entry's numbers into the single number
// column, space-joined, the same encoding old bulk rows used.
func numberColumn(e *domain.Entry) string {
	if e.IsBulk() {
		return strings.Join(e.Numbers, " ")
	}

	return e.Number
}

func rowToEntry(row generated.Entry) *domain.Entry {
	e := &domain.Entry{
		ID:          row.ID,
		UserID:      row.UserID,
		Category:    domain.Category(row.Category),
		First:       numericToDecimal(row.FirstAmount),
		Second:      numericToDecimal(row.SecondAmount),
		IsDeduction: row.IsDeduction,
		CreatedAt:   row.CreatedAt.Time,
		UpdatedAt:   row.UpdatedAt.Time,
	}

	if row.Notes.Valid {
		e.Notes = row.Notes.String
	}

	// Old bulk rows carry several delimiter-joined numbers in one column.
	if numbers := domain.SplitLegacyNumbers(row.Number); len(numbers) > 1 {
		e.Numbers = numbers
	} else {
		e.Number = row.Number
	}

	return e
}

func textOrNull(s string) pgtype.Text {
	if s == "" {
		return pgtype.Text{}
	}

	return pgtype.Text{String: s, Valid: true}
}
