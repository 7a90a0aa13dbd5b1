package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ndewijer/pnl-dashboard/internal/model"
)

// EntryRepository provides read access to the pnl_entry table of a journal database.
type EntryRepository struct {
	db *sql.DB
}

// NewEntryRepository creates a new repository instance.
func NewEntryRepository(db *sql.DB) *EntryRepository {
	return &EntryRepository{db: db}
}

// ListEntries streams every journal row ordered by date, then insertion order.
// The callback pattern lets the loader clean rows one at a time; iteration
// stops at the first callback error, which is returned unchanged.
func (r *EntryRepository) ListEntries(ctx context.Context, callback func(row model.JournalRow) error) error {
	query := `
		SELECT id, date, gain, deposit, note
		FROM pnl_entry
		ORDER BY date ASC, created_at ASC, rowid ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to query pnl_entry: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var row model.JournalRow
		var deposit, note sql.NullString

		if err := rows.Scan(&row.ID, &row.Date, &row.Gain, &deposit, &note); err != nil {
			return fmt.Errorf("failed to scan row: %w", err)
		}
		if deposit.Valid {
			row.Deposit = deposit.String
		}
		if note.Valid {
			row.Note = note.String
		}

		if err := callback(row); err != nil {
			return err
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating rows: %w", err)
	}

	return nil
}

// CountEntries returns the number of rows in the journal.
func (r *EntryRepository) CountEntries(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM pnl_entry").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count pnl_entry: %w", err)
	}
	return count, nil
}
