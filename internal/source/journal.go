package source

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ndewijer/pnl-dashboard/internal/database"
	"github.com/ndewijer/pnl-dashboard/internal/model"
	"github.com/ndewijer/pnl-dashboard/internal/repository"
)

// JournalLoader reads entries from the pnl_entry table of a SQLite journal.
type JournalLoader struct {
	db       *sql.DB
	repo     *repository.EntryRepository
	identity string
	log      zerolog.Logger
}

// NewJournalLoader creates a loader over a migrated journal database.
// name identifies the database (usually its path) in cache keys and logs.
func NewJournalLoader(db *sql.DB, name string, log zerolog.Logger) *JournalLoader {
	return &JournalLoader{
		db:       db,
		repo:     repository.NewEntryRepository(db),
		identity: "journal:" + name,
		log:      log.With().Str("component", "journal_loader").Logger(),
	}
}

// Identity returns the journal name.
func (l *JournalLoader) Identity() string {
	return l.identity
}

// CheckStore pings the journal and reports its migration version and row
// count.
func (l *JournalLoader) CheckStore(ctx context.Context) (model.StoreStatus, error) {
	if err := database.HealthCheck(ctx, l.db); err != nil {
		return model.StoreStatus{}, fmt.Errorf("journal unreachable: %w", err)
	}
	version, err := database.SchemaVersion(l.db)
	if err != nil {
		return model.StoreStatus{}, fmt.Errorf("failed to read schema version: %w", err)
	}
	rows, err := l.repo.CountEntries(ctx)
	if err != nil {
		return model.StoreStatus{}, err
	}
	return model.StoreStatus{SchemaVersion: version, Rows: rows}, nil
}

// Load streams the journal rows and cleans them. Rows are numbered in
// query order since the table has no notion of lines.
func (l *JournalLoader) Load(ctx context.Context) (*model.Table, error) {
	var entries []model.Entry
	var skipped []model.SkippedRow
	n := 0

	err := l.repo.ListEntries(ctx, func(row model.JournalRow) error {
		n++
		entry, reason := cleanJournalRow(row)
		if reason != "" {
			skipped = append(skipped, model.SkippedRow{
				Line:   n,
				Date:   row.Date,
				Gain:   row.Gain,
				Reason: reason,
			})
			return nil
		}
		entries = append(entries, entry)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read journal: %w", err)
	}

	table := newTable(l.Identity(), entries, skipped)
	logLoad(l.log, table)
	return table, nil
}

// cleanJournalRow validates one stored row. Journal amounts are plain
// numbers, so no separators are stripped. A non-empty reason means the
// row must be dropped.
func cleanJournalRow(row model.JournalRow) (model.Entry, string) {
	date, err := repository.ParseTime(row.Date)
	if err != nil {
		return model.Entry{}, "unparseable date: " + err.Error()
	}

	gain, err := parseAmount(row.Gain)
	if err != nil {
		return model.Entry{}, "unparseable gain: " + err.Error()
	}

	entry := model.Entry{Date: date, Gain: gain, Note: row.Note}
	if deposit, err := parseAmount(row.Deposit); err == nil {
		entry.Deposit = deposit
	}
	return entry, ""
}
