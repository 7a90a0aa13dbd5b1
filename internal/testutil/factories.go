package testutil

import (
	"database/sql"
	"strconv"
	"testing"
	"time"

	"github.com/ndewijer/pnl-dashboard/internal/model"
)

// EntryBuilder provides a fluent interface for creating journal entries.
//
// Example usage:
//
//	// Simple creation with defaults
//	entry := testutil.NewEntry().Build(t, db)
//
//	// Customized entry
//	entry := testutil.NewEntry().
//	    WithDate("2024-01-02").
//	    WithGain(-250000).
//	    WithNote("stopped out").
//	    Build(t, db)
type EntryBuilder struct {
	ID      string
	Date    string
	Gain    float64
	Deposit float64
	Note    string

	// GainText, when set, is stored instead of Gain to simulate hand-edited rows.
	GainText string
}

// NewEntry creates an EntryBuilder with sensible defaults.
func NewEntry() *EntryBuilder {
	return &EntryBuilder{
		ID:   MakeID(),
		Date: time.Now().UTC().Format("2006-01-02"),
		Gain: 100000,
	}
}

// WithDate sets the entry date (YYYY-MM-DD, stored as given).
func (b *EntryBuilder) WithDate(date string) *EntryBuilder {
	b.Date = date
	return b
}

// WithGain sets the day's profit or loss.
func (b *EntryBuilder) WithGain(gain float64) *EntryBuilder {
	b.Gain = gain
	return b
}

// WithGainText stores gain as raw text, e.g. "1,000", bypassing Gain.
func (b *EntryBuilder) WithGainText(gain string) *EntryBuilder {
	b.GainText = gain
	return b
}

// WithDeposit sets the deposit recorded on the day.
func (b *EntryBuilder) WithDeposit(deposit float64) *EntryBuilder {
	b.Deposit = deposit
	return b
}

// WithNote sets the free-text note.
func (b *EntryBuilder) WithNote(note string) *EntryBuilder {
	b.Note = note
	return b
}

// Build inserts the entry into pnl_entry and returns it.
func (b *EntryBuilder) Build(t *testing.T, db *sql.DB) model.JournalRow {
	t.Helper()

	query := `
		INSERT INTO pnl_entry (id, date, gain, deposit, note)
		VALUES (?, ?, ?, ?, ?)
	`

	var note any
	if b.Note != "" {
		note = b.Note
	}

	var gain any = b.Gain
	gainText := strconv.FormatFloat(b.Gain, 'g', -1, 64)
	if b.GainText != "" {
		gain = b.GainText
		gainText = b.GainText
	}

	if _, err := db.Exec(query, b.ID, b.Date, gain, b.Deposit, note); err != nil {
		t.Fatalf("Failed to create test entry: %v", err)
	}

	return model.JournalRow{
		ID:      b.ID,
		Date:    b.Date,
		Gain:    gainText,
		Deposit: strconv.FormatFloat(b.Deposit, 'g', -1, 64),
		Note:    b.Note,
	}
}

// Convenience functions

// CreateEntry creates a journal entry for date with the given gain.
//
// Example usage:
//
//	testutil.CreateEntry(t, db, "2024-01-02", 1500000)
func CreateEntry(t *testing.T, db *sql.DB, date string, gain float64) model.JournalRow {
	t.Helper()
	return NewEntry().WithDate(date).WithGain(gain).Build(t, db)
}

// Day parses a YYYY-MM-DD date as midnight UTC and fails the test on error.
func Day(t *testing.T, date string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		t.Fatalf("Invalid test date %q: %v", date, err)
	}
	return d
}

// Entries builds an in-memory entry list from alternating date, gain pairs.
//
// Example usage:
//
//	entries := testutil.Entries(t, "2024-01-01", 100.0, "2024-01-02", -50.0)
func Entries(t *testing.T, pairs ...any) []model.Entry {
	t.Helper()
	if len(pairs)%2 != 0 {
		t.Fatalf("Entries needs date, gain pairs, got %d values", len(pairs))
	}

	entries := make([]model.Entry, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		date, ok := pairs[i].(string)
		if !ok {
			t.Fatalf("Entries: value %d is not a date string", i)
		}
		gain, ok := pairs[i+1].(float64)
		if !ok {
			t.Fatalf("Entries: value %d is not a float64 gain", i+1)
		}
		entries = append(entries, model.Entry{Date: Day(t, date), Gain: gain})
	}
	return entries
}
