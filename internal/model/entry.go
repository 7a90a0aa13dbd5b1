package model

import "time"

// Entry is one day of trading results as delivered by a data source.
// Date carries no time component (midnight UTC). Deposit and Note are
// display-only and never take part in derived math.
type Entry struct {
	Date    time.Time `json:"date"`
	Gain    float64   `json:"gain"`
	Deposit float64   `json:"deposit"`
	Note    string    `json:"note,omitempty"`
}

// SkippedRow records a source row that was dropped during cleaning
// because its date or gain could not be parsed.
type SkippedRow struct {
	Line   int    `json:"line"`
	Date   string `json:"date"`
	Gain   string `json:"gain"`
	Reason string `json:"reason"`
}

// Table is the cleaned result of one source load: valid entries sorted
// ascending by date plus diagnostics for the rows that were dropped.
type Table struct {
	LoadID   string       // Unique per load, lets clients detect a refresh
	Source   string       // Identity of the loader that produced the table
	LoadedAt time.Time    // When the load completed
	Entries  []Entry      // Valid rows, stable-sorted by date
	Skipped  []SkippedRow // Rows dropped during cleaning
}

// Len returns the number of valid entries.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Entries)
}

// JournalRow is a raw pnl_entry record as stored in the SQLite journal,
// before any of its values have been validated. Gain and Deposit are kept
// as text because SQLite stores non-numeric input in FLOAT columns as-is.
type JournalRow struct {
	ID      string
	Date    string
	Gain    string
	Deposit string
	Note    string
}
