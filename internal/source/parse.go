package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"

	"github.com/ndewijer/pnl-dashboard/internal/apperrors"
	"github.com/ndewijer/pnl-dashboard/internal/model"
)

var errEmptyValue = errors.New("empty value")

// layout describes how one source variant spells its columns and values.
type layout struct {
	dateColumns    []string
	gainColumns    []string
	depositColumns []string
	noteColumns    []string
	dateLayout     string
	separators     []string // stripped from amounts before parsing
}

// columns maps the required and optional fields to record indexes; -1 means absent.
type columns struct {
	date, gain, deposit, note int
}

// parseCSV reads a delimited table with a header row and cleans it per l.
func parseCSV(r io.Reader, l layout) ([]model.Entry, []model.SkippedRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read header: %w", err)
	}

	cols := columns{
		date:    columnIndex(header, l.dateColumns...),
		gain:    columnIndex(header, l.gainColumns...),
		deposit: columnIndex(header, l.depositColumns...),
		note:    columnIndex(header, l.noteColumns...),
	}
	if cols.date < 0 || cols.gain < 0 {
		return nil, nil, fmt.Errorf("%w: need %s and %s, got %v",
			apperrors.ErrMissingColumns, l.dateColumns[0], l.gainColumns[0], header)
	}

	var entries []model.Entry
	var skipped []model.SkippedRow
	line := 1

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read line %d: %w", line, err)
		}
		if blank(record) {
			continue
		}

		entry, reason := cleanRecord(record, cols, l)
		if reason != "" {
			skipped = append(skipped, model.SkippedRow{
				Line:   line,
				Date:   field(record, cols.date),
				Gain:   field(record, cols.gain),
				Reason: reason,
			})
			continue
		}
		entries = append(entries, entry)
	}

	return entries, skipped, nil
}

// cleanRecord converts one record into an Entry. A non-empty reason means
// the row must be dropped.
func cleanRecord(record []string, cols columns, l layout) (model.Entry, string) {
	date, err := parseDate(field(record, cols.date), l.dateLayout)
	if err != nil {
		return model.Entry{}, "unparseable date: " + err.Error()
	}

	gain, err := parseAmount(field(record, cols.gain), l.separators...)
	if err != nil {
		return model.Entry{}, "unparseable gain: " + err.Error()
	}

	entry := model.Entry{
		Date: date,
		Gain: gain,
		Note: strings.TrimSpace(field(record, cols.note)),
	}

	// Deposit is optional and falls back to 0 when absent or malformed.
	if deposit, err := parseAmount(field(record, cols.deposit), l.separators...); err == nil {
		entry.Deposit = deposit
	}

	return entry, ""
}

// parseDate parses a calendar date and returns midnight UTC.
func parseDate(raw, dateLayout string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, errEmptyValue
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// parseAmount strips whitespace and the given separators, then parses the
// remainder as a decimal number.
func parseAmount(raw string, separators ...string) (float64, error) {
	s := strings.Map(func(r rune) rune {
		if r == ' ' || r == '\u00a0' || r == '\t' {
			return -1
		}
		return r
	}, raw)
	for _, sep := range separators {
		s = strings.ReplaceAll(s, sep, "")
	}
	if s == "" {
		return 0, errEmptyValue
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", raw)
	}
	f := d.InexactFloat64()
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, fmt.Errorf("number %q is out of range", raw)
	}
	return f, nil
}

// columnIndex finds the first header matching any of names, ignoring case,
// surrounding whitespace, a UTF-8 BOM and Unicode normalization form.
func columnIndex(header []string, names ...string) int {
	for _, name := range names {
		want := normalizeHeader(name)
		for i, h := range header {
			if normalizeHeader(h) == want {
				return i
			}
		}
	}
	return -1
}

func normalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	return norm.NFC.String(strings.ToLower(strings.TrimSpace(h)))
}

func field(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return record[i]
}

func blank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
