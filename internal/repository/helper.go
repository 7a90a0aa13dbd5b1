package repository

import (
	"fmt"
	"time"
)

// dateLayouts are tried in order; SQLite hands DATE columns back as
// whatever text was stored, so all common shapes are accepted.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// ParseTime parses a stored date in any of the accepted layouts and
// returns it truncated to midnight UTC.
func ParseTime(str string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, str)
		if err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
		}
		lastErr = err
	}
	return time.Time{}, fmt.Errorf("failed to parse date: %w", lastErr)
}
