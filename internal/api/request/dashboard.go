// Package request parses and validates HTTP query parameters.
package request

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/pnl-dashboard/internal/apperrors"
	"github.com/ndewijer/pnl-dashboard/internal/validation"
)

// ParseDate parses a date query parameter. Accepts YYYY-MM-DD and RFC3339;
// the time of day is dropped. An empty string yields the zero time, which
// the dashboard service treats as "first" or "last" entry.
func ParseDate(param string) (time.Time, error) {
	param = strings.TrimSpace(param)
	if param == "" {
		return time.Time{}, nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, param); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: cannot parse %q as a date", apperrors.ErrInvalidDate, param)
}

// ParseDateRange parses start_date and end_date. Both are optional; when
// both are given the start must not be after the end. Failures are
// reported per parameter as a *validation.Error.
func ParseDateRange(startParam, endParam string) (time.Time, time.Time, error) {
	var v validation.Error

	start, err := ParseDate(startParam)
	if err != nil {
		v.Add("start_date", err)
	}
	end, err := ParseDate(endParam)
	if err != nil {
		v.Add("end_date", err)
	}
	if v.Err() == nil && !start.IsZero() && !end.IsZero() && start.After(end) {
		v.Add("end_date", fmt.Errorf("%w: start_date %s is after end_date %s",
			apperrors.ErrInvalidDateRange, startParam, endParam))
	}

	if err := v.Err(); err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

// ParseAmount parses an investment amount. Thousands separators (",", "_"
// and spaces) are ignored. An empty string yields def.
func ParseAmount(param string, def float64) (float64, error) {
	cleaned := strings.NewReplacer(",", "", "_", "", " ", "").Replace(param)
	if cleaned == "" {
		return def, nil
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", apperrors.ErrInvalidAmount, param)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("%w: %q", apperrors.ErrNegativeAmount, param)
	}
	f := d.InexactFloat64()
	if math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %q", apperrors.ErrInvalidAmount, param)
	}
	return f, nil
}
