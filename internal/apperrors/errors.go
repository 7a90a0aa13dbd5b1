package apperrors

import "errors"

// Data availability errors represent states where there is nothing to compute.
// Callers show a "no data" view instead of proceeding.
var (
	// ErrEmptyInput indicates that the loaded table has zero valid rows after cleaning.
	ErrEmptyInput = errors.New("no valid entries")

	// ErrEmptyRange indicates that the date-filtered table has zero rows.
	ErrEmptyRange = errors.New("no entries in range")
)

// Configuration errors are fatal at startup and never recoverable per request.
var (
	// ErrInvalidConfiguration indicates a configuration value that cannot be used,
	// such as a starting capital that is not strictly positive.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrUnknownSource indicates that SOURCE_KIND names no known data source.
	ErrUnknownSource = errors.New("unknown data source")
)

// Business logic errors represent validation failures on request parameters.
var (
	// ErrInvalidDateRange indicates that the provided date range is invalid
	// (e.g., start date is after end date).
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrNegativeAmount indicates that an amount field has an invalid negative value.
	ErrNegativeAmount = errors.New("amount cannot be negative")

	ErrInvalidDate   = errors.New("invalid date parameter")
	ErrInvalidAmount = errors.New("invalid amount parameter")
)

// Source errors represent failures while acquiring the raw table.
var (
	// ErrSourceUnavailable indicates that the data source could not be read
	// (network failure, non-2xx response, missing file).
	ErrSourceUnavailable = errors.New("data source unavailable")

	// ErrMissingColumns indicates that the source table lacks a required column.
	ErrMissingColumns = errors.New("required columns missing")

	// ErrFailedToLoad is the generic load failure reported to API clients.
	ErrFailedToLoad = errors.New("failed to load entries")
)
