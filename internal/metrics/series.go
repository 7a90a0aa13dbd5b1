package metrics

import (
	"fmt"
	"math"
	"time"

	"github.com/ndewijer/pnl-dashboard/internal/apperrors"
	"github.com/ndewijer/pnl-dashboard/internal/model"
)

// ComputeSeries derives the cumulative capital curve, portfolio and ROI
// percentages and the daily growth percentage for every entry.
//
// Entries must already be sorted ascending by date; the running sum is
// order-dependent and ComputeSeries does not reorder its input.
//
// Daily growth is measured against the capital at the end of the previous
// row, with the starting capital standing in before the first row. When
// that previous capital is exactly zero the growth is model.Undefined().
//
// Returns apperrors.ErrInvalidConfiguration when startingCapital is not a
// positive finite number and apperrors.ErrEmptyInput when entries is empty.
func ComputeSeries(entries []model.Entry, startingCapital float64) (model.Series, error) {
	if err := ValidateStartingCapital(startingCapital); err != nil {
		return model.Series{}, err
	}
	if len(entries) == 0 {
		return model.Series{}, apperrors.ErrEmptyInput
	}

	rows := make([]model.SeriesRow, len(entries))
	var cumulative float64
	prevCapital := startingCapital

	for i, e := range entries {
		cumulative += e.Gain
		capital := startingCapital + cumulative

		growth := model.Undefined()
		if prevCapital != 0 {
			growth = model.Ratio(100 * e.Gain / prevCapital)
		}

		rows[i] = model.SeriesRow{
			Date:           e.Date,
			Gain:           e.Gain,
			Deposit:        e.Deposit,
			Note:           e.Note,
			CumulativeGain: cumulative,
			Capital:        capital,
			PortfolioPct:   100 * capital / startingCapital,
			ROIPct:         100 * cumulative / startingCapital,
			DailyGrowthPct: growth,
		}
		prevCapital = capital
	}

	return model.Series{
		StartingCapital: startingCapital,
		Rows:            rows,
	}, nil
}

// ValidateStartingCapital checks that the reference capital can be used as
// a denominator for every percentage in this package.
func ValidateStartingCapital(startingCapital float64) error {
	if math.IsNaN(startingCapital) || math.IsInf(startingCapital, 0) || startingCapital <= 0 {
		return fmt.Errorf("%w: starting capital must be positive, got %v",
			apperrors.ErrInvalidConfiguration, startingCapital)
	}
	return nil
}

// FilterByRange returns the rows whose date lies within [start, end],
// compared by calendar day. Order and starting capital are preserved.
// An empty result is not an error; callers treat it as "nothing to summarize".
func FilterByRange(series model.Series, start, end time.Time) model.Series {
	from, to := Day(start), Day(end)

	rows := make([]model.SeriesRow, 0, len(series.Rows))
	for _, row := range series.Rows {
		d := Day(row.Date)
		if d.Before(from) || d.After(to) {
			continue
		}
		rows = append(rows, row)
	}

	return model.Series{
		StartingCapital: series.StartingCapital,
		Rows:            rows,
	}
}

// Day truncates t to midnight UTC of its own calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
