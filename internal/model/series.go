package model

import "time"

// SeriesRow holds one entry together with the metrics derived from the
// full, unfiltered history up to and including that entry.
type SeriesRow struct {
	Date           time.Time
	Gain           float64
	Deposit        float64
	Note           string
	CumulativeGain float64 // Running total of Gain
	Capital        float64 // StartingCapital + CumulativeGain
	PortfolioPct   float64 // 100 * Capital / StartingCapital
	ROIPct         float64 // 100 * CumulativeGain / StartingCapital
	DailyGrowthPct Ratio   // 100 * Gain / previous Capital, undefined when previous Capital is 0
}

// Series is the derived table produced by the metrics engine.
// Rows keep the order of the entries they were computed from.
type Series struct {
	StartingCapital float64
	Rows            []SeriesRow
}

// Len returns the number of rows.
func (s Series) Len() int {
	return len(s.Rows)
}

// Last returns the final row and false when the series is empty.
func (s Series) Last() (SeriesRow, bool) {
	if len(s.Rows) == 0 {
		return SeriesRow{}, false
	}
	return s.Rows[len(s.Rows)-1], true
}
