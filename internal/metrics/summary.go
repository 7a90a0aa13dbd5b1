package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/ndewijer/pnl-dashboard/internal/apperrors"
	"github.com/ndewijer/pnl-dashboard/internal/model"
)

// Summarize aggregates an already filtered series.
//
// Win, loss and even days partition the rows by the sign of Gain. Best,
// worst and average day percentages read DailyGrowthPct and skip rows where
// it is undefined. The risk:reward ratio is undefined when the range has no
// losing day, the same convention used for daily growth.
//
// Returns apperrors.ErrEmptyRange when the series has no rows.
func Summarize(filtered model.Series) (model.Summary, error) {
	if filtered.Len() == 0 {
		return model.Summary{}, apperrors.ErrEmptyRange
	}
	if err := ValidateStartingCapital(filtered.StartingCapital); err != nil {
		return model.Summary{}, err
	}

	var summary model.Summary
	var growth, winPct, lossPct, winAmount, lossAmount []float64

	for _, row := range filtered.Rows {
		summary.TotalGain += row.Gain
		summary.TotalDeposits += row.Deposit

		switch {
		case row.Gain > 0:
			summary.WinDays++
			winAmount = append(winAmount, row.Gain)
		case row.Gain < 0:
			summary.LossDays++
			lossAmount = append(lossAmount, row.Gain)
		default:
			summary.EvenDays++
		}

		if !row.DailyGrowthPct.Defined() {
			continue
		}
		pct := row.DailyGrowthPct.Float64()
		growth = append(growth, pct)
		if pct > 0 {
			winPct = append(winPct, pct)
		} else if pct < 0 {
			lossPct = append(lossPct, pct)
		}
	}

	first, last := filtered.Rows[0], filtered.Rows[len(filtered.Rows)-1]
	summary.StartDate = first.Date
	summary.EndDate = last.Date
	summary.TradingDays = len(filtered.Rows)
	summary.ROIOverRange = 100 * summary.TotalGain / filtered.StartingCapital
	summary.WinRatePct = 100 * float64(summary.WinDays) / float64(summary.TradingDays)

	summary.BestDayPct = model.Undefined()
	summary.WorstDayPct = model.Undefined()
	if len(growth) > 0 {
		summary.BestDayPct = model.Ratio(floats.Max(growth))
		summary.WorstDayPct = model.Ratio(floats.Min(growth))
	}

	summary.AvgWinPct = mean(winPct)
	summary.AvgLossPct = mean(lossPct)
	summary.AvgWinAmount = mean(winAmount)
	summary.AvgLossAmount = mean(lossAmount)

	summary.RiskRewardRatio = model.Undefined()
	if len(lossAmount) > 0 && summary.AvgLossAmount != 0 {
		summary.RiskRewardRatio = model.Ratio(summary.AvgWinAmount / math.Abs(summary.AvgLossAmount))
	}

	return summary, nil
}

// mean returns the arithmetic mean, 0 for an empty slice.
func mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.Mean(data, nil)
}
