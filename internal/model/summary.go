package model

import "time"

// Summary aggregates a date-filtered series. All percentages are plain
// floats without rounding; formatting is left to the presentation layer.
type Summary struct {
	StartDate       time.Time // Date of the first row in range
	EndDate         time.Time // Date of the last row in range
	TradingDays     int       // Number of rows in range
	TotalGain       float64   // Sum of Gain over the range
	TotalDeposits   float64   // Sum of Deposit over the range, display only
	ROIOverRange    float64   // 100 * TotalGain / StartingCapital
	WinDays         int       // Rows with Gain > 0
	LossDays        int       // Rows with Gain < 0
	EvenDays        int       // Rows with Gain == 0
	WinRatePct      float64   // 100 * WinDays / TradingDays
	BestDayPct      Ratio     // Max defined DailyGrowthPct
	WorstDayPct     Ratio     // Min defined DailyGrowthPct
	AvgWinPct       float64   // Mean of positive DailyGrowthPct, 0 if none
	AvgLossPct      float64   // Mean of negative DailyGrowthPct, 0 if none
	AvgWinAmount    float64   // Mean of positive Gain, 0 if none
	AvgLossAmount   float64   // Mean of negative Gain, 0 if none
	RiskRewardRatio Ratio     // AvgWinAmount / |AvgLossAmount|, undefined without losing days
}

// Projection answers "what would an investment of Amount be worth today"
// using the cumulative ROI at the end of the full history.
type Projection struct {
	Amount       float64
	ROIPct       float64
	CurrentValue float64
	Profit       float64
	PortfolioPct float64
	AsOf         time.Time
}
