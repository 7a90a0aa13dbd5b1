package render

import (
	"fmt"
	"strconv"

	"github.com/ndewijer/pnl-dashboard/internal/model"
)

// Tile is one metric tile: a label, a headline value and a secondary line.
type Tile struct {
	Label string
	Value string
	Delta string
	Tone  string // "gain", "loss" or "" for neutral
}

// SummaryTiles lays out the performance tiles for a summarized range.
func SummaryTiles(s model.Summary, currency string) []Tile {
	return []Tile{
		{
			Label: "ROI",
			Value: Percent(s.ROIOverRange),
			Delta: SignedMoney(s.TotalGain, currency),
			Tone:  tone(s.ROIOverRange),
		},
		{
			Label: "Win rate",
			Value: fmt.Sprintf("%.1f%%", s.WinRatePct),
			Delta: fmt.Sprintf("%d wins / %d losses", s.WinDays, s.LossDays),
		},
		{
			Label: "Trading days",
			Value: strconv.Itoa(s.TradingDays),
			Delta: fmt.Sprintf("Gain: %d | Loss: %d | Even: %d", s.WinDays, s.LossDays, s.EvenDays),
		},
	}
}

// DetailTiles lays out the per-day analysis tiles.
func DetailTiles(s model.Summary, currency string) []Tile {
	return []Tile{
		{Label: "Best day", Value: RatioPercent(s.BestDayPct), Tone: "gain"},
		{Label: "Worst day", Value: RatioPercent(s.WorstDayPct), Tone: "loss"},
		{Label: "Average win", Value: Percent(s.AvgWinPct), Delta: SignedMoney(s.AvgWinAmount, currency)},
		{Label: "Average loss", Value: Percent(s.AvgLossPct), Delta: SignedMoney(s.AvgLossAmount, currency)},
		{Label: "Risk : Reward", Value: RatioPlain(s.RiskRewardRatio)},
	}
}

// ProjectionTiles lays out the investor calculator result.
func ProjectionTiles(p model.Projection, currency string) []Tile {
	return []Tile{
		{
			Label: "Current value",
			Value: Money(p.CurrentValue, currency),
			Delta: SignedMoney(p.Profit, currency),
			Tone:  tone(p.Profit),
		},
		{
			Label: "Your ROI",
			Value: Percent(p.ROIPct),
			Delta: fmt.Sprintf("Portfolio: %.2f%%", p.PortfolioPct),
			Tone:  tone(p.ROIPct),
		},
	}
}

func tone(v float64) string {
	switch {
	case v > 0:
		return "gain"
	case v < 0:
		return "loss"
	default:
		return ""
	}
}
