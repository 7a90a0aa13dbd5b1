package render

import (
	"fmt"
	"strings"

	"github.com/ndewijer/pnl-dashboard/internal/model"
)

const markdownDateLayout = "2006-01-02"

// SummaryMarkdown renders a summary as a markdown report for terminals.
func SummaryMarkdown(s model.Summary, currency string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Performance %s to %s\n\n",
		s.StartDate.Format(markdownDateLayout), s.EndDate.Format(markdownDateLayout))

	b.WriteString("| Metric | Value |\n")
	b.WriteString("|:---|---:|\n")
	row := func(label, value string) {
		fmt.Fprintf(&b, "| %s | %s |\n", label, value)
	}
	row("ROI", Percent(s.ROIOverRange))
	row("Total gain", SignedMoney(s.TotalGain, currency))
	if s.TotalDeposits != 0 {
		row("Deposits", Money(s.TotalDeposits, currency))
	}
	row("Trading days", fmt.Sprintf("%d", s.TradingDays))
	row("Win / loss / even", fmt.Sprintf("%d / %d / %d", s.WinDays, s.LossDays, s.EvenDays))
	row("Win rate", fmt.Sprintf("%.1f%%", s.WinRatePct))
	row("Best day", RatioPercent(s.BestDayPct))
	row("Worst day", RatioPercent(s.WorstDayPct))
	row("Average win", fmt.Sprintf("%s (%s)", Percent(s.AvgWinPct), SignedMoney(s.AvgWinAmount, currency)))
	row("Average loss", fmt.Sprintf("%s (%s)", Percent(s.AvgLossPct), SignedMoney(s.AvgLossAmount, currency)))
	row("Risk : Reward", RatioPlain(s.RiskRewardRatio))

	return b.String()
}

// ProjectionMarkdown renders the investor calculator result.
func ProjectionMarkdown(p model.Projection, currency string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Investing %s\n\n", Money(p.Amount, currency))
	fmt.Fprintf(&b, "Following the account since its first entry, as of %s:\n\n", p.AsOf.Format(markdownDateLayout))
	fmt.Fprintf(&b, "- **Current value:** %s\n", Money(p.CurrentValue, currency))
	fmt.Fprintf(&b, "- **Profit:** %s\n", SignedMoney(p.Profit, currency))
	fmt.Fprintf(&b, "- **ROI:** %s\n", Percent(p.ROIPct))

	return b.String()
}

// SkippedMarkdown lists source rows dropped during cleaning.
func SkippedMarkdown(skipped []model.SkippedRow) string {
	if len(skipped) == 0 {
		return "No rows were skipped.\n"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %d skipped rows\n\n", len(skipped))
	b.WriteString("| Line | Date | Gain | Reason |\n")
	b.WriteString("|---:|:---|:---|:---|\n")
	for _, s := range skipped {
		fmt.Fprintf(&b, "| %d | `%s` | `%s` | %s |\n", s.Line, s.Date, s.Gain, s.Reason)
	}
	return b.String()
}
