// Package render turns derived series and summaries into browser output:
// echarts charts, metric tiles and the dashboard page.
package render

import (
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/ndewijer/pnl-dashboard/internal/model"
)

const (
	colorGain    = "#28a745"
	colorLoss    = "#dc3545"
	colorEven    = "#ffc107"
	colorNeutral = "#6c757d"

	chartDateLayout = "02/01/2006"
)

// LineChart renders the full-history portfolio value curve as a percentage
// of starting capital, with a reference line at 100%. The curve is green
// when the last value is at or above 100% and red otherwise.
func LineChart(w io.Writer, series model.Series) error {
	return PortfolioChart(series).Render(w)
}

// BarChart renders the daily growth percentage of every row, colored by sign.
func BarChart(w io.Writer, series model.Series) error {
	return DailyGrowthChart(series).Render(w)
}

// PieChart renders the win/loss/even day distribution of a summary.
func PieChart(w io.Writer, summary model.Summary) error {
	return OutcomeChart(summary).Render(w)
}

// PortfolioChart builds the chart rendered by LineChart.
func PortfolioChart(series model.Series) *charts.Line {
	color := colorGain
	if last, ok := series.Last(); ok && last.PortfolioPct < 100 {
		color = colorLoss
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Portfolio",
			Width:     "100%",
			Height:    "480px",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Portfolio (%)", Scale: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Date"}),
	)

	data := make([]opts.LineData, len(series.Rows))
	for i, row := range series.Rows {
		data[i] = opts.LineData{Value: row.PortfolioPct}
	}

	line.SetXAxis(dateLabels(series)).
		AddSeries("Portfolio", data,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: color}),
			charts.WithLineStyleOpts(opts.LineStyle{Color: color, Width: 3}),
			charts.WithMarkLineNameYAxisItemOpts(opts.MarkLineNameYAxisItem{
				Name:  "100% (starting capital)",
				YAxis: 100,
			}),
		)
	return line
}

// DailyGrowthChart builds the chart rendered by BarChart. Undefined growth
// values are drawn as gaps.
func DailyGrowthChart(series model.Series) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Daily growth",
			Width:     "100%",
			Height:    "340px",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Growth (%)"}),
	)

	data := make([]opts.BarData, len(series.Rows))
	for i, row := range series.Rows {
		if !row.DailyGrowthPct.Defined() {
			data[i] = opts.BarData{Value: "-"}
			continue
		}
		pct := row.DailyGrowthPct.Float64()
		data[i] = opts.BarData{
			Value:     pct,
			ItemStyle: &opts.ItemStyle{Color: signColor(pct)},
		}
	}

	bar.SetXAxis(dateLabels(series)).AddSeries("Daily growth", data)
	return bar
}

// OutcomeChart builds the chart rendered by PieChart.
func OutcomeChart(summary model.Summary) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Outcomes",
			Width:     "100%",
			Height:    "340px",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "item"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)

	data := []opts.PieData{
		{Name: "Winning days", Value: summary.WinDays, ItemStyle: &opts.ItemStyle{Color: colorGain}},
		{Name: "Losing days", Value: summary.LossDays, ItemStyle: &opts.ItemStyle{Color: colorLoss}},
		{Name: "Even days", Value: summary.EvenDays, ItemStyle: &opts.ItemStyle{Color: colorEven}},
	}

	pie.AddSeries("Outcome", data,
		charts.WithPieChartOpts(opts.PieChart{Radius: []string{"40%", "72%"}}),
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Formatter: "{b}: {d}%"}),
	)
	return pie
}

func dateLabels(series model.Series) []string {
	labels := make([]string, len(series.Rows))
	for i, row := range series.Rows {
		labels[i] = row.Date.Format(chartDateLayout)
	}
	return labels
}

func signColor(v float64) string {
	switch {
	case v > 0:
		return colorGain
	case v < 0:
		return colorLoss
	default:
		return colorEven
	}
}
