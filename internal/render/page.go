package render

import (
	"embed"
	"html/template"
	"io"
	"time"

	"github.com/ndewijer/pnl-dashboard/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(
	template.New("dashboard.html").
		Funcs(template.FuncMap{
			"money":       Money,
			"signedMoney": SignedMoney,
			"pct":         Percent,
			"ratioPct":    RatioPercent,
			"note":        Note,
			"date":        func(t time.Time) string { return t.Format("02/01/2006") },
			"toneOf":      tone,
		}).
		ParseFS(templateFS, "templates/dashboard.html"),
)

// PageData is everything the dashboard page template needs.
type PageData struct {
	Title    string
	Currency string

	// Date picker bounds and selection, formatted as YYYY-MM-DD.
	MinDate string
	MaxDate string
	Start   string
	End     string

	StartingCapital float64
	Amount          float64
	LastUpdated     time.Time
	Skipped         int

	// Message replaces the metric sections when there is nothing to show.
	Message string

	SummaryTiles    []Tile
	DetailTiles     []Tile
	ProjectionTiles []Tile

	// Recent holds the newest rows of the selected range, newest first.
	Recent []model.SeriesRow

	// ChartQuery is the encoded query string forwarded to range-aware charts.
	ChartQuery template.URL
}

// Page renders the dashboard page.
func Page(w io.Writer, data PageData) error {
	return pageTemplate.Execute(w, data)
}

// RecentRows returns up to n rows from the end of the series, newest first.
func RecentRows(series model.Series, n int) []model.SeriesRow {
	if n <= 0 || series.Len() == 0 {
		return nil
	}
	if n > series.Len() {
		n = series.Len()
	}
	out := make([]model.SeriesRow, 0, n)
	for i := series.Len() - 1; i >= series.Len()-n; i-- {
		out = append(out, series.Rows[i])
	}
	return out
}
