package handlers

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/ndewijer/pnl-dashboard/internal/api/request"
	"github.com/ndewijer/pnl-dashboard/internal/apperrors"
	"github.com/ndewijer/pnl-dashboard/internal/config"
	"github.com/ndewijer/pnl-dashboard/internal/metrics"
	"github.com/ndewijer/pnl-dashboard/internal/render"
	"github.com/ndewijer/pnl-dashboard/internal/service"
)

const recentRows = 10

// PageHandler serves the HTML dashboard and its chart fragments.
type PageHandler struct {
	dashboardService *service.DashboardService
	cfg              config.DashboardConfig
	log              zerolog.Logger
}

// NewPageHandler creates a new PageHandler.
func NewPageHandler(dashboardService *service.DashboardService, cfg config.DashboardConfig, log zerolog.Logger) *PageHandler {
	return &PageHandler{
		dashboardService: dashboardService,
		cfg:              cfg,
		log:              log.With().Str("component", "pages").Logger(),
	}
}

// Dashboard renders the dashboard page for the selected range and
// investment amount. Missing or empty data renders the page with a message
// instead of the metric sections.
//
// Endpoint: GET /?start_date=YYYY-MM-DD&end_date=YYYY-MM-DD&amount=50000000
func (h *PageHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := render.PageData{
		Title:           h.cfg.Title,
		Currency:        h.cfg.Currency,
		StartingCapital: h.dashboardService.StartingCapital(),
		Amount:          h.cfg.DefaultInvestment,
	}

	data, err := h.dashboardService.Series(r.Context())
	switch {
	case errors.Is(err, apperrors.ErrEmptyInput):
		page.Message = "No entries yet. Add trading days to the source and refresh."
		h.writePage(w, http.StatusOK, page)
		return
	case err != nil:
		h.log.Error().Err(err).Msg("Failed to load entries for dashboard")
		page.Message = "Could not load entries: " + err.Error()
		h.writePage(w, http.StatusBadGateway, page)
		return
	}

	first, last := data.Series.Rows[0].Date, data.Series.Rows[data.Series.Len()-1].Date
	page.MinDate = first.Format(dateLayout)
	page.MaxDate = last.Format(dateLayout)
	page.LastUpdated = data.LoadedAt
	page.Skipped = len(data.Skipped)

	start, end, err := request.ParseDateRange(q.Get("start_date"), q.Get("end_date"))
	if err != nil {
		page.Message = err.Error()
		h.writePage(w, http.StatusBadRequest, page)
		return
	}
	if start.IsZero() {
		start = first
	}
	if end.IsZero() {
		end = last
	}
	page.Start = start.Format(dateLayout)
	page.End = end.Format(dateLayout)
	page.ChartQuery = template.URL(url.Values{ //nolint:gosec // G203: values are url-encoded.
		"start_date": {page.Start},
		"end_date":   {page.End},
	}.Encode())

	amount, err := request.ParseAmount(q.Get("amount"), h.cfg.DefaultInvestment)
	if err != nil {
		page.Message = err.Error()
		h.writePage(w, http.StatusBadRequest, page)
		return
	}
	page.Amount = amount

	ranged, err := h.dashboardService.Range(r.Context(), start, end)
	switch {
	case errors.Is(err, apperrors.ErrInvalidDateRange):
		page.Message = err.Error()
		h.writePage(w, http.StatusBadRequest, page)
		return
	case errors.Is(err, apperrors.ErrEmptyRange):
		page.Message = "No entries between " + page.Start + " and " + page.End + "."
		h.writePage(w, http.StatusOK, page)
		return
	case err != nil:
		h.log.Error().Err(err).Msg("Failed to filter entries for dashboard")
		page.Message = "Could not load entries: " + err.Error()
		h.writePage(w, http.StatusBadGateway, page)
		return
	}
	filtered := ranged.Series

	summary, err := metrics.Summarize(filtered)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to summarize range")
		page.Message = err.Error()
		h.writePage(w, http.StatusInternalServerError, page)
		return
	}
	projection, err := metrics.Project(data.Series, amount)
	if err != nil {
		page.Message = err.Error()
		h.writePage(w, http.StatusBadRequest, page)
		return
	}

	page.SummaryTiles = render.SummaryTiles(summary, h.cfg.Currency)
	page.DetailTiles = render.DetailTiles(summary, h.cfg.Currency)
	page.ProjectionTiles = render.ProjectionTiles(projection, h.cfg.Currency)
	page.Recent = render.RecentRows(filtered, recentRows)

	h.writePage(w, http.StatusOK, page)
}

// Refresh drops cached entries and sends the browser back to the page.
//
// Endpoint: POST /refresh
func (h *PageHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.dashboardService.Refresh(r.Context()); err != nil {
		h.log.Warn().Err(err).Msg("Refresh from page failed")
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// PortfolioChart renders the full-history portfolio curve.
//
// Endpoint: GET /charts/portfolio
func (h *PageHandler) PortfolioChart(w http.ResponseWriter, r *http.Request) {
	data, err := h.dashboardService.Series(r.Context())
	if err != nil {
		h.chartError(w, err)
		return
	}
	h.writeChart(w, func(buf *bytes.Buffer) error { return render.LineChart(buf, data.Series) })
}

// DailyChart renders daily growth bars for the selected range.
//
// Endpoint: GET /charts/daily?start_date&end_date
func (h *PageHandler) DailyChart(w http.ResponseWriter, r *http.Request) {
	start, end, err := request.ParseDateRange(r.URL.Query().Get("start_date"), r.URL.Query().Get("end_date"))
	if err != nil {
		h.chartError(w, err)
		return
	}
	data, err := h.dashboardService.Range(r.Context(), start, end)
	if err != nil {
		h.chartError(w, err)
		return
	}
	h.writeChart(w, func(buf *bytes.Buffer) error { return render.BarChart(buf, data.Series) })
}

// OutcomeChart renders the win/loss/even distribution for the selected range.
//
// Endpoint: GET /charts/outcome?start_date&end_date
func (h *PageHandler) OutcomeChart(w http.ResponseWriter, r *http.Request) {
	start, end, err := request.ParseDateRange(r.URL.Query().Get("start_date"), r.URL.Query().Get("end_date"))
	if err != nil {
		h.chartError(w, err)
		return
	}
	summary, err := h.dashboardService.Summary(r.Context(), start, end)
	if err != nil {
		h.chartError(w, err)
		return
	}
	h.writeChart(w, func(buf *bytes.Buffer) error { return render.PieChart(buf, summary) })
}

func (h *PageHandler) writePage(w http.ResponseWriter, status int, page render.PageData) {
	var buf bytes.Buffer
	if err := render.Page(&buf, page); err != nil {
		h.log.Error().Err(err).Msg("Failed to render dashboard page")
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (h *PageHandler) writeChart(w http.ResponseWriter, draw func(*bytes.Buffer) error) {
	var buf bytes.Buffer
	if err := draw(&buf); err != nil {
		h.log.Error().Err(err).Msg("Failed to render chart")
		http.Error(w, "failed to render chart", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (h *PageHandler) chartError(w http.ResponseWriter, err error) {
	status, message := statusFor(err)
	http.Error(w, message, status)
}
