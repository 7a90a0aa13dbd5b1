package handlers

import (
	"net/http"
	"time"

	"github.com/ndewijer/pnl-dashboard/internal/api/request"
	"github.com/ndewijer/pnl-dashboard/internal/api/response"
	"github.com/ndewijer/pnl-dashboard/internal/model"
	"github.com/ndewijer/pnl-dashboard/internal/service"
)

const dateLayout = "2006-01-02"

// DashboardHandler serves the derived series, summaries and projections as JSON.
type DashboardHandler struct {
	dashboardService  *service.DashboardService
	defaultInvestment float64
}

// NewDashboardHandler creates a new DashboardHandler. defaultInvestment is
// used by Projection when the request carries no amount.
func NewDashboardHandler(dashboardService *service.DashboardService, defaultInvestment float64) *DashboardHandler {
	return &DashboardHandler{
		dashboardService:  dashboardService,
		defaultInvestment: defaultInvestment,
	}
}

// SeriesRowResponse is one derived row.
type SeriesRowResponse struct {
	Date           string      `json:"date"`
	Gain           float64     `json:"gain"`
	Deposit        float64     `json:"deposit"`
	Note           string      `json:"note,omitempty"`
	CumulativeGain float64     `json:"cumulativeGain"`
	Capital        float64     `json:"capital"`
	PortfolioPct   float64     `json:"portfolioPct"`
	ROIPct         float64     `json:"roiPct"`
	DailyGrowthPct model.Ratio `json:"dailyGrowthPct"`
}

// SeriesResponse is the derived table plus load metadata.
type SeriesResponse struct {
	LoadID          string              `json:"loadId"`
	Source          string              `json:"source"`
	LoadedAt        time.Time           `json:"loadedAt"`
	StartingCapital float64             `json:"startingCapital"`
	Rows            []SeriesRowResponse `json:"rows"`
	SkippedCount    int                 `json:"skippedCount"`
	Skipped         []model.SkippedRow  `json:"skipped,omitempty"`
}

// SummaryResponse is the aggregate over a date range.
type SummaryResponse struct {
	StartDate       string      `json:"startDate"`
	EndDate         string      `json:"endDate"`
	TradingDays     int         `json:"tradingDays"`
	TotalGain       float64     `json:"totalGain"`
	TotalDeposits   float64     `json:"totalDeposits"`
	ROIOverRange    float64     `json:"roiOverRange"`
	WinDays         int         `json:"winDays"`
	LossDays        int         `json:"lossDays"`
	EvenDays        int         `json:"evenDays"`
	WinRatePct      float64     `json:"winRatePct"`
	BestDayPct      model.Ratio `json:"bestDayPct"`
	WorstDayPct     model.Ratio `json:"worstDayPct"`
	AvgWinPct       float64     `json:"avgWinPct"`
	AvgLossPct      float64     `json:"avgLossPct"`
	AvgWinAmount    float64     `json:"avgWinAmount"`
	AvgLossAmount   float64     `json:"avgLossAmount"`
	RiskRewardRatio model.Ratio `json:"riskRewardRatio"`
}

// ProjectionResponse is the investor calculator result.
type ProjectionResponse struct {
	Amount       float64 `json:"amount"`
	ROIPct       float64 `json:"roiPct"`
	CurrentValue float64 `json:"currentValue"`
	Profit       float64 `json:"profit"`
	PortfolioPct float64 `json:"portfolioPct"`
	AsOf         string  `json:"asOf"`
}

// Series returns the full-history derived table.
//
// Endpoint: GET /api/dashboard/series
// Response: 200 OK with SeriesResponse
// Error: 404 when no valid entries exist, 502 when the source cannot be loaded
func (h *DashboardHandler) Series(w http.ResponseWriter, r *http.Request) {
	data, err := h.dashboardService.Series(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	response.RespondJSON(w, http.StatusOK, newSeriesResponse(data))
}

// Range returns the derived rows within [start_date, end_date]. Metrics are
// computed over the full history before filtering.
//
// Endpoint: GET /api/dashboard/range?start_date=YYYY-MM-DD&end_date=YYYY-MM-DD
// Response: 200 OK with SeriesResponse
// Error: 400 for bad dates, 404 when the range is empty
func (h *DashboardHandler) Range(w http.ResponseWriter, r *http.Request) {
	start, end, err := request.ParseDateRange(r.URL.Query().Get("start_date"), r.URL.Query().Get("end_date"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	data, err := h.dashboardService.Range(r.Context(), start, end)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	response.RespondJSON(w, http.StatusOK, newSeriesResponse(data))
}

// Summary aggregates the entries within [start_date, end_date]. Both bounds
// are optional and default to the first and last entry.
//
// Endpoint: GET /api/dashboard/summary?start_date=YYYY-MM-DD&end_date=YYYY-MM-DD
// Response: 200 OK with SummaryResponse
// Error: 400 for bad dates, 404 when the range is empty
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	start, end, err := request.ParseDateRange(r.URL.Query().Get("start_date"), r.URL.Query().Get("end_date"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	summary, err := h.dashboardService.Summary(r.Context(), start, end)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	response.RespondJSON(w, http.StatusOK, newSummaryResponse(summary))
}

// Projection applies the full-history ROI to an investment amount.
//
// Endpoint: GET /api/dashboard/projection?amount=50000000
// Response: 200 OK with ProjectionResponse
// Error: 400 for a negative or malformed amount
func (h *DashboardHandler) Projection(w http.ResponseWriter, r *http.Request) {
	amount, err := request.ParseAmount(r.URL.Query().Get("amount"), h.defaultInvestment)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	projection, err := h.dashboardService.Projection(r.Context(), amount)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	response.RespondJSON(w, http.StatusOK, ProjectionResponse{
		Amount:       projection.Amount,
		ROIPct:       projection.ROIPct,
		CurrentValue: projection.CurrentValue,
		Profit:       projection.Profit,
		PortfolioPct: projection.PortfolioPct,
		AsOf:         projection.AsOf.Format(dateLayout),
	})
}

// Refresh drops cached entries and reloads the source.
//
// Endpoint: POST /api/dashboard/refresh
// Response: 204 No Content
// Error: 502 when the reload fails
func (h *DashboardHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.dashboardService.Refresh(r.Context()); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func newSeriesResponse(data service.Dataset) SeriesResponse {
	rows := make([]SeriesRowResponse, len(data.Series.Rows))
	for i, row := range data.Series.Rows {
		rows[i] = SeriesRowResponse{
			Date:           row.Date.Format(dateLayout),
			Gain:           row.Gain,
			Deposit:        row.Deposit,
			Note:           row.Note,
			CumulativeGain: row.CumulativeGain,
			Capital:        row.Capital,
			PortfolioPct:   row.PortfolioPct,
			ROIPct:         row.ROIPct,
			DailyGrowthPct: row.DailyGrowthPct,
		}
	}
	return SeriesResponse{
		LoadID:          data.LoadID,
		Source:          data.Source,
		LoadedAt:        data.LoadedAt,
		StartingCapital: data.Series.StartingCapital,
		Rows:            rows,
		SkippedCount:    len(data.Skipped),
		Skipped:         data.Skipped,
	}
}

func newSummaryResponse(s model.Summary) SummaryResponse {
	return SummaryResponse{
		StartDate:       s.StartDate.Format(dateLayout),
		EndDate:         s.EndDate.Format(dateLayout),
		TradingDays:     s.TradingDays,
		TotalGain:       s.TotalGain,
		TotalDeposits:   s.TotalDeposits,
		ROIOverRange:    s.ROIOverRange,
		WinDays:         s.WinDays,
		LossDays:        s.LossDays,
		EvenDays:        s.EvenDays,
		WinRatePct:      s.WinRatePct,
		BestDayPct:      s.BestDayPct,
		WorstDayPct:     s.WorstDayPct,
		AvgWinPct:       s.AvgWinPct,
		AvgLossPct:      s.AvgLossPct,
		AvgWinAmount:    s.AvgWinAmount,
		AvgLossAmount:   s.AvgLossAmount,
		RiskRewardRatio: s.RiskRewardRatio,
	}
}
