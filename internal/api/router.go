package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/ndewijer/pnl-dashboard/internal/api/handlers"
	custommiddleware "github.com/ndewijer/pnl-dashboard/internal/api/middleware"
	"github.com/ndewijer/pnl-dashboard/internal/config"
	"github.com/ndewijer/pnl-dashboard/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	systemService *service.SystemService,
	dashboardService *service.DashboardService,
	cfg *config.Config,
	log zerolog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger(log))
	r.Use(middleware.Recoverer)

	// CORS middleware
	r.Use(custommiddleware.NewCORS(cfg.CORS))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(systemService)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/dashboard", func(r chi.Router) {
			dashboardHandler := handlers.NewDashboardHandler(dashboardService, cfg.Dashboard.DefaultInvestment)
			r.Get("/series", dashboardHandler.Series)
			r.Get("/range", dashboardHandler.Range)
			r.Get("/summary", dashboardHandler.Summary)
			r.Get("/projection", dashboardHandler.Projection)
			r.Post("/refresh", dashboardHandler.Refresh)
		})
	})

	// Browser pages
	pageHandler := handlers.NewPageHandler(dashboardService, cfg.Dashboard, log)
	r.Get("/", pageHandler.Dashboard)
	r.Post("/refresh", pageHandler.Refresh)
	r.Route("/charts", func(r chi.Router) {
		r.Get("/portfolio", pageHandler.PortfolioChart)
		r.Get("/daily", pageHandler.DailyChart)
		r.Get("/outcome", pageHandler.OutcomeChart)
	})

	return r
}
