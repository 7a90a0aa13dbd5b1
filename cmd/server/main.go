package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ndewijer/pnl-dashboard/internal/api"
	"github.com/ndewijer/pnl-dashboard/internal/cache"
	"github.com/ndewijer/pnl-dashboard/internal/config"
	"github.com/ndewijer/pnl-dashboard/internal/logger"
	"github.com/ndewijer/pnl-dashboard/internal/scheduler"
	"github.com/ndewijer/pnl-dashboard/internal/service"
	"github.com/ndewijer/pnl-dashboard/internal/source"
	"github.com/ndewijer/pnl-dashboard/internal/version"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logr := logger.New(logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})
	log.Logger = logr

	// Open data source
	loader, closeSource, err := source.New(cfg.Source, logr)
	if err != nil {
		logr.Fatal().Err(err).Msg("Failed to open data source")
	}
	defer func() {
		if err := closeSource(); err != nil {
			logr.Error().Err(err).Msg("Failed to close data source")
		}
	}()

	logr.Info().
		Str("version", version.Version).
		Str("source", loader.Identity()).
		Dur("cache_ttl", cfg.Cache.TTL).
		Msg("Data source configured")

	memo := cache.New(loader, cfg.Cache.TTL, logr)

	// Create services
	systemService := service.NewSystemService(memo)
	dashboardService := service.NewDashboardService(memo, cfg.Dashboard.StartingCapital, logr)

	// Background refresh keeps the cache warm after source edits
	sched := scheduler.New(logr)
	refreshJob := scheduler.NewRefreshJob(dashboardService, cfg.Source.HTTPTimeout)
	if cfg.Cache.RefreshSchedule != "" {
		if err := sched.AddJob(cfg.Cache.RefreshSchedule, refreshJob); err != nil {
			logr.Fatal().Err(err).Msg("Invalid refresh schedule")
		}
		sched.Start()
		defer sched.Stop()
	}
	logr.Info().Int("jobs", sched.Entries()).Msg("Scheduler configured")

	// Warm the cache so the first page view does not wait for the source
	if err := sched.RunNow(refreshJob); err != nil {
		logr.Warn().Err(err).Msg("Initial load failed, serving errors until the source recovers")
	}

	// Create router
	router := api.NewRouter(systemService, dashboardService, cfg, logr)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logr.Info().Str("addr", cfg.Server.Addr).Msg("Starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logr.Info().Msg("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logr.Error().Err(err).Msg("Server forced to shutdown")
		return
	}

	logr.Info().Msg("Server exited")
}
