package service_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/ndewijer/pnl-dashboard/internal/apperrors"
	"github.com/ndewijer/pnl-dashboard/internal/cache"
	"github.com/ndewijer/pnl-dashboard/internal/logger"
	"github.com/ndewijer/pnl-dashboard/internal/model"
	"github.com/ndewijer/pnl-dashboard/internal/testutil"
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// TestDashboardService_Series tests the Series method.
//
// WHY: every view starts from the full-history series, so load failures and
// empty sources must surface as the sentinels the handlers map to statuses.
func TestDashboardService_Series(t *testing.T) {
	t.Run("derives the full history", func(t *testing.T) {
		loader := testutil.NewMockLoader(testutil.Entries(t,
			"2024-01-01", 100.0,
			"2024-01-02", -50.0,
		)).WithSkipped(model.SkippedRow{Line: 4, Reason: "unparseable gain"})
		svc := testutil.NewTestDashboardService(t, loader)

		data, err := svc.Series(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if data.Series.Len() != 2 {
			t.Fatalf("expected 2 rows, got %d", data.Series.Len())
		}
		last, _ := data.Series.Last()
		if !near(last.Capital, 1050) {
			t.Errorf("expected capital 1050, got %v", last.Capital)
		}
		if len(data.Skipped) != 1 {
			t.Errorf("expected 1 skipped row, got %d", len(data.Skipped))
		}
		if data.LoadID == "" {
			t.Error("expected a load id")
		}
	})

	t.Run("empty source", func(t *testing.T) {
		svc := testutil.NewTestDashboardService(t, testutil.NewMockLoader(nil))

		_, err := svc.Series(context.Background())
		if !errors.Is(err, apperrors.ErrEmptyInput) {
			t.Errorf("expected ErrEmptyInput, got %v", err)
		}
	})

	t.Run("load failure keeps the cause", func(t *testing.T) {
		loader := testutil.NewMockLoader(nil).WithError(apperrors.ErrSourceUnavailable)
		svc := testutil.NewTestDashboardService(t, loader)

		_, err := svc.Series(context.Background())
		if !errors.Is(err, apperrors.ErrFailedToLoad) {
			t.Errorf("expected ErrFailedToLoad, got %v", err)
		}
		if !errors.Is(err, apperrors.ErrSourceUnavailable) {
			t.Errorf("expected the cause to be wrapped, got %v", err)
		}
	})
}

func TestDashboardService_Summary(t *testing.T) {
	entries := testutil.Entries(t,
		"2024-01-01", 100.0,
		"2024-01-02", -50.0,
		"2024-01-03", 0.0,
		"2024-01-04", 200.0,
	)

	t.Run("zero bounds cover the full history", func(t *testing.T) {
		svc := testutil.NewTestDashboardService(t, testutil.NewMockLoader(entries))

		summary, err := svc.Summary(context.Background(), time.Time{}, time.Time{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if summary.TradingDays != 4 {
			t.Errorf("expected 4 trading days, got %d", summary.TradingDays)
		}
		if !near(summary.ROIOverRange, 25) {
			t.Errorf("expected 25%% ROI, got %v", summary.ROIOverRange)
		}
	})

	t.Run("range metrics use full-history capital", func(t *testing.T) {
		// WHY: filtering must not reset the compounding base of daily growth.
		svc := testutil.NewTestDashboardService(t, testutil.NewMockLoader(entries))

		summary, err := svc.Summary(context.Background(), testutil.Day(t, "2024-01-04"), time.Time{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if summary.TradingDays != 1 {
			t.Fatalf("expected 1 trading day, got %d", summary.TradingDays)
		}
		// 200 / 1050 * 100
		if !near(summary.BestDayPct.Float64(), 200.0/1050*100) {
			t.Errorf("unexpected best day %v", summary.BestDayPct)
		}
	})

	t.Run("empty range", func(t *testing.T) {
		svc := testutil.NewTestDashboardService(t, testutil.NewMockLoader(entries))

		_, err := svc.Summary(context.Background(), testutil.Day(t, "2025-01-01"), testutil.Day(t, "2025-02-01"))
		if !errors.Is(err, apperrors.ErrEmptyRange) {
			t.Errorf("expected ErrEmptyRange, got %v", err)
		}
	})

	t.Run("inverted range", func(t *testing.T) {
		svc := testutil.NewTestDashboardService(t, testutil.NewMockLoader(entries))

		_, err := svc.Summary(context.Background(), testutil.Day(t, "2024-01-03"), testutil.Day(t, "2024-01-01"))
		if !errors.Is(err, apperrors.ErrInvalidDateRange) {
			t.Errorf("expected ErrInvalidDateRange, got %v", err)
		}
	})
}

func TestDashboardService_Projection(t *testing.T) {
	svc := testutil.NewTestDashboardService(t, testutil.NewMockLoader(testutil.Entries(t,
		"2024-01-01", 100.0,
		"2024-01-02", 100.0,
	)))

	t.Run("applies full-history ROI", func(t *testing.T) {
		p, err := svc.Projection(context.Background(), 5000)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !near(p.ROIPct, 20) || !near(p.CurrentValue, 6000) || !near(p.Profit, 1000) {
			t.Errorf("unexpected projection %+v", p)
		}
	})

	t.Run("negative amount", func(t *testing.T) {
		_, err := svc.Projection(context.Background(), -1)
		if !errors.Is(err, apperrors.ErrNegativeAmount) {
			t.Errorf("expected ErrNegativeAmount, got %v", err)
		}
	})
}

func TestDashboardService_Refresh(t *testing.T) {
	t.Run("invalidates a caching loader", func(t *testing.T) {
		loader := testutil.NewMockLoader(testutil.Entries(t, "2024-01-01", 100.0))
		fixed := time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC)
		memo := cache.New(loader, time.Hour, logger.Nop()).WithClock(func() time.Time { return fixed })
		svc := testutil.NewTestDashboardService(t, memo)

		if _, err := svc.Series(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		loader.SetEntries(testutil.Entries(t, "2024-01-01", 100.0, "2024-01-02", 300.0))

		// Still cached.
		data, _ := svc.Series(context.Background())
		if data.Series.Len() != 1 {
			t.Fatalf("expected cached series, got %d rows", data.Series.Len())
		}

		if err := svc.Refresh(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		data, _ = svc.Series(context.Background())
		if data.Series.Len() != 2 {
			t.Errorf("expected refreshed series, got %d rows", data.Series.Len())
		}
		if loader.Calls() != 2 {
			t.Errorf("expected 2 loads, got %d", loader.Calls())
		}
	})

	t.Run("reports reload failures", func(t *testing.T) {
		loader := testutil.NewMockLoader(nil).WithError(errors.New("offline"))
		svc := testutil.NewTestDashboardService(t, loader)

		if err := svc.Refresh(context.Background()); !errors.Is(err, apperrors.ErrFailedToLoad) {
			t.Errorf("expected ErrFailedToLoad, got %v", err)
		}
	})
}

func TestSystemService(t *testing.T) {
	t.Run("healthy source", func(t *testing.T) {
		loader := testutil.NewMockLoader(testutil.Entries(t, "2024-01-01", 1.0))
		status := testutil.NewTestSystemService(t, loader).CheckHealth(context.Background())

		if !status.Healthy || status.Entries != 1 || status.Source != "mock" {
			t.Errorf("unexpected status %+v", status)
		}
	})

	t.Run("unreadable source", func(t *testing.T) {
		loader := testutil.NewMockLoader(nil).WithError(apperrors.ErrSourceUnavailable)
		status := testutil.NewTestSystemService(t, loader).CheckHealth(context.Background())

		if status.Healthy || !errors.Is(status.Err, apperrors.ErrSourceUnavailable) {
			t.Errorf("unexpected status %+v", status)
		}
	})

	t.Run("version", func(t *testing.T) {
		info := testutil.NewTestSystemService(t, testutil.NewMockLoader(nil)).CheckVersion()
		if info.AppVersion == "" || !info.Features["summary"] {
			t.Errorf("unexpected version info %+v", info)
		}
	})
}
