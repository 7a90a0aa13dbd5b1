package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ndewijer/pnl-dashboard/internal/apperrors"
	"github.com/ndewijer/pnl-dashboard/internal/metrics"
	"github.com/ndewijer/pnl-dashboard/internal/model"
	"github.com/ndewijer/pnl-dashboard/internal/source"
)

// Invalidator is implemented by loaders that cache, such as cache.Memo.
type Invalidator interface {
	Invalidate()
}

// DashboardService runs the load → compute → filter → summarize pipeline
// behind every dashboard view.
//
// Nothing derived is kept between calls: each call loads the table (the
// loader may serve it from cache) and recomputes the series over the full
// history before any range is applied.
type DashboardService struct {
	loader          source.Loader
	startingCapital float64
	log             zerolog.Logger
}

// NewDashboardService creates a new DashboardService.
// startingCapital must already have been validated by config.Validate.
func NewDashboardService(loader source.Loader, startingCapital float64, log zerolog.Logger) *DashboardService {
	return &DashboardService{
		loader:          loader,
		startingCapital: startingCapital,
		log:             log.With().Str("component", "dashboard_service").Logger(),
	}
}

// Dataset is a derived series together with the metadata of the load it
// was computed from.
type Dataset struct {
	Series   model.Series
	LoadID   string
	Source   string
	LoadedAt time.Time
	Skipped  []model.SkippedRow
}

// StartingCapital returns the reference capital all percentages use.
func (s *DashboardService) StartingCapital() float64 {
	return s.startingCapital
}

// Series loads the table and derives the full-history series.
//
// Returns apperrors.ErrFailedToLoad (wrapping the cause) when the source
// cannot be read and apperrors.ErrEmptyInput when no valid rows remain.
func (s *DashboardService) Series(ctx context.Context) (Dataset, error) {
	table, err := s.loader.Load(ctx)
	if err != nil {
		return Dataset{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToLoad, err)
	}
	if table.Len() == 0 {
		return Dataset{}, apperrors.ErrEmptyInput
	}

	series, err := metrics.ComputeSeries(table.Entries, s.startingCapital)
	if err != nil {
		return Dataset{}, err
	}

	return Dataset{
		Series:   series,
		LoadID:   table.LoadID,
		Source:   table.Source,
		LoadedAt: table.LoadedAt,
		Skipped:  table.Skipped,
	}, nil
}

// Range returns the dataset restricted to [start, end]. A zero start or end
// defaults to the first or last entry.
//
// Returns apperrors.ErrInvalidDateRange when start is after end and
// apperrors.ErrEmptyRange when no entry falls inside the range.
func (s *DashboardService) Range(ctx context.Context, start, end time.Time) (Dataset, error) {
	data, err := s.Series(ctx)
	if err != nil {
		return Dataset{}, err
	}

	start, end, err = resolveRange(data.Series, start, end)
	if err != nil {
		return Dataset{}, err
	}

	data.Series = metrics.FilterByRange(data.Series, start, end)
	if data.Series.Len() == 0 {
		return Dataset{}, apperrors.ErrEmptyRange
	}
	return data, nil
}

// Summary aggregates the entries within [start, end]; see Range for defaults.
func (s *DashboardService) Summary(ctx context.Context, start, end time.Time) (model.Summary, error) {
	data, err := s.Range(ctx, start, end)
	if err != nil {
		return model.Summary{}, err
	}
	return metrics.Summarize(data.Series)
}

// Projection applies the full-history ROI to a hypothetical investment.
func (s *DashboardService) Projection(ctx context.Context, amount float64) (model.Projection, error) {
	data, err := s.Series(ctx)
	if err != nil {
		return model.Projection{}, err
	}
	return metrics.Project(data.Series, amount)
}

// Refresh invalidates a caching loader and loads again, so the next view
// sees the current source. Non-caching loaders are simply reloaded.
func (s *DashboardService) Refresh(ctx context.Context) error {
	if inv, ok := s.loader.(Invalidator); ok {
		inv.Invalidate()
	}
	if _, err := s.loader.Load(ctx); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrFailedToLoad, err)
	}
	s.log.Info().Str("source", s.loader.Identity()).Msg("Entries refreshed")
	return nil
}

// resolveRange fills zero bounds from the series and validates the order.
func resolveRange(series model.Series, start, end time.Time) (time.Time, time.Time, error) {
	if start.IsZero() {
		start = series.Rows[0].Date
	}
	if end.IsZero() {
		end = series.Rows[len(series.Rows)-1].Date
	}
	if metrics.Day(start).After(metrics.Day(end)) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: start %s is after end %s",
			apperrors.ErrInvalidDateRange, start.Format("2006-01-02"), end.Format("2006-01-02"))
	}
	return start, end, nil
}
