package service

import (
	"context"

	"github.com/ndewijer/pnl-dashboard/internal/model"
	"github.com/ndewijer/pnl-dashboard/internal/source"
	"github.com/ndewijer/pnl-dashboard/internal/version"
)

// SystemService handles system-related operations
type SystemService struct {
	loader source.Loader
}

// NewSystemService creates a new SystemService
func NewSystemService(loader source.Loader) *SystemService {
	return &SystemService{
		loader: loader,
	}
}

// CheckHealth loads the source (through the cache when one is configured)
// and reports whether it is readable. Cached reflects the cache state
// before the load. A journal source is also pinged and counted.
func (s *SystemService) CheckHealth(ctx context.Context) model.HealthStatus {
	status := model.HealthStatus{Source: s.loader.Identity()}
	if c, ok := s.loader.(interface{ Cached() bool }); ok {
		status.Cached = c.Cached()
	}

	store, ok, err := source.CheckStore(ctx, s.loader)
	if err != nil {
		status.Err = err
		return status
	}
	if ok {
		status.Store = &store
	}

	table, err := s.loader.Load(ctx)
	if err != nil {
		status.Err = err
		return status
	}

	status.Healthy = true
	status.Entries = table.Len()
	status.Skipped = len(table.Skipped)
	return status
}

// CheckVersion returns version and feature information.
func (s *SystemService) CheckVersion() model.VersionInfo {
	return model.VersionInfo{
		AppVersion: version.Version,
		Source:     s.loader.Identity(),
		Features: map[string]bool{
			"summary":    true,
			"projection": true,
			"charts":     true,
			"refresh":    true,
		},
	}
}
