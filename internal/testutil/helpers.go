package testutil

import (
	"testing"

	"github.com/google/uuid"

	"github.com/ndewijer/pnl-dashboard/internal/logger"
	"github.com/ndewijer/pnl-dashboard/internal/service"
	"github.com/ndewijer/pnl-dashboard/internal/source"
)

// TestStartingCapital is the starting capital used by service helpers.
const TestStartingCapital = 1000.0

// NewTestDashboardService creates a DashboardService over loader with
// TestStartingCapital and a silent logger.
func NewTestDashboardService(t *testing.T, loader source.Loader) *service.DashboardService {
	t.Helper()

	return service.NewDashboardService(loader, TestStartingCapital, logger.Nop())
}

// NewTestSystemService creates a SystemService over loader.
func NewTestSystemService(t *testing.T, loader source.Loader) *service.SystemService {
	t.Helper()

	return service.NewSystemService(loader)
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}
