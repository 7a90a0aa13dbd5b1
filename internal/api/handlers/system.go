package handlers

import (
	"net/http"

	"github.com/ndewijer/pnl-dashboard/internal/api/response"
	"github.com/ndewijer/pnl-dashboard/internal/service"
)

// SystemHandler handles system-related HTTP requests
type SystemHandler struct {
	systemService *service.SystemService
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(systemService *service.SystemService) *SystemHandler {
	return &SystemHandler{
		systemService: systemService,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status  string         `json:"status"`
	Source  string         `json:"source"`
	Cached  bool           `json:"cached"`
	Entries int            `json:"entries"`
	Skipped int            `json:"skipped"`
	Store   *StoreResponse `json:"store,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// StoreResponse describes the journal database, when the source has one.
type StoreResponse struct {
	SchemaVersion int64 `json:"schema_version"`
	Rows          int   `json:"rows"`
}

// Health reports whether the configured data source can be loaded.
//
// Endpoint: GET /api/system/health
// Response: 200 OK with HealthResponse
// Error: 503 Service Unavailable when the source cannot be loaded
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := h.systemService.CheckHealth(r.Context())
	if !status.Healthy {
		response.RespondJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status: "unhealthy",
			Source: status.Source,
			Cached: status.Cached,
			Error:  status.Err.Error(),
		})
		return
	}

	resp := HealthResponse{
		Status:  "healthy",
		Source:  status.Source,
		Cached:  status.Cached,
		Entries: status.Entries,
		Skipped: status.Skipped,
	}
	if status.Store != nil {
		resp.Store = &StoreResponse{
			SchemaVersion: status.Store.SchemaVersion,
			Rows:          status.Store.Rows,
		}
	}
	response.RespondJSON(w, http.StatusOK, resp)
}

// VersionInfoResponse represents the version check response.
type VersionInfoResponse struct {
	AppVersion string          `json:"app_version"`
	Source     string          `json:"source"`
	Features   map[string]bool `json:"features"`
}

// Version handles GET requests to retrieve version information and feature availability.
//
// Endpoint: GET /api/system/version
// Response: 200 OK with VersionInfoResponse
func (h *SystemHandler) Version(w http.ResponseWriter, _ *http.Request) {
	version := h.systemService.CheckVersion()
	response.RespondJSON(w, http.StatusOK, VersionInfoResponse{
		AppVersion: version.AppVersion,
		Source:     version.Source,
		Features:   version.Features,
	})
}
