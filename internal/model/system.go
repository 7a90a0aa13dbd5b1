package model

// VersionInfo contains version information for the application and the
// data source it is configured against.
type VersionInfo struct {
	AppVersion string          `json:"app_version"`
	Source     string          `json:"source"`
	Features   map[string]bool `json:"features"`
}

// HealthStatus reports whether the configured data source can be loaded.
// Store is nil for sources without a database behind them.
type HealthStatus struct {
	Healthy bool
	Source  string
	Cached  bool
	Entries int
	Skipped int
	Store   *StoreStatus
	Err     error
}

// StoreStatus describes the journal database behind a source.
type StoreStatus struct {
	SchemaVersion int64
	Rows          int
}
