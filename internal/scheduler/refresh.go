package scheduler

import (
	"context"
	"time"
)

// Refresher is the part of the dashboard service the refresh job drives.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// RefreshJob drops the cached table and loads a fresh one so that page
// views after a source edit do not wait for the fetch.
type RefreshJob struct {
	refresher Refresher
	timeout   time.Duration
}

// NewRefreshJob creates the job. timeout bounds a single refresh.
func NewRefreshJob(refresher Refresher, timeout time.Duration) *RefreshJob {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &RefreshJob{refresher: refresher, timeout: timeout}
}

// Name returns the job name
func (j *RefreshJob) Name() string {
	return "refresh_entries"
}

// Run executes the refresh
func (j *RefreshJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()
	return j.refresher.Refresh(ctx)
}
