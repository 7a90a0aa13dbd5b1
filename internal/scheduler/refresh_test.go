package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ndewijer/pnl-dashboard/internal/logger"
)

type fakeRefresher struct {
	calls    int
	err      error
	deadline bool
}

func (f *fakeRefresher) Refresh(ctx context.Context) error {
	f.calls++
	_, f.deadline = ctx.Deadline()
	return f.err
}

func TestRefreshJob_Run(t *testing.T) {
	t.Run("refreshes with a deadline", func(t *testing.T) {
		r := &fakeRefresher{}
		job := NewRefreshJob(r, time.Second)

		if err := job.Run(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if r.calls != 1 {
			t.Errorf("expected 1 refresh, got %d", r.calls)
		}
		if !r.deadline {
			t.Error("expected the refresh context to carry a deadline")
		}
	})

	t.Run("returns refresh errors", func(t *testing.T) {
		boom := errors.New("boom")
		job := NewRefreshJob(&fakeRefresher{err: boom}, 0)

		if err := job.Run(); !errors.Is(err, boom) {
			t.Errorf("expected boom, got %v", err)
		}
	})

	t.Run("has a stable name", func(t *testing.T) {
		if got := NewRefreshJob(&fakeRefresher{}, 0).Name(); got != "refresh_entries" {
			t.Errorf("unexpected name %q", got)
		}
	})
}

func TestScheduler(t *testing.T) {
	s := New(logger.Nop())

	t.Run("registers valid schedules", func(t *testing.T) {
		if err := s.AddJob("@every 1m", NewRefreshJob(&fakeRefresher{}, 0)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.Entries() != 1 {
			t.Errorf("expected 1 entry, got %d", s.Entries())
		}
	})

	t.Run("rejects invalid schedules", func(t *testing.T) {
		if err := s.AddJob("every minute please", NewRefreshJob(&fakeRefresher{}, 0)); err == nil {
			t.Error("expected an error for an invalid schedule")
		}
	})

	t.Run("runs a job immediately", func(t *testing.T) {
		r := &fakeRefresher{}
		if err := s.RunNow(NewRefreshJob(r, 0)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if r.calls != 1 {
			t.Errorf("expected 1 refresh, got %d", r.calls)
		}
	})

	t.Run("starts and stops", func(t *testing.T) {
		s.Start()
		s.Stop()
	})
}
