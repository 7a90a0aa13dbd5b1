package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ndewijer/pnl-dashboard/internal/logger"
	"github.com/ndewijer/pnl-dashboard/internal/model"
	"github.com/ndewijer/pnl-dashboard/internal/testutil"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func setupMemo(t *testing.T) (*Memo, *testutil.MockLoader, *clock) {
	t.Helper()
	loader := testutil.NewMockLoader(testutil.Entries(t, "2024-01-01", 100.0, "2024-01-02", -50.0))
	clk := &clock{now: time.Date(2024, 1, 2, 10, 0, 5, 0, time.UTC)}
	memo := New(loader, time.Minute, logger.Nop()).WithClock(clk.Now)
	return memo, loader, clk
}

func TestMemo_Get(t *testing.T) {
	t.Run("reuses the table within a bucket", func(t *testing.T) {
		memo, loader, clk := setupMemo(t)

		first, err := memo.Get(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		clk.Advance(30 * time.Second)
		second, err := memo.Get(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if loader.Calls() != 1 {
			t.Errorf("expected 1 load, got %d", loader.Calls())
		}
		if first.LoadID != second.LoadID {
			t.Errorf("expected the same load, got %s and %s", first.LoadID, second.LoadID)
		}
	})

	t.Run("reloads in the next bucket", func(t *testing.T) {
		memo, loader, clk := setupMemo(t)

		first, _ := memo.Get(context.Background())
		clk.Advance(time.Minute)
		second, err := memo.Get(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if loader.Calls() != 2 {
			t.Errorf("expected 2 loads, got %d", loader.Calls())
		}
		if first.LoadID == second.LoadID {
			t.Error("expected a fresh load in the new bucket")
		}
	})

	t.Run("failed loads are not cached", func(t *testing.T) {
		memo, loader, _ := setupMemo(t)
		boom := errors.New("boom")
		loader.WithError(boom)

		if _, err := memo.Get(context.Background()); !errors.Is(err, boom) {
			t.Fatalf("expected boom, got %v", err)
		}

		loader.WithError(nil)
		if _, err := memo.Get(context.Background()); err != nil {
			t.Fatalf("unexpected error after recovery: %v", err)
		}
		if loader.Calls() != 2 {
			t.Errorf("expected the failure to be retried, got %d loads", loader.Calls())
		}
	})

	t.Run("concurrent misses share one load", func(t *testing.T) {
		memo, loader, _ := setupMemo(t)
		loader.Delay = 50 * time.Millisecond

		var wg sync.WaitGroup
		var failures atomic.Int32
		for range 10 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := memo.Get(context.Background()); err != nil {
					failures.Add(1)
				}
			}()
		}
		wg.Wait()

		if failures.Load() != 0 {
			t.Errorf("expected no failures, got %d", failures.Load())
		}
		if loader.Calls() != 1 {
			t.Errorf("expected 1 shared load, got %d", loader.Calls())
		}
	})

	t.Run("a cancelled caller does not poison the load", func(t *testing.T) {
		// WHY: the load runs detached so an abandoned request cannot fail other waiters.
		memo, loader, _ := setupMemo(t)
		loader.Delay = 20 * time.Millisecond

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if _, err := memo.Get(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !memo.Cached() {
			t.Error("expected the table to be cached")
		}
	})

	t.Run("the caller's deadline bounds the load", func(t *testing.T) {
		memo, loader, _ := setupMemo(t)
		loader.Delay = 5 * time.Second

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		start := time.Now()
		_, err := memo.Get(ctx)
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Fatalf("expected deadline exceeded, got %v", err)
		}
		if elapsed := time.Since(start); elapsed > time.Second {
			t.Errorf("expected Get to give up at the deadline, took %s", elapsed)
		}
		if memo.Cached() {
			t.Error("expected nothing cached after a timed-out load")
		}
	})
}

func TestMemo_Invalidate(t *testing.T) {
	memo, loader, _ := setupMemo(t)

	if _, err := memo.Get(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	loader.SetEntries([]model.Entry{{Date: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), Gain: 7}})

	memo.Invalidate()
	if memo.Cached() {
		t.Error("expected an empty cache after Invalidate")
	}

	table, err := memo.Get(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loader.Calls() != 2 {
		t.Errorf("expected a reload, got %d loads", loader.Calls())
	}
	if table.Len() != 1 || table.Entries[0].Gain != 7 {
		t.Errorf("expected the edited entries, got %+v", table.Entries)
	}
}

func TestMemo_Key(t *testing.T) {
	memo, _, clk := setupMemo(t)

	key := memo.Key()
	if key.Source != "mock" {
		t.Errorf("expected source mock, got %q", key.Source)
	}
	want := time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)
	if !key.Bucket.Equal(want) {
		t.Errorf("expected bucket %v, got %v", want, key.Bucket)
	}

	clk.Advance(54 * time.Second)
	if memo.Key() != key {
		t.Error("expected the same key within the bucket")
	}
	clk.Advance(time.Second)
	if memo.Key() == key {
		t.Error("expected a new key at the bucket boundary")
	}
}
