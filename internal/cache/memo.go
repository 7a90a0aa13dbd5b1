// Package cache memoizes source loads for a short time window.
package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/ndewijer/pnl-dashboard/internal/model"
	"github.com/ndewijer/pnl-dashboard/internal/source"
)

// Key identifies one cached table: the source it came from and the time
// bucket (now truncated to the TTL) it was loaded in.
type Key struct {
	Source string
	Bucket time.Time
}

// defaultLoadTimeout bounds a shared load when the caller set no deadline.
const defaultLoadTimeout = 30 * time.Second

func (k Key) String() string {
	return fmt.Sprintf("%s@%d", k.Source, k.Bucket.Unix())
}

// Memo wraps a source.Loader and reuses its result until the current time
// bucket ends or Invalidate is called. Memo itself satisfies source.Loader.
//
// Concurrent misses for the same key share one load. Failed loads are
// never cached. Only the raw table is cached; derived metrics are always
// recomputed by the caller.
type Memo struct {
	loader source.Loader
	ttl    time.Duration
	now    func() time.Time
	log    zerolog.Logger

	group singleflight.Group

	mu         sync.Mutex
	entries    map[Key]*model.Table
	generation uint64
}

// New creates a Memo over loader with the given bucket width.
func New(loader source.Loader, ttl time.Duration, log zerolog.Logger) *Memo {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &Memo{
		loader:  loader,
		ttl:     ttl,
		now:     time.Now,
		log:     log.With().Str("component", "cache").Logger(),
		entries: make(map[Key]*model.Table),
	}
}

// WithClock replaces the time source, for tests.
func (m *Memo) WithClock(now func() time.Time) *Memo {
	m.now = now
	return m
}

// Identity returns the identity of the wrapped loader.
func (m *Memo) Identity() string {
	return m.loader.Identity()
}

// Unwrap returns the wrapped loader.
func (m *Memo) Unwrap() source.Loader {
	return m.loader
}

// Key returns the key the next Get will use.
func (m *Memo) Key() Key {
	return Key{
		Source: m.loader.Identity(),
		Bucket: m.now().Truncate(m.ttl),
	}
}

// Load is Get, so a Memo can stand in for its loader.
func (m *Memo) Load(ctx context.Context) (*model.Table, error) {
	return m.Get(ctx)
}

// Get returns the table for the current bucket, loading it on a miss.
//
// The shared load runs detached from ctx cancellation so one abandoned
// request cannot fail the other callers waiting on the same load. The
// caller's deadline still applies; without one the load gets
// defaultLoadTimeout.
func (m *Memo) Get(ctx context.Context) (*model.Table, error) {
	key := m.Key()

	m.mu.Lock()
	if table, ok := m.entries[key]; ok {
		m.mu.Unlock()
		return table, nil
	}
	gen := m.generation
	m.mu.Unlock()

	flight := fmt.Sprintf("%s#%d", key, gen)
	v, err, shared := m.group.Do(flight, func() (any, error) {
		loadCtx, cancel := detach(ctx)
		defer cancel()

		table, err := m.loader.Load(loadCtx)
		if err != nil {
			return nil, err
		}

		m.mu.Lock()
		defer m.mu.Unlock()
		// A refresh that happened during the load wins; keep the result out of the cache.
		if m.generation == gen {
			m.entries = map[Key]*model.Table{key: table}
		}
		return table, nil
	})
	if err != nil {
		m.log.Warn().Err(err).Str("key", key.String()).Msg("Load failed")
		return nil, err
	}

	m.log.Debug().Str("key", key.String()).Bool("shared", shared).Msg("Cache miss")
	return v.(*model.Table), nil
}

func detach(ctx context.Context) (context.Context, context.CancelFunc) {
	base := context.WithoutCancel(ctx)
	if deadline, ok := ctx.Deadline(); ok {
		return context.WithDeadline(base, deadline)
	}
	return context.WithTimeout(base, defaultLoadTimeout)
}

// Invalidate drops every cached table. The next Get reloads.
func (m *Memo) Invalidate() {
	m.mu.Lock()
	m.entries = make(map[Key]*model.Table)
	m.generation++
	m.mu.Unlock()

	m.log.Info().Msg("Cache invalidated")
}

// Cached reports whether the current bucket already holds a table.
func (m *Memo) Cached() bool {
	key := m.Key()
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.entries[key]
	return ok
}
