package testutil

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ndewijer/pnl-dashboard/internal/model"
)

// MockLoader is a source.Loader returning a fixed table or error.
// It counts loads so cache and refresh behavior can be asserted.
type MockLoader struct {
	// Name is returned by Identity
	Name string

	mu    sync.Mutex
	table *model.Table
	err   error

	// Delay is slept before each load returns, to widen race windows
	Delay time.Duration

	calls atomic.Int64
}

// NewMockLoader creates a mock loader serving entries.
func NewMockLoader(entries []model.Entry) *MockLoader {
	return &MockLoader{
		Name: "mock",
		table: &model.Table{
			Source:  "mock",
			Entries: entries,
		},
	}
}

// WithError configures the mock to return the specified error.
func (m *MockLoader) WithError(err error) *MockLoader {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
	return m
}

// WithSkipped attaches skipped-row diagnostics to the served table.
func (m *MockLoader) WithSkipped(skipped ...model.SkippedRow) *MockLoader {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.table.Skipped = skipped
	return m
}

// SetEntries replaces the served entries, simulating an edited source.
func (m *MockLoader) SetEntries(entries []model.Entry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.table = &model.Table{Source: m.Name, Entries: entries, Skipped: m.table.Skipped}
}

// Calls returns how many times Load was called.
func (m *MockLoader) Calls() int {
	return int(m.calls.Load())
}

// Identity implements source.Loader.
func (m *MockLoader) Identity() string {
	return m.Name
}

// Load implements source.Loader. Each call returns a fresh copy of the table
// with a new LoadID.
func (m *MockLoader) Load(ctx context.Context) (*model.Table, error) {
	n := m.calls.Add(1)
	if m.Delay > 0 {
		select {
		case <-time.After(m.Delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}

	table := *m.table
	table.LoadID = MakeID()
	table.LoadedAt = time.Unix(n, 0).UTC()
	return &table, nil
}
