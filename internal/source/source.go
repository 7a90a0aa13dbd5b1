// Package source loads daily profit/loss tables from the supported data
// sources and cleans them into model.Table values.
//
// Cleaning is identical for every source: rows whose date or gain cannot
// be parsed are dropped into Table.Skipped, fully blank rows are ignored,
// and the remaining entries are stable-sorted ascending by date so that
// duplicate dates keep their source order.
package source

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/ndewijer/pnl-dashboard/internal/model"
)

// Loader acquires the raw table from one data source.
type Loader interface {
	// Identity names the source for cache keys and logs. It must be stable
	// across loads and must not leak credentials.
	Identity() string

	// Load fetches and cleans the table.
	Load(ctx context.Context) (*model.Table, error)
}

// StoreChecker is implemented by loaders backed by a database that can be
// inspected without a full load.
type StoreChecker interface {
	CheckStore(ctx context.Context) (model.StoreStatus, error)
}

// CheckStore inspects the database behind l, looking through wrappers that
// expose Unwrap. ok is false when no loader in the chain keeps one.
func CheckStore(ctx context.Context, l Loader) (status model.StoreStatus, ok bool, err error) {
	for l != nil {
		if c, is := l.(StoreChecker); is {
			status, err = c.CheckStore(ctx)
			return status, true, err
		}
		w, is := l.(interface{ Unwrap() Loader })
		if !is {
			break
		}
		l = w.Unwrap()
	}
	return model.StoreStatus{}, false, nil
}

// newTable finalizes a cleaned load: sorts entries and stamps load metadata.
func newTable(identity string, entries []model.Entry, skipped []model.SkippedRow) *model.Table {
	slices.SortStableFunc(entries, func(a, b model.Entry) int {
		return a.Date.Compare(b.Date)
	})

	return &model.Table{
		LoadID:   uuid.New().String(),
		Source:   identity,
		LoadedAt: time.Now().UTC(),
		Entries:  entries,
		Skipped:  skipped,
	}
}
