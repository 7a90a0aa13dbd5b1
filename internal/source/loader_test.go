package source_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ndewijer/pnl-dashboard/internal/apperrors"
	"github.com/ndewijer/pnl-dashboard/internal/cache"
	"github.com/ndewijer/pnl-dashboard/internal/config"
	"github.com/ndewijer/pnl-dashboard/internal/logger"
	"github.com/ndewijer/pnl-dashboard/internal/source"
	"github.com/ndewijer/pnl-dashboard/internal/testutil"
)

func TestSheetLoader_Load(t *testing.T) {
	t.Run("parses the exported CSV", func(t *testing.T) {
		var hits atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			hits.Add(1)
			w.Header().Set("Content-Type", "text/csv")
			//nolint:errcheck // Test server write
			w.Write([]byte("\"Date\",\"Gain\",\"Deposit\"\n\"2/1/2024\",\"-50,000\",\"\"\n\"1/1/2024\",\"100,000\",\"0\"\n"))
		}))
		defer srv.Close()

		loader := source.NewSheetLoader(srv.URL, srv.Client(), logger.Nop())
		table, err := loader.Load(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if hits.Load() != 1 {
			t.Errorf("expected 1 request, got %d", hits.Load())
		}
		if table.Len() != 2 {
			t.Fatalf("expected 2 entries, got %d", table.Len())
		}
		// Sorted ascending even though the sheet lists newest first.
		if table.Entries[0].Gain != 100000 || table.Entries[1].Gain != -50000 {
			t.Errorf("unexpected gains: %+v", table.Entries)
		}
		if !strings.HasPrefix(table.Source, "sheet:") {
			t.Errorf("expected sheet identity, got %q", table.Source)
		}
	})

	t.Run("non-2xx is source unavailable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "nope", http.StatusForbidden)
		}))
		defer srv.Close()

		loader := source.NewSheetLoader(srv.URL, srv.Client(), logger.Nop())
		_, err := loader.Load(context.Background())
		if !errors.Is(err, apperrors.ErrSourceUnavailable) {
			t.Errorf("expected ErrSourceUnavailable, got %v", err)
		}
	})

	t.Run("honors the client timeout", func(t *testing.T) {
		// WHY: a hung spreadsheet export must not hang the dashboard request.
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-time.After(2 * time.Second):
			case <-r.Context().Done():
			}
		}))
		defer srv.Close()

		client := srv.Client()
		client.Timeout = 50 * time.Millisecond
		loader := source.NewSheetLoader(srv.URL, client, logger.Nop())

		_, err := loader.Load(context.Background())
		if !errors.Is(err, apperrors.ErrSourceUnavailable) {
			t.Errorf("expected ErrSourceUnavailable, got %v", err)
		}
	})

	t.Run("identity does not leak the url", func(t *testing.T) {
		loader := source.NewSheetLoader(source.SheetURL("secret-id", "Gain"), nil, logger.Nop())
		if strings.Contains(loader.Identity(), "secret-id") {
			t.Errorf("identity leaks sheet id: %q", loader.Identity())
		}
	})
}

func TestFileLoader_Load(t *testing.T) {
	t.Run("reads a local file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "pnl.csv")
		content := "Ngày,Lãi/Lỗ,Ghi chú\n2024-01-01,100,\n2024-01-02,oops,\n2024-01-03,-40,revenge trade\n"
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}

		table, err := source.NewFileLoader(path, logger.Nop()).Load(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if table.Len() != 2 {
			t.Errorf("expected 2 entries, got %d", table.Len())
		}
		if len(table.Skipped) != 1 || table.Skipped[0].Line != 3 {
			t.Errorf("expected line 3 skipped, got %+v", table.Skipped)
		}
	})

	t.Run("missing file is source unavailable", func(t *testing.T) {
		loader := source.NewFileLoader(filepath.Join(t.TempDir(), "missing.csv"), logger.Nop())
		_, err := loader.Load(context.Background())
		if !errors.Is(err, apperrors.ErrSourceUnavailable) {
			t.Errorf("expected ErrSourceUnavailable, got %v", err)
		}
	})

	t.Run("missing columns are reported", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "pnl.csv")
		if err := os.WriteFile(path, []byte("when,amount\n2024-01-01,1\n"), 0o600); err != nil {
			t.Fatal(err)
		}

		_, err := source.NewFileLoader(path, logger.Nop()).Load(context.Background())
		if !errors.Is(err, apperrors.ErrMissingColumns) {
			t.Errorf("expected ErrMissingColumns, got %v", err)
		}
	})
}

func TestJournalLoader_Load(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.CreateEntry(t, db, "2024-02-02", -20)
	testutil.NewEntry().WithDate("2024-02-01").WithGain(50).WithDeposit(1000).WithNote("opened").Build(t, db)
	testutil.CreateEntry(t, db, "2024-02-02", 5)

	loader := source.NewJournalLoader(db, "test.db", logger.Nop())
	table, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if table.Len() != 3 {
		t.Fatalf("expected 3 entries, got %d", table.Len())
	}
	first := table.Entries[0]
	if first.Gain != 50 || first.Deposit != 1000 || first.Note != "opened" {
		t.Errorf("unexpected first entry: %+v", first)
	}
	if !first.Date.Equal(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected first date: %v", first.Date)
	}
	// Same-day entries keep insertion order.
	if table.Entries[1].Gain != -20 || table.Entries[2].Gain != 5 {
		t.Errorf("unexpected same-day order: %+v", table.Entries[1:])
	}
	if table.Source != "journal:test.db" {
		t.Errorf("unexpected identity %q", table.Source)
	}
}

func TestJournalLoader_SkipsMalformedRows(t *testing.T) {
	// WHY: SQLite keeps non-numeric text in FLOAT columns, so one hand-edited
	// row must land in Skipped instead of failing the whole load.
	db := testutil.SetupTestDB(t)
	testutil.CreateEntry(t, db, "2024-02-01", 50)
	testutil.NewEntry().WithDate("2024-02-02").WithGainText("1,000").Build(t, db)
	testutil.NewEntry().WithDate("someday").WithGain(10).Build(t, db)

	loader := source.NewJournalLoader(db, "test.db", logger.Nop())
	table, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if table.Len() != 1 || table.Entries[0].Gain != 50 {
		t.Fatalf("expected the single valid entry, got %+v", table.Entries)
	}
	if len(table.Skipped) != 2 {
		t.Fatalf("expected 2 skipped rows, got %+v", table.Skipped)
	}

	reasons := map[string]string{}
	for _, s := range table.Skipped {
		reasons[s.Gain] = s.Reason
	}
	if !strings.HasPrefix(reasons["1,000"], "unparseable gain") {
		t.Errorf("expected unparseable gain for \"1,000\", got %q", reasons["1,000"])
	}
	if !strings.HasPrefix(reasons["10"], "unparseable date") {
		t.Errorf("expected unparseable date for the undated row, got %q", reasons["10"])
	}
}

func TestCheckStore(t *testing.T) {
	t.Run("reports the journal behind a cache", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		testutil.CreateEntry(t, db, "2024-02-01", 50)
		testutil.NewEntry().WithDate("2024-02-02").WithGainText("oops").Build(t, db)

		memo := cache.New(source.NewJournalLoader(db, "test.db", logger.Nop()), time.Minute, logger.Nop())
		status, ok, err := source.CheckStore(context.Background(), memo)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok {
			t.Fatal("expected the journal to be found through the cache")
		}
		// Rows counts stored rows, malformed ones included.
		if status.Rows != 2 {
			t.Errorf("expected 2 rows, got %d", status.Rows)
		}
		if status.SchemaVersion < 1 {
			t.Errorf("expected a migrated schema, got version %d", status.SchemaVersion)
		}
	})

	t.Run("fails when the journal is closed", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		loader := source.NewJournalLoader(db, "test.db", logger.Nop())
		db.Close()

		if _, ok, err := source.CheckStore(context.Background(), loader); !ok || err == nil {
			t.Errorf("expected an error from the closed journal, got ok=%v err=%v", ok, err)
		}
	})

	t.Run("sources without a database report nothing", func(t *testing.T) {
		_, ok, err := source.CheckStore(context.Background(), testutil.NewMockLoader(nil))
		if ok || err != nil {
			t.Errorf("expected ok=false and no error, got ok=%v err=%v", ok, err)
		}
	})
}

func TestNew(t *testing.T) {
	t.Run("unknown kind", func(t *testing.T) {
		_, closeFn, err := source.New(config.SourceConfig{Kind: "ftp"}, logger.Nop())
		if !errors.Is(err, apperrors.ErrUnknownSource) {
			t.Errorf("expected ErrUnknownSource, got %v", err)
		}
		if closeFn == nil {
			t.Error("close func must never be nil")
		}
	})

	t.Run("file kind", func(t *testing.T) {
		loader, closeFn, err := source.New(config.SourceConfig{Kind: config.SourceFile, FilePath: "pnl.csv"}, logger.Nop())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer closeFn()
		if _, ok := loader.(*source.FileLoader); !ok {
			t.Errorf("expected *FileLoader, got %T", loader)
		}
	})

	t.Run("journal kind creates and migrates the database", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "nested", "journal.db")
		loader, closeFn, err := source.New(config.SourceConfig{Kind: config.SourceJournal, DBPath: dbPath}, logger.Nop())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer closeFn()

		table, err := loader.Load(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if table.Len() != 0 {
			t.Errorf("expected empty journal, got %d entries", table.Len())
		}
	})
}
