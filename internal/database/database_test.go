package database

import (
	"context"
	"path/filepath"
	"testing"
)

func TestOpenAndMigrate(t *testing.T) {
	// WHY: a fresh journal path must work without the user creating directories first.
	path := filepath.Join(t.TempDir(), "data", "journal.db")

	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}

	version, err := SchemaVersion(db)
	if err != nil {
		t.Fatalf("SchemaVersion() error = %v", err)
	}
	if version != 1 {
		t.Errorf("Expected schema version 1, got %d", version)
	}

	// Migrating an up-to-date database is a no-op.
	if err := Migrate(db); err != nil {
		t.Errorf("second Migrate() error = %v", err)
	}

	if _, err := db.Exec(`INSERT INTO pnl_entry (id, date, gain) VALUES ('a', '2024-01-02', 10)`); err != nil {
		t.Errorf("Expected pnl_entry table to accept rows: %v", err)
	}

	if err := HealthCheck(context.Background(), db); err != nil {
		t.Errorf("HealthCheck() error = %v", err)
	}
}

func TestHealthCheck_ClosedDatabase(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	db.Close()

	if err := HealthCheck(context.Background(), db); err == nil {
		t.Error("Expected error for closed database")
	}
}
