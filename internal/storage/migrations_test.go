package storage

import (
	"context"
	"testing"
)

func TestMigrate_ReachesExpectedVersion(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	var version int
	if err := store.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		t.Fatalf("Failed to read schema version: %v", err)
	}
	if version != ExpectedSchemaVersion {
		t.Errorf("schema version = %d, want %d", version, ExpectedSchemaVersion)
	}

	var tableCount int
	err := store.db.QueryRow(`
		SELECT COUNT(*) FROM sqlite_master
		WHERE type='table' AND name='kv'
	`).Scan(&tableCount)
	if err != nil {
		t.Fatalf("Failed to check table: %v", err)
	}
	if tableCount != 1 {
		t.Error("kv table was not created")
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	if err := store.Save(ctx, "categories", []byte("keep")); err != nil {
		t.Fatal(err)
	}

	// createTestStorage already migrated once.
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("second Migrate() error = %v", err)
	}

	got, ok, err := store.Load(ctx, "categories")
	if err != nil || !ok || string(got) != "keep" {
		t.Errorf("data lost across re-migration: %q, %v, %v", got, ok, err)
	}
}
