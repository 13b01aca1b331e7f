package storage

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"
)

// Helper function to create test storage.
func createTestStorage(t *testing.T) (*SQLiteStorage, func()) {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		t.Fatalf("Failed to migrate: %v", err)
	}

	return store, func() { _ = store.Close() }
}

func TestSQLiteStorage_LoadMissingKey(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	blob, ok, err := store.Load(context.Background(), "transactions")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if ok {
		t.Errorf("Load() ok = true for a key that was never saved")
	}
	if blob != nil {
		t.Errorf("Load() blob = %q, want nil", blob)
	}
}

func TestSQLiteStorage_SaveAndLoad(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		saves [][]byte
		want  []byte
	}{
		{
			name:  "single save",
			key:   "categories",
			saves: [][]byte{[]byte(`[{"id":"food"}]`)},
			want:  []byte(`[{"id":"food"}]`),
		},
		{
			name:  "last write wins",
			key:   "transactions",
			saves: [][]byte{[]byte(`[1]`), []byte(`[1,2]`), []byte(`[]`)},
			want:  []byte(`[]`),
		},
		{
			name:  "empty blob is stored",
			key:   "empty",
			saves: [][]byte{{}},
			want:  []byte{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, cleanup := createTestStorage(t)
			defer cleanup()
			ctx := context.Background()

			for _, blob := range tt.saves {
				if err := store.Save(ctx, tt.key, blob); err != nil {
					t.Fatalf("Save() error = %v", err)
				}
			}

			got, ok, err := store.Load(ctx, tt.key)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if !ok {
				t.Fatalf("Load() ok = false after Save")
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("Load() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSQLiteStorage_KeysAreIndependent(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	if err := store.Save(ctx, "transactions", []byte("t")); err != nil {
		t.Fatal(err)
	}
	if err := store.Save(ctx, "categories", []byte("c")); err != nil {
		t.Fatal(err)
	}

	keys, err := store.Keys(ctx)
	if err != nil {
		t.Fatalf("Keys() error = %v", err)
	}
	if len(keys) != 2 || keys[0] != "categories" || keys[1] != "transactions" {
		t.Errorf("Keys() = %v, want [categories transactions]", keys)
	}

	got, _, err := store.Load(ctx, "transactions")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "t" {
		t.Errorf("transactions = %q, want %q", got, "t")
	}
}

func TestSQLiteStorage_PersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "budget.db")
	ctx := context.Background()

	store, err := NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteStorage() error = %v", err)
	}
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	if err := store.Save(ctx, "categories", []byte("saved")); err != nil {
		t.Fatal(err)
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}

	reopened, err := NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer reopened.Close()
	if err := reopened.Migrate(ctx); err != nil {
		t.Fatalf("Migrate() on reopen error = %v", err)
	}

	got, ok, err := reopened.Load(ctx, "categories")
	if err != nil || !ok {
		t.Fatalf("Load() = %q, %v, %v", got, ok, err)
	}
	if string(got) != "saved" {
		t.Errorf("Load() = %q, want %q", got, "saved")
	}
	if reopened.Path() != dbPath {
		t.Errorf("Path() = %q, want %q", reopened.Path(), dbPath)
	}
}

func TestSQLiteStorage_InMemory(t *testing.T) {
	store, err := NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("NewSQLiteStorage() error = %v", err)
	}
	defer store.Close()
	ctx := context.Background()

	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	if err := store.Save(ctx, "k", []byte("v")); err != nil {
		t.Fatal(err)
	}
	got, ok, err := store.Load(ctx, "k")
	if err != nil || !ok || string(got) != "v" {
		t.Errorf("Load() = %q, %v, %v", got, ok, err)
	}
}

func TestSQLiteStorage_Validation(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	//nolint:staticcheck // nil context is the point of this check
	if _, _, err := store.Load(nil, "k"); !errors.Is(err, ErrNilContext) {
		t.Errorf("Load(nil ctx) error = %v, want ErrNilContext", err)
	}
	if _, _, err := store.Load(ctx, "  "); !errors.Is(err, ErrEmptyString) {
		t.Errorf("Load(blank key) error = %v, want ErrEmptyString", err)
	}
	if err := store.Save(ctx, "k", nil); !errors.Is(err, ErrNilParameter) {
		t.Errorf("Save(nil blob) error = %v, want ErrNilParameter", err)
	}
	if _, err := NewSQLiteStorage(""); !errors.Is(err, ErrEmptyString) {
		t.Errorf("NewSQLiteStorage(\"\") error = %v, want ErrEmptyString", err)
	}
}
