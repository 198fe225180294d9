// Package testutil provides shared test fixtures: a fluent builder for cutoff
// records and a migrated on-disk database seeded with them.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Veraticus/kcet-counsel/internal/model"
	"github.com/Veraticus/kcet-counsel/internal/storage"
)

// SetupTestDB creates a migrated database in a temporary directory and seeds
// it with records. The file path is real so other connections can open it.
//
// Example:
//
//	store := testutil.SetupTestDB(t, testutil.NewCutoffBuilder().
//		Add("E001", "CS", "Computer Science", 5000).
//		Build())
func SetupTestDB(t *testing.T, records []model.CutoffRecord) *storage.SQLiteStorage {
	t.Helper()

	store, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "kcet.db"))
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	if len(records) > 0 {
		if err := store.ReplaceCutoffs(ctx, records, nil); err != nil {
			_ = store.Close()
			t.Fatalf("failed to seed cutoffs: %v", err)
		}
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return store
}
