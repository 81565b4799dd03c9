// Package testutil provides shared helpers for tests that need a real
// storage backend.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/mintality/mintality/internal/model"
	"github.com/mintality/mintality/internal/storage"
)

// SetupTestDB creates a migrated in-memory SQLite store with automatic
// cleanup.
func SetupTestDB(t *testing.T) *storage.SQLiteStorage {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return store
}

// Transaction builds a valid transaction for tests. The ID defaults to the
// content hash when left empty.
func Transaction(id string, date time.Time, merchant, category string, amount float64, emotion model.Emotion) model.Transaction {
	txn := model.Transaction{
		ID:       id,
		Date:     date,
		Merchant: merchant,
		Category: category,
		Amount:   amount,
		Emotion:  emotion,
	}
	txn.SetTimeContext()
	if txn.ID == "" {
		txn.ID = txn.GenerateHash()
	}
	return txn
}
