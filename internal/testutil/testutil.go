// Package testutil provides shared test helpers for setting up stores and routers.
package testutil

import (
	"os"
	"testing"

	"github.com/minjae-im/dallyeok/internal/store"
)

// TestDB creates a temporary SQLite event store that is automatically cleaned up.
func TestDB(t *testing.T) *store.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "dallyeok-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := store.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}
