// Package testutil contains shared testing utilities.
package testutil

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"

	"github.com/mkbraam/wishd/internal/store"
)

// NewStore opens a fresh in-memory SQLite database with the schema applied.
// The raw handle comes along so tests can reach under the store, e.g. to
// backdate session rows.
func NewStore(t *testing.T) (*store.SQLStore, *sql.DB) {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared&_foreign_keys=on"
	db, err := sql.Open(store.DriverSQLite, dsn)
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	s := store.NewSQLStore(db, store.DriverSQLite)
	if err := s.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return s, db
}
