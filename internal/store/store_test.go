package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// setupStore creates an in-memory SQLite database with the schema applied.
func setupStore(t *testing.T) *SQLStore {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared&_foreign_keys=on"
	db, err := sql.Open(DriverSQLite, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	s := NewSQLStore(db, DriverSQLite)
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open("mysql", "whatever")
	require.Error(t, err)
}

func TestRebind(t *testing.T) {
	s := &SQLStore{driver: DriverPostgres}
	require.Equal(t,
		"SELECT * FROM lists WHERE key = $1 AND is_private = $2",
		s.q("SELECT * FROM lists WHERE key = ? AND is_private = ?"))

	s = &SQLStore{driver: DriverSQLite}
	require.Equal(t, "SELECT ?", s.q("SELECT ?"))
}
