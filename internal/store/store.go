// Package store is the validated persistence layer. One SQLStore serves both
// supported engines, SQLite (embedded, file-backed) and PostgreSQL, through
// database/sql; queries are written once with ? placeholders and rebound for
// postgres.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/mattn/go-sqlite3"
)

// Supported database/sql driver names.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "pgx"
)

var (
	// ErrNotFound reports that no row matched. It is an expected outcome,
	// not a fault; handlers translate it to a 404.
	ErrNotFound = errors.New("not found")

	// ErrConflict reports a unique-constraint violation on insert or
	// update, e.g. a username or list key already taken.
	ErrConflict = errors.New("already exists")
)

// SQLStore handles all entity CRUD against the configured engine.
type SQLStore struct {
	db     *sql.DB
	driver string
}

// Open connects to the database and verifies the connection. For SQLite the
// DSN gains foreign-key enforcement unless the caller set it already; item
// and session cascades depend on it.
func Open(driver, dsn string) (*SQLStore, error) {
	if driver != DriverSQLite && driver != DriverPostgres {
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}
	if driver == DriverSQLite && !strings.Contains(dsn, "_foreign_keys") {
		if strings.Contains(dsn, "?") {
			dsn += "&_foreign_keys=on"
		} else {
			dsn += "?_foreign_keys=on"
		}
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &SQLStore{db: db, driver: driver}, nil
}

// NewSQLStore wraps an already-open connection, e.g. an in-memory test
// database.
func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

// Close closes the underlying pool.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// q rebinds ? placeholders to $n for postgres. SQLite takes the query as
// written.
func (s *SQLStore) q(query string) string {
	if s.driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// classify maps driver-level failures onto the store error taxonomy. Absence
// becomes ErrNotFound, unique-constraint hits become ErrConflict, anything
// else is wrapped as a storage error with the operation name.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if isUniqueViolation(err) {
		return fmt.Errorf("%s: %w", op, ErrConflict)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
