package store

import (
	"context"
	"fmt"
)

// Migrate creates the schema if it doesn't exist. DDL differs per engine
// only in the primary-key column type.
func (s *SQLStore) Migrate(ctx context.Context) error {
	pk := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if s.driver == DriverPostgres {
		pk = "BIGSERIAL PRIMARY KEY"
	}

	queries := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS lists (
			id          %s,
			key         TEXT    UNIQUE NOT NULL,
			is_private  BOOLEAN NOT NULL DEFAULT FALSE,
			title       TEXT    NOT NULL,
			description TEXT    NOT NULL DEFAULT ''
		)`, pk),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS items (
			id          %s,
			list_id     BIGINT NOT NULL REFERENCES lists(id) ON DELETE CASCADE,
			title       TEXT   NOT NULL,
			description TEXT   NOT NULL DEFAULT ''
		)`, pk),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS users (
			id            %s,
			username      TEXT      UNIQUE NOT NULL,
			email         TEXT      NOT NULL,
			password_hash TEXT      NOT NULL,
			created_at    TIMESTAMP NOT NULL,
			updated_at    TIMESTAMP NOT NULL
		)`, pk),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS user_sessions (
			id         %s,
			token      TEXT      UNIQUE NOT NULL,
			user_id    BIGINT    NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`, pk),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS images (
			id         %s,
			source_url TEXT
		)`, pk),
	}

	for _, query := range queries {
		if _, err := s.db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
