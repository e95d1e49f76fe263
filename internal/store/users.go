package store

import (
	"context"
	"time"

	"github.com/mkbraam/wishd/internal/models"
)

const userColumns = "id, username, email, password_hash, created_at, updated_at"

// CreateUser validates and inserts a new user. The caller supplies an
// already-hashed password; plaintext never reaches the store. A taken
// username surfaces as ErrConflict from the unique constraint.
func (s *SQLStore) CreateUser(ctx context.Context, username, email, passwordHash string) (*models.User, error) {
	user := &models.User{Username: username, Email: email, PasswordHash: passwordHash}
	if err := user.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	var out models.User
	err := s.db.QueryRowContext(ctx, s.q(
		`INSERT INTO users (username, email, password_hash, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 RETURNING `+userColumns),
		username, email, passwordHash, now, now,
	).Scan(&out.ID, &out.Username, &out.Email, &out.PasswordHash, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		return nil, classify("create user", err)
	}
	return &out, nil
}

// GetUserByID returns the user with the given id, or ErrNotFound.
func (s *SQLStore) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	err := s.db.QueryRowContext(ctx, s.q(
		`SELECT `+userColumns+` FROM users WHERE id = ?`), id,
	).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, classify("get user", err)
	}
	return &u, nil
}

// GetUserByUsername returns the user with the given username, or
// ErrNotFound. The hash comes along for password verification.
func (s *SQLStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := s.db.QueryRowContext(ctx, s.q(
		`SELECT `+userColumns+` FROM users WHERE username = ?`), username,
	).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, classify("get user", err)
	}
	return &u, nil
}

// UpdateUser validates and replaces a user's username and email. The
// password hash moves only through dedicated credential flows.
func (s *SQLStore) UpdateUser(ctx context.Context, id int64, username, email string) (*models.User, error) {
	user := &models.User{ID: id, Username: username, Email: email}
	if err := user.Validate(); err != nil {
		return nil, err
	}

	var out models.User
	err := s.db.QueryRowContext(ctx, s.q(
		`UPDATE users SET username = ?, email = ?, updated_at = ?
		 WHERE id = ?
		 RETURNING `+userColumns),
		username, email, time.Now().UTC(), id,
	).Scan(&out.ID, &out.Username, &out.Email, &out.PasswordHash, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		return nil, classify("update user", err)
	}
	return &out, nil
}

// DeleteUser removes a user. Their sessions go with them via the
// foreign-key cascade.
func (s *SQLStore) DeleteUser(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, s.q(`DELETE FROM users WHERE id = ?`), id)
	if err != nil {
		return classify("delete user", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// CountUsers returns the total number of registered users.
func (s *SQLStore) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, classify("count users", err)
	}
	return n, nil
}
