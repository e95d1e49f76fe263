package store

import (
	"context"
	"time"

	"github.com/mkbraam/wishd/internal/models"
)

const sessionColumns = "id, token, user_id, created_at, updated_at"

// CreateSession inserts a session row for the given user and token.
func (s *SQLStore) CreateSession(ctx context.Context, token string, userID int64) (*models.Session, error) {
	now := time.Now().UTC()
	var out models.Session
	err := s.db.QueryRowContext(ctx, s.q(
		`INSERT INTO user_sessions (token, user_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?)
		 RETURNING `+sessionColumns),
		token, userID, now, now,
	).Scan(&out.ID, &out.Token, &out.UserID, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		return nil, classify("create session", err)
	}
	return &out, nil
}

// GetSessionByToken returns the session for the token, treating anything
// created before notBefore as absent even if not yet purged.
func (s *SQLStore) GetSessionByToken(ctx context.Context, token string, notBefore time.Time) (*models.Session, error) {
	var sess models.Session
	err := s.db.QueryRowContext(ctx, s.q(
		`SELECT `+sessionColumns+` FROM user_sessions
		 WHERE token = ? AND created_at > ?`),
		token, notBefore,
	).Scan(&sess.ID, &sess.Token, &sess.UserID, &sess.CreatedAt, &sess.UpdatedAt)
	if err != nil {
		return nil, classify("get session", err)
	}
	return &sess, nil
}

// DeleteSessionByToken removes a session row. Deleting an unknown token is
// a no-op, not an error: logout must be idempotent.
func (s *SQLStore) DeleteSessionByToken(ctx context.Context, token string) error {
	_, err := s.db.ExecContext(ctx, s.q(`DELETE FROM user_sessions WHERE token = ?`), token)
	return classify("delete session", err)
}

// PurgeSessionsBefore deletes every session created before the cutoff and
// reports how many went.
func (s *SQLStore) PurgeSessionsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, s.q(
		`DELETE FROM user_sessions WHERE created_at < ?`), cutoff)
	if err != nil {
		return 0, classify("purge sessions", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, classify("purge sessions", err)
	}
	return n, nil
}
