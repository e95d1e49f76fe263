package auth

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/mkbraam/wishd/internal/keygen"
	"github.com/mkbraam/wishd/internal/models"
	"github.com/mkbraam/wishd/internal/store"
)

const (
	// SessionCookie is the name of the session cookie.
	SessionCookie = "session_id"

	// SessionTTL bounds both the cookie max age and how long a session row
	// stays resolvable.
	SessionTTL = 7 * 24 * time.Hour
)

// SessionStore defines the interface for session persistence.
type SessionStore interface {
	CreateSession(ctx context.Context, token string, userID int64) (*models.Session, error)
	GetSessionByToken(ctx context.Context, token string, notBefore time.Time) (*models.Session, error)
	DeleteSessionByToken(ctx context.Context, token string) error
	PurgeSessionsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// UserStore defines the interface for user persistence.
type UserStore interface {
	CreateUser(ctx context.Context, username, email, passwordHash string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// Sessions issues, resolves and revokes session tokens.
type Sessions struct {
	sessions SessionStore
	users    UserStore
}

func NewSessions(sessions SessionStore, users UserStore) *Sessions {
	return &Sessions{sessions: sessions, users: users}
}

// Create generates a token, persists the session row and returns the cookie
// to set on the response.
func (s *Sessions) Create(ctx context.Context, user *models.User) (*models.Session, *http.Cookie, error) {
	token, err := keygen.NewToken()
	if err != nil {
		return nil, nil, err
	}

	sess, err := s.sessions.CreateSession(ctx, token, user.ID)
	if err != nil {
		return nil, nil, err
	}

	cookie := &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(SessionTTL / time.Second),
	}
	return sess, cookie, nil
}

// Resolve turns the request's session cookie into a LoggedInUser. A missing
// cookie, an unknown or expired token, and a session pointing at a deleted
// user all resolve to nil without error; only storage faults are errors.
func (s *Sessions) Resolve(ctx context.Context, r *http.Request) (*models.LoggedInUser, error) {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		return nil, nil
	}

	sess, err := s.sessions.GetSessionByToken(ctx, cookie.Value, time.Now().UTC().Add(-SessionTTL))
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetUserByID(ctx, sess.UserID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &models.LoggedInUser{User: *user}, nil
}

// Destroy deletes the session named by the request's cookie and returns a
// clearing cookie to set. Without a session cookie it succeeds as a no-op.
func (s *Sessions) Destroy(ctx context.Context, r *http.Request) (*http.Cookie, error) {
	clear := &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   -1,
	}

	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		return clear, nil
	}

	if err := s.sessions.DeleteSessionByToken(ctx, cookie.Value); err != nil {
		return nil, err
	}
	return clear, nil
}

// PurgeExpired deletes every session past the TTL. Meant to run
// periodically, not per request.
func (s *Sessions) PurgeExpired(ctx context.Context) (int64, error) {
	return s.sessions.PurgeSessionsBefore(ctx, time.Now().UTC().Add(-SessionTTL))
}
