package models

import (
	"time"

	"github.com/mkbraam/wishd/internal/validate"
)

// Password bounds for registration.
const (
	PasswordMin = 8
	PasswordMax = 128
)

// passwordDenylist rejects passwords too well known to allow.
var passwordDenylist = []string{"password", "hunter2"}

// User represents a row in the users table.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // never serialize
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Validate reports every violated field rule, or nil.
func (u *User) Validate() error {
	return validate.Collect(
		validate.Length("username", u.Username, 2, 64,
			"Username must be between 2 and 64 characters"),
		validate.MaxLength("email", u.Email, 256,
			"Email must be less than 256 characters"),
	)
}

// Session represents a row in the user_sessions table. The token is an
// opaque bearer credential carried in the session cookie.
type Session struct {
	ID        int64     `json:"-"`
	Token     string    `json:"-"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoggedInUser is the request-scoped identity resolved from the session
// cookie. It is computed once at the start of request handling and injected
// into the request context.
type LoggedInUser struct {
	User User `json:"user"`
}

// RegisterRequest is the JSON body for POST /api/auth/register.
type RegisterRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
}

// Validate checks the registration form before any user row is built.
// Username and email rules run again in User.Validate at insert time.
func (r *RegisterRequest) Validate() error {
	return validate.Collect(
		validate.Length("password", r.Password, PasswordMin, PasswordMax,
			"Password must be longer than 8 characters."),
		validate.NotIn("password", r.Password, passwordDenylist,
			"That password is too easy to guess"),
		validate.Match("password_confirm", r.PasswordConfirm, r.Password,
			"Passwords must match"),
	)
}

// LoginRequest is the JSON body for POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
