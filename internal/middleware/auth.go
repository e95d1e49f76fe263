package middleware

import (
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/mkbraam/wishd/internal/auth"
)

// CurrentUser resolves the session cookie once per request and injects the
// result into the context. Downstream handlers read it with
// auth.FromContext instead of hitting storage again.
func CurrentUser(sessions *auth.Sessions, logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := sessions.Resolve(r.Context(), r)
			if err != nil {
				logger.Error("resolve session", "err", err)
				http.Error(w, `{"message":"internal error"}`, http.StatusInternalServerError)
				return
			}
			if user == nil {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(auth.WithLoggedInUser(r.Context(), user)))
		})
	}
}

// RequireAuth rejects anonymous requests. It expects CurrentUser to have
// run earlier in the chain.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth.FromContext(r.Context()) == nil {
			http.Error(w, `{"message":"not authenticated"}`, http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
