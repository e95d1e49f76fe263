package auth

import (
	"context"

	"github.com/mkbraam/wishd/internal/models"
)

type ctxKey struct{}

// WithLoggedInUser returns a context carrying the resolved identity.
func WithLoggedInUser(ctx context.Context, user *models.LoggedInUser) context.Context {
	return context.WithValue(ctx, ctxKey{}, user)
}

// FromContext returns the identity resolved for this request, or nil when
// the request is anonymous.
func FromContext(ctx context.Context) *models.LoggedInUser {
	user, _ := ctx.Value(ctxKey{}).(*models.LoggedInUser)
	return user
}
