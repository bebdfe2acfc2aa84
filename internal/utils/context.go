package utils

import (
	"context"

	"github.com/vaughan-dsouza/courses-api/internal/models"
)

// context key
type ctxKey string

const CtxUserKey ctxKey = "current_user"

// WithCurrentUser stores the authenticated user on ctx.
func WithCurrentUser(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, CtxUserKey, u)
}

// CurrentUser returns the user placed on ctx by the auth middleware.
func CurrentUser(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(CtxUserKey).(*models.User)
	return u, ok && u != nil
}
