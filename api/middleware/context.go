package middleware

import (
	"context"

	"github.com/leaderturk/property-management/pkg/db/models"
)

type contextKey string

const (
	ctxPrincipal contextKey = "principal"
)

// PrincipalFromContext returns the signed-in user restored by Session, or nil.
func PrincipalFromContext(ctx context.Context) *models.User {
	if ctx == nil {
		return nil
	}
	if u, ok := ctx.Value(ctxPrincipal).(*models.User); ok {
		return u
	}
	return nil
}

func UserIDFromContext(ctx context.Context) string {
	if u := PrincipalFromContext(ctx); u != nil {
		return u.ID
	}
	return ""
}

func RoleFromContext(ctx context.Context) string {
	if u := PrincipalFromContext(ctx); u != nil {
		return string(u.Role)
	}
	return ""
}

// WithPrincipal injects the signed-in user into the context.
func WithPrincipal(ctx context.Context, u *models.User) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxPrincipal, u)
}
