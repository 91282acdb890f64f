package middleware

import (
	"context"
	"errors"
	"net/http"

	pkgAuth "github.com/leaderturk/property-management/pkg/auth"
	"github.com/leaderturk/property-management/pkg/auth/session"
	"github.com/leaderturk/property-management/pkg/config"
	"github.com/leaderturk/property-management/pkg/db/models"
	"github.com/leaderturk/property-management/pkg/logger"
)

// SessionResolver maps a cookie token to the user id it was issued for.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (string, error)
}

// PrincipalLoader re-fetches the live user record for a session.
type PrincipalLoader interface {
	Principal(ctx context.Context, userID string) (*models.User, error)
}

// Session restores the signed-in user from the session cookie. Requests
// without a valid session continue anonymously.
func Session(cfg config.SessionConfig, sessions SessionResolver, principals PrincipalLoader, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := pkgAuth.SessionToken(r, cfg)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			userID, err := sessions.Resolve(ctx, token)
			if err != nil {
				if !errors.Is(err, session.ErrInvalidSession) && logg != nil {
					logg.Warn(logg.WithField(ctx, "error", err.Error()), "session.restore.failed")
				}
				next.ServeHTTP(w, r)
				return
			}

			user, err := principals.Principal(ctx, userID)
			if err != nil {
				if logg != nil {
					logg.Warn(logg.WithField(ctx, "error", err.Error()), "session.restore.failed")
				}
				next.ServeHTTP(w, r)
				return
			}
			if user == nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx = WithPrincipal(ctx, user)
			ctx = logg.WithActor(ctx, user.ID, string(user.Role))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
