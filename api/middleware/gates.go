package middleware

import (
	"net/http"

	"github.com/leaderturk/property-management/api/responses"
	pkgerrors "github.com/leaderturk/property-management/pkg/errors"
	"github.com/leaderturk/property-management/pkg/logger"
)

// RequireAuthenticated rejects anonymous requests with 401.
func RequireAuthenticated(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if PrincipalFromContext(r.Context()) == nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "Unauthorized"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin rejects non-admin principals with 403. Mount it behind
// RequireAuthenticated so anonymous callers see 401 first.
func RequireAdmin(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u := PrincipalFromContext(r.Context())
			if u == nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "Unauthorized"))
				return
			}
			if !u.IsAdmin() {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "Forbidden - Admin access required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
