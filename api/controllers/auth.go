package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/leaderturk/property-management/api/middleware"
	"github.com/leaderturk/property-management/api/responses"
	"github.com/leaderturk/property-management/api/validators"
	"github.com/leaderturk/property-management/internal/auth"
	"github.com/leaderturk/property-management/internal/users"
	pkgauth "github.com/leaderturk/property-management/pkg/auth"
	"github.com/leaderturk/property-management/pkg/config"
	"github.com/leaderturk/property-management/pkg/db/models"
	pkgerrors "github.com/leaderturk/property-management/pkg/errors"
	"github.com/leaderturk/property-management/pkg/logger"
)

// Authenticator checks credentials and creates self-registered accounts.
type Authenticator interface {
	Authenticate(ctx context.Context, req auth.LoginRequest) (*models.User, error)
	Register(ctx context.Context, req auth.RegisterRequest) (*models.User, error)
}

// SessionIssuer starts and ends cookie sessions.
type SessionIssuer interface {
	Create(ctx context.Context, userID string) (string, time.Time, error)
	Destroy(ctx context.Context, token string) error
}

// AuthRegister creates a regular user account and signs it in.
func AuthRegister(svc Authenticator, sessions SessionIssuer, cfg *config.Config, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body auth.RegisterRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.Register(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := startSession(w, r, sessions, cfg, user.ID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		logg.Info(logg.WithActor(r.Context(), user.ID, string(user.Role)), "auth.register.success")
		responses.WriteCreated(w, users.FromModel(user))
	}
}

// AuthLogin wires the login endpoint into the HTTP layer.
func AuthLogin(svc Authenticator, sessions SessionIssuer, cfg *config.Config, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body auth.LoginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.Authenticate(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := startSession(w, r, sessions, cfg, user.ID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, users.FromModel(user))
	}
}

// AuthLogout ends the current session. It succeeds without a session too.
func AuthLogout(sessions SessionIssuer, cfg *config.Config, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if token := pkgauth.SessionToken(r, cfg.Session); token != "" {
			if err := sessions.Destroy(r.Context(), token); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "destroy session"))
				return
			}
		}
		pkgauth.ClearSessionCookie(w, r, cfg.Session, cfg.App)
		responses.WriteOK(w)
	}
}

// AuthUser returns the signed-in user.
func AuthUser(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal := middleware.PrincipalFromContext(r.Context())
		if principal == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "Unauthorized"))
			return
		}
		responses.WriteSuccess(w, users.FromModel(principal))
	}
}

// startSession replaces any session the client already holds with a new one.
func startSession(w http.ResponseWriter, r *http.Request, sessions SessionIssuer, cfg *config.Config, userID string) error {
	if old := pkgauth.SessionToken(r, cfg.Session); old != "" {
		_ = sessions.Destroy(r.Context(), old)
	}
	token, expires, err := sessions.Create(r.Context(), userID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create session")
	}
	pkgauth.SetSessionCookie(w, r, cfg.Session, cfg.App, token, expires)
	return nil
}
