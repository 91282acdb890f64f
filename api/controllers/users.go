package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/leaderturk/property-management/api/middleware"
	"github.com/leaderturk/property-management/api/responses"
	"github.com/leaderturk/property-management/api/validators"
	"github.com/leaderturk/property-management/internal/users"
	"github.com/leaderturk/property-management/pkg/logger"
)

func AdminUserList(svc *users.Service, logg *logger.Logger) http.HandlerFunc {
	return List(svc.List, logg)
}

func AdminUserCreate(svc *users.Service, logg *logger.Logger) http.HandlerFunc {
	return Created(svc.Create, logg)
}

// AdminUserPassword sets a new password for any user.
func AdminUserPassword(svc *users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body users.ChangePasswordRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.ChangePassword(r.Context(), chi.URLParam(r, "id"), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		logg.Info(logg.WithField(r.Context(), "target_user_id", user.ID), "admin.user.password_changed")
		responses.WriteSuccess(w, user)
	}
}

// AdminUserDelete removes a user other than the caller.
func AdminUserDelete(svc *users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID := middleware.UserIDFromContext(r.Context())
		if err := svc.Delete(r.Context(), actorID, chi.URLParam(r, "id")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteOK(w)
	}
}
