package controllers

import (
	"net/http"

	"github.com/leaderturk/property-management/api/responses"
	"github.com/leaderturk/property-management/internal/dashboard"
	"github.com/leaderturk/property-management/pkg/logger"
)

func DashboardStats(svc *dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := svc.Stats(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, stats)
	}
}
