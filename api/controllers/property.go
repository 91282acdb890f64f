package controllers

import (
	"net/http"

	"github.com/leaderturk/property-management/api/responses"
	"github.com/leaderturk/property-management/api/validators"
	"github.com/leaderturk/property-management/internal/blog"
	"github.com/leaderturk/property-management/internal/fees"
	"github.com/leaderturk/property-management/internal/flats"
	"github.com/leaderturk/property-management/internal/maintenance"
	"github.com/leaderturk/property-management/pkg/logger"
)

// FlatList serves all flats, or those of ?buildingId=.
func FlatList(svc *flats.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context(), validators.QueryString(r, "buildingId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeList(w, items)
	}
}

// FeePaymentList serves all payments, or those of ?flatId=.
func FeePaymentList(svc *fees.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context(), validators.QueryString(r, "flatId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeList(w, items)
	}
}

func MaintenanceList(svc *maintenance.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context(), validators.QueryString(r, "flatId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeList(w, items)
	}
}

// BlogPostList serves every post, or only published ones with ?published=true.
func BlogPostList(svc *blog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		published, err := validators.ParseQueryBool(r, "published")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		items, err := svc.List(r.Context(), published)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeList(w, items)
	}
}
