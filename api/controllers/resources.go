package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/leaderturk/property-management/api/responses"
	"github.com/leaderturk/property-management/api/validators"
	"github.com/leaderturk/property-management/pkg/logger"
)

// The helpers below bind service methods to the uniform REST shape: lists
// and reads return bare JSON, creates 200, deletes {"success":true}.

// List serves an unfiltered collection.
func List[T any](list func(context.Context) ([]T, error), logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := list(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeList(w, items)
	}
}

// Get serves the record named by the {id} path parameter.
func Get[T any](get func(context.Context, string) (*T, error), logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		item, err := get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

// Create decodes and validates an I payload and responds 200 with the result.
func Create[I, T any](create func(context.Context, I) (*T, error), logg *logger.Logger) http.HandlerFunc {
	return createWithStatus(http.StatusOK, create, logg)
}

// Created is Create for endpoints whose clients expect 201.
func Created[I, T any](create func(context.Context, I) (*T, error), logg *logger.Logger) http.HandlerFunc {
	return createWithStatus(http.StatusCreated, create, logg)
}

func createWithStatus[I, T any](status int, create func(context.Context, I) (*T, error), logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body I
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := create(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, status, item)
	}
}

// Update decodes a partial P payload and applies it to the {id} record.
func Update[P, T any](update func(context.Context, string, P) (*T, error), logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var patch P
		if err := validators.DecodeJSONBody(r, &patch); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := update(r.Context(), chi.URLParam(r, "id"), patch)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

func Delete(del func(context.Context, string) error, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := del(r.Context(), chi.URLParam(r, "id")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteOK(w)
	}
}

// writeList keeps empty collections encoded as [] rather than null.
func writeList[T any](w http.ResponseWriter, items []T) {
	if items == nil {
		items = []T{}
	}
	responses.WriteSuccess(w, items)
}
