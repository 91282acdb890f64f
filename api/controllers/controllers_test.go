package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leaderturk/property-management/pkg/config"
	pkgerrors "github.com/leaderturk/property-management/pkg/errors"
	"github.com/leaderturk/property-management/pkg/logger"
)

type pingFunc func(context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthReadyReportsFailingDependency(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: "test"}}
	deps := map[string]Pinger{
		"storage": pingFunc(func(context.Context) error { return nil }),
		"redis":   pingFunc(func(context.Context) error { return errors.New("connection refused") }),
		"unused":  nil,
	}

	rec := httptest.NewRecorder()
	HealthReady(cfg, logger.Nop(), deps).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var body struct {
		Error struct {
			Code    string            `json:"code"`
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, string(pkgerrors.CodeDependency), body.Error.Code)
	assert.Equal(t, map[string]string{"redis": "connection refused"}, body.Error.Details)
}

type widget struct {
	ID   string `json:"id"`
	Name string `json:"name" validate:"required"`
}

func TestListEncodesEmptyAsArray(t *testing.T) {
	list := func(context.Context) ([]widget, error) { return nil, nil }

	rec := httptest.NewRecorder()
	List(list, logger.Nop()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestCreateValidatesBeforeCalling(t *testing.T) {
	called := false
	create := func(_ context.Context, in widget) (*widget, error) {
		called = true
		in.ID = "w1"
		return &in, nil
	}
	h := Create(create, logger.Nop())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, called)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"gear"}`)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":"w1","name":"gear"}`, rec.Body.String())
}

func TestCreatedRespondsWith201(t *testing.T) {
	create := func(_ context.Context, in widget) (*widget, error) {
		in.ID = "w2"
		return &in, nil
	}

	rec := httptest.NewRecorder()
	Created(create, logger.Nop()).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"bolt"}`)))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"id":"w2","name":"bolt"}`, rec.Body.String())
}

func TestDeleteUsesPathID(t *testing.T) {
	var got string
	del := func(_ context.Context, id string) error {
		got = id
		if id == "missing" {
			return pkgerrors.NotFound("Widget")
		}
		return nil
	}

	r := chi.NewRouter()
	r.Delete("/widgets/{id}", Delete(del, logger.Nop()))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/widgets/w7", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "w7", got)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/widgets/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
