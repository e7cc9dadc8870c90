package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sakif/bookie/internal/handler"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHandleHealth(t *testing.T) {
	tests := []struct {
		name       string
		pinger     handler.Pinger
		wantStatus int
		wantBody   string
	}{
		{"store up", pingerFunc(func(context.Context) error { return nil }), http.StatusOK, `{"status":"ok"}`},
		{"store down", pingerFunc(func(context.Context) error { return errors.New("connection refused") }), http.StatusServiceUnavailable, `{"status":"unhealthy"}`},
		{"store slow", pingerFunc(func(ctx context.Context) error { <-ctx.Done(); return ctx.Err() }), http.StatusServiceUnavailable, `{"status":"unhealthy"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			handler.NewHealthHandler(tt.pinger).HandleHealth(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.JSONEq(t, tt.wantBody, rr.Body.String())
		})
	}
}

func TestHandleHealth_RealStore(t *testing.T) {
	f := newFixture(t)

	rr := httptest.NewRecorder()
	handler.NewHealthHandler(f.db).HandleHealth(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}
