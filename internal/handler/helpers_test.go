package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/sakif/bookie/internal/auth"
	"github.com/sakif/bookie/internal/handler"
	"github.com/sakif/bookie/internal/repository/sqldb"
	"github.com/sakif/bookie/internal/service"
)

// fixture runs the handlers over real services and an in-memory store.
// Routes are mounted on chi so URL params resolve, but without the auth
// middleware: tests that need a caller attach one with asUser.
type fixture struct {
	db     *sqldb.DB
	auth   *service.AuthService
	games  *service.GameService
	events *service.EventService
	router *chi.Mux
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := sqldb.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	tokens, err := auth.NewTokenService("handler-test-secret-0123456789", time.Hour)
	require.NoError(t, err)

	logger := zaptest.NewLogger(t)
	f := &fixture{db: db}
	f.auth = service.NewAuthService(db.Users(), db.Sessions(), tokens, auth.NewPasswordServiceForTest(), nil, logger)
	f.games = service.NewGameService(db.Games(), db.Results(), logger)
	f.events = service.NewEventService(db.Events(), db.Games(), logger)

	authH := handler.NewAuthHandler(f.auth, time.Hour, false, logger)
	gameH := handler.NewGameHandler(f.games)
	eventH := handler.NewEventHandler(f.events, f.games)

	r := chi.NewRouter()
	r.Post("/signup", authH.HandleSignup)
	r.Post("/login", authH.HandleLogin)
	r.Post("/logout", authH.HandleLogout)
	r.Get("/me", authH.HandleMe)
	r.Delete("/users/{email}", authH.HandleDeleteUser)
	r.Get("/games", gameH.HandleList)
	r.Get("/games/{league}/form", gameH.HandleForm)
	r.Post("/games/{league}/form", gameH.HandleCreate)
	r.Post("/results/form", gameH.HandleRecordResult)
	r.Get("/events", eventH.HandleList)
	r.Get("/events/form", eventH.HandleForm)
	r.Post("/events/form", eventH.HandleCreate)
	r.Delete("/events/{id}", eventH.HandleDelete)
	f.router = r
	return f
}

func (f *fixture) serve(req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)
	return rr
}

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, target, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func formRequest(method, target string, values url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func asUser(req *http.Request, id *auth.Identity) *http.Request {
	return req.WithContext(auth.WithIdentity(req.Context(), id))
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&v), "body: %s", rr.Body.String())
	return v
}
