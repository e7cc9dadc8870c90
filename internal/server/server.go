// Package server is the composition root: it builds the services and
// handlers on top of an open store and maps them to routes.
//
// DEPENDENCY INJECTION FLOW:
//
//	main: config → logger → metrics → sqldb.DB
//	New:  sqldb stores → services → handlers → chi router
//
// The store is opened by main and passed in, never held in a global. The
// Server closes it at the end of Start.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/sakif/bookie/internal/auth"
	"github.com/sakif/bookie/internal/config"
	"github.com/sakif/bookie/internal/handler"
	"github.com/sakif/bookie/internal/metrics"
	"github.com/sakif/bookie/internal/middleware"
	"github.com/sakif/bookie/internal/model"
	"github.com/sakif/bookie/internal/repository/sqldb"
	"github.com/sakif/bookie/internal/service"
)

type Server struct {
	router  *chi.Mux
	config  config.Config
	logger  *zap.Logger
	metrics *metrics.Metrics
	db      *sqldb.DB
}

// New wires every layer on top of db. metrics may be nil.
func New(cfg config.Config, db *sqldb.DB, logger *zap.Logger, m *metrics.Metrics) (*Server, error) {
	tokens, err := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}

	s := &Server{
		router:  chi.NewRouter(),
		config:  cfg,
		logger:  logger,
		metrics: m,
		db:      db,
	}

	authService := service.NewAuthService(
		db.Users(), db.Sessions(), tokens,
		auth.NewPasswordService(cfg.BcryptCost), m,
		logger.Named("auth"),
	)
	gameService := service.NewGameService(db.Games(), db.Results(), logger.Named("game"))
	eventService := service.NewEventService(db.Events(), db.Games(), logger.Named("event"))

	s.setupRoutes(
		authService,
		handler.NewAuthHandler(authService, cfg.TokenTTL, cfg.Env == "production", logger.Named("http")),
		handler.NewGameHandler(gameService),
		handler.NewEventHandler(eventService, gameService),
		handler.NewHealthHandler(db),
	)
	return s, nil
}

// Router exposes the handler tree, mainly for tests.
func (s *Server) Router() http.Handler { return s.router }

// setupRoutes configures all middleware and route handlers.
//
// ROUTE STRUCTURE:
//
//	GET    /healthz              → store ping
//	GET    /metrics              → Prometheus
//	POST   /signup, /login       → public
//	GET    /games, /events, ...  → public reads
//	POST   /logout, GET /me      → any logged-in user
//	POST   .../form, DELETE ...  → Bookie only
//
// MIDDLEWARE ORDER MATTERS: RequestID runs first so the logger can print
// it, and Recoverer sits inside the logger so a panic is logged as a 500.
func (s *Server) setupRoutes(
	resolver auth.Resolver,
	authHandler *handler.AuthHandler,
	gameHandler *handler.GameHandler,
	eventHandler *handler.EventHandler,
	healthHandler *handler.HealthHandler,
) {
	r := s.router

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(s.logger.Named("http"), s.metrics))
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.config.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", healthHandler.HandleHealth)
	r.Handle("/metrics", s.metrics.Handler())

	r.Post("/signup", authHandler.HandleSignup)
	r.Post("/login", authHandler.HandleLogin)

	r.Get("/games", gameHandler.HandleList)
	r.Get("/games/{league}/form", gameHandler.HandleForm)
	r.Get("/events", eventHandler.HandleList)
	r.Get("/events/form", eventHandler.HandleForm)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(resolver))

		r.Post("/logout", authHandler.HandleLogout)
		r.Get("/me", authHandler.HandleMe)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireRole(model.RoleBookie))

			r.Post("/games/{league}/form", gameHandler.HandleCreate)
			r.Post("/results/form", gameHandler.HandleRecordResult)
			r.Post("/events/form", eventHandler.HandleCreate)
			r.Delete("/events/{id}", eventHandler.HandleDelete)
			r.Delete("/users/{email}", authHandler.HandleDeleteUser)
		})
	})
}

// Start serves HTTP until SIGINT or SIGTERM, then drains in-flight
// requests for up to 30 seconds and closes the store.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         s.config.Addr(),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("server starting",
			zap.String("addr", srv.Addr),
			zap.String("database", s.db.Driver()),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", zap.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
