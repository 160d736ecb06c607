// Copyright (c) 2026 Bitacora. All rights reserved.
// Author: o.sanchez.dev@gmail.com

// Package api assembles the Bitacora HTTP server: the middleware chain, the
// route guards, and the mounted domain handlers.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	"github.com/osanchez/bitacora/internal/account"
	"github.com/osanchez/bitacora/internal/auth"
	"github.com/osanchez/bitacora/internal/platform/config"
	"github.com/osanchez/bitacora/internal/platform/constants"
	"github.com/osanchez/bitacora/internal/platform/middleware"
	"github.com/osanchez/bitacora/internal/posts"
)

// Dependencies carries everything the server composition needs. Pool is nil
// unless the optional Postgres directory backend is configured.
type Dependencies struct {
	Config      *config.Config
	Logger      *slog.Logger
	Redis       *goredis.Client
	Pool        *pgxpool.Pool
	AuthManager *auth.Manager
	Account     *account.Service
	Posts       *posts.Service
}

// Server is the Bitacora HTTP server.
type Server struct {
	config     *config.Config
	logger     *slog.Logger
	httpServer *http.Server
}

// NewServer wires the middleware chain and the route map.
//
// appCtx bounds the lifetime of background middleware goroutines (rate-limit
// cleanup); cancel it on shutdown.
func NewServer(appCtx context.Context, deps Dependencies) *Server {
	router := chi.NewRouter()

	// ── 1. Cross-cutting middleware chain ──────────────────────────────
	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogger(deps.Logger))
	router.Use(middleware.PanicRecovery(deps.Logger))
	router.Use(middleware.CORS(deps.Config))
	router.Use(middleware.RateLimit(appCtx))
	router.Use(chimiddleware.Timeout(constants.GlobalRequestTimeout))

	// ── 2. Route guards ────────────────────────────────────────────────
	// Both guards observe the single process-wide auth state machine.
	protected := middleware.Protected(deps.AuthManager)
	public := middleware.Public(deps.AuthManager)

	// ── 3. Operational probes ──────────────────────────────────────────
	health := newHealthHandler(deps.Redis, deps.Pool)
	router.Get("/health", health.handleLiveness)
	router.Get("/ready", health.handleReadiness)

	// ── 4. Domain routes ───────────────────────────────────────────────
	authHandler := auth.NewHandler(deps.AuthManager)
	accountHandler := account.NewHandler(deps.Account)
	postsHandler := posts.NewHandler(deps.Posts)
	hub := newHubHandler(deps.Account, deps.Posts, deps.Logger)

	router.Route("/api/v1", func(r chi.Router) {
		r.Mount("/auth", authHandler.Routes(public, protected))
		r.Mount("/profile", accountHandler.Routes(protected))
		r.Mount("/posts", postsHandler.Routes(protected))

		r.Group(func(r chi.Router) {
			r.Use(protected)
			r.Get("/hub", hub.handleHub)
		})
	})

	return &Server{
		config: deps.Config,
		logger: deps.Logger,
		httpServer: &http.Server{
			Addr:              ":" + deps.Config.ServerPort,
			Handler:           router,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// Start begins serving HTTP traffic. It blocks until the server stops.
func (s *Server) Start() error {
	s.logger.Info("server starting",
		slog.String("addr", s.httpServer.Addr),
		slog.String("environment", s.config.Environment),
	)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server: listen failed: %w", err)
	}
	return nil
}

// Shutdown gracefully drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("server shutting down")
	return s.httpServer.Shutdown(ctx)
}
