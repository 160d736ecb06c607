// Copyright (c) 2026 Bitacora. All rights reserved.
// Author: o.sanchez.dev@gmail.com

// Bitacora API server entry point.
//
// Boot sequence: configuration, stores, domain wiring, session restore,
// then HTTP traffic. The session restore runs concurrently with startup;
// the route guards answer with a retryable placeholder until it resolves.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osanchez/bitacora/internal/account"
	"github.com/osanchez/bitacora/internal/api"
	"github.com/osanchez/bitacora/internal/auth"
	"github.com/osanchez/bitacora/internal/platform/config"
	"github.com/osanchez/bitacora/internal/platform/constants"
	"github.com/osanchez/bitacora/internal/platform/keyval"
	"github.com/osanchez/bitacora/internal/platform/migration"
	"github.com/osanchez/bitacora/internal/platform/postgres"
	"github.com/osanchez/bitacora/internal/platform/redis"
	"github.com/osanchez/bitacora/internal/platform/sec"
	"github.com/osanchez/bitacora/internal/posts"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	// ── 1. Logger and configuration ────────────────────────────────────
	logger := newLogger()
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	appCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── 2. Backing stores ──────────────────────────────────────────────
	redisClient, err := redis.NewClient(appCtx, cfg.RedisURL, logger)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	store := keyval.NewRedisStore(redisClient)

	var pool *pgxpool.Pool
	var directory auth.Directory
	if cfg.HasDatabase() {
		if err := migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, logger); err != nil {
			return err
		}

		pool, err = postgres.NewPool(appCtx, cfg.DatabaseURL, logger)
		if err != nil {
			return err
		}
		defer pool.Close()

		directory = auth.NewPostgresDirectory(pool)
	} else {
		directory = auth.NewKeyvalDirectory(store)
	}

	// ── 3. Domain wiring ───────────────────────────────────────────────
	tokens, err := sec.NewTokenService(cfg.SessionSecret, constants.AuthIssuer)
	if err != nil {
		return err
	}

	latency := auth.LatencyProfile{}
	if cfg.SimulatedLatency {
		latency = auth.DefaultLatencyProfile()
	}

	backend := auth.NewService(directory, store, tokens, latency, logger)
	manager := auth.NewManager(backend, logger)
	accountService := account.NewService(directory, manager, logger)

	postClient := posts.NewClient(cfg.PostsBaseURL, cfg.PostsFaultRate, logger)
	postService := posts.NewService(postClient, logger)

	// ── 4. Session restore ─────────────────────────────────────────────
	// Runs concurrently: the guards hold requests in the loading state
	// until the persisted pair has been examined.
	go manager.CheckAuth(appCtx)

	// ── 5. HTTP server with graceful shutdown ──────────────────────────
	server := api.NewServer(appCtx, api.Dependencies{
		Config:      cfg,
		Logger:      logger,
		Redis:       redisClient,
		Pool:        pool,
		AuthManager: manager,
		Account:     accountService,
		Posts:       postService,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-appCtx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}

// newLogger builds the process-wide structured logger. JSON output keeps
// log lines machine-ingestible in every environment.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if os.Getenv("DEBUG") == "true" {
		level = slog.LevelDebug
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("app", constants.AppName))
}
