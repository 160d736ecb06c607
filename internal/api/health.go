// Copyright (c) 2026 Bitacora. All rights reserved.
// Author: o.sanchez.dev@gmail.com

package api

import (
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	"github.com/osanchez/bitacora/internal/platform/constants"
	"github.com/osanchez/bitacora/internal/platform/postgres"
	"github.com/osanchez/bitacora/internal/platform/redis"
	"github.com/osanchez/bitacora/internal/platform/respond"
)

// healthHandler serves the operational probes.
type healthHandler struct {
	redis *goredis.Client
	pool  *pgxpool.Pool
}

func newHealthHandler(redisClient *goredis.Client, pool *pgxpool.Pool) *healthHandler {
	return &healthHandler{redis: redisClient, pool: pool}
}

// handleLiveness reports that the process is up.
//
//	GET /health
func (h *healthHandler) handleLiveness(writer http.ResponseWriter, request *http.Request) {
	respond.JSON(writer, http.StatusOK, map[string]string{
		constants.FieldStatus: "ok",
		"name":                constants.AppName,
		"version":             constants.AppVersion,
	})
}

// handleReadiness reports whether the backing stores answer.
//
//	GET /ready
func (h *healthHandler) handleReadiness(writer http.ResponseWriter, request *http.Request) {
	checks := map[string]string{}
	healthy := true

	if err := redis.Ping(request.Context(), h.redis); err != nil {
		checks["redis"] = err.Error()
		healthy = false
	} else {
		checks["redis"] = "ok"
	}

	if h.pool != nil {
		if err := postgres.Ping(request.Context(), h.pool); err != nil {
			checks["postgres"] = err.Error()
			healthy = false
		} else {
			checks["postgres"] = "ok"
		}
	}

	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
	}
	respond.JSON(writer, status, checks)
}
