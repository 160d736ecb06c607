// Copyright (c) 2026 Bitacora. All rights reserved.
// Author: o.sanchez.dev@gmail.com

package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osanchez/bitacora/internal/platform/constants"
	"github.com/osanchez/bitacora/internal/platform/middleware"
)

func TestRateLimit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	limited := middleware.RateLimit(ctx)(okHandler())

	send := func(ip string) *httptest.ResponseRecorder {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/resource", nil)
		request.Header.Set(constants.HeaderXRealIP, ip)
		limited.ServeHTTP(recorder, request)
		return recorder
	}

	t.Run("a burst beyond the bucket is rejected", func(t *testing.T) {
		var rejected *httptest.ResponseRecorder
		for i := 0; i < constants.DefaultRateLimitBurst+50; i++ {
			if recorder := send("10.0.0.1"); recorder.Code == http.StatusTooManyRequests {
				rejected = recorder
				break
			}
		}

		require.NotNil(t, rejected, "the bucket must run dry within the burst window")
		assert.Contains(t, rejected.Body.String(), "RATE_LIMITED")
		assert.Contains(t, rejected.Body.String(), "Rate limit exceeded")
	})

	t.Run("clients are limited per IP", func(t *testing.T) {
		// The first IP exhausted its bucket above; a fresh IP starts full.
		recorder := send("10.0.0.2")
		assert.Equal(t, http.StatusOK, recorder.Code)
	})
}
