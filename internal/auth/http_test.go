// Copyright (c) 2026 Bitacora. All rights reserved.
// Author: o.sanchez.dev@gmail.com

package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osanchez/bitacora/internal/auth"
	"github.com/osanchez/bitacora/internal/platform/constants"
	"github.com/osanchez/bitacora/internal/platform/middleware"
)

// newAuthRouter builds the auth routes behind real guards, with the session
// restore already settled.
func newAuthRouter(t *testing.T) (*chi.Mux, *auth.Manager) {
	t.Helper()

	manager, _ := newTestManager(t)
	manager.CheckAuth(context.Background())

	router := chi.NewRouter()
	router.Mount("/auth", auth.NewHandler(manager).Routes(
		middleware.Public(manager),
		middleware.Protected(manager),
	))
	return router, manager
}

func doJSON(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(method, path, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(recorder, request)
	return recorder
}

func TestLoginEndpoint(t *testing.T) {
	t.Run("valid credentials return the session", func(t *testing.T) {
		router, _ := newAuthRouter(t)

		recorder := doJSON(router, http.MethodPost, "/auth/login",
			`{"email":"juan@ejemplo.com","password":"password123"}`)

		require.Equal(t, http.StatusOK, recorder.Code)

		var envelope struct {
			Data auth.Session `json:"data"`
		}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
		assert.NotEmpty(t, envelope.Data.Token)
		assert.Equal(t, auth.SeedEmail, envelope.Data.User.Email)
		assert.NotContains(t, recorder.Body.String(), "password_hash",
			"the hash must never leave the API")
	})

	t.Run("wrong password returns 401 with the shared message", func(t *testing.T) {
		router, manager := newAuthRouter(t)

		recorder := doJSON(router, http.MethodPost, "/auth/login",
			`{"email":"juan@ejemplo.com","password":"wrong"}`)

		require.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "Invalid credentials")
		assert.Equal(t, "Invalid credentials", manager.Snapshot().Error,
			"the failure must also land in the state")
	})

	t.Run("missing fields return 400 with details", func(t *testing.T) {
		router, _ := newAuthRouter(t)

		recorder := doJSON(router, http.MethodPost, "/auth/login", `{"email":"","password":""}`)

		require.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "VALIDATION_ERROR")
	})

	t.Run("established session redirects to the landing page", func(t *testing.T) {
		router, manager := newAuthRouter(t)

		_, err := manager.Login(context.Background(), seedCredentials())
		require.NoError(t, err)

		recorder := doJSON(router, http.MethodPost, "/auth/login",
			`{"email":"juan@ejemplo.com","password":"password123"}`)

		require.Equal(t, http.StatusFound, recorder.Code)
		assert.Equal(t, constants.RouteLanding, recorder.Header().Get("Location"))
	})
}

func TestRegisterEndpoint(t *testing.T) {
	router, manager := newAuthRouter(t)

	recorder := doJSON(router, http.MethodPost, "/auth/register", `{
		"name": "Ana",
		"paternal_lastname": "Lopez",
		"email": "ana@ejemplo.com",
		"user_name": "analopez",
		"password": "secreto99"
	}`)

	require.Equal(t, http.StatusCreated, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "User registered successfully")
	assert.True(t, manager.IsAuthenticated(), "registration is an auto-login")
}

func TestLogoutEndpoint(t *testing.T) {
	t.Run("without a session redirects to login", func(t *testing.T) {
		router, _ := newAuthRouter(t)

		recorder := doJSON(router, http.MethodPost, "/auth/logout", "")

		require.Equal(t, http.StatusFound, recorder.Code)
		assert.Equal(t, constants.RouteLogin, recorder.Header().Get("Location"))
	})

	t.Run("with a session clears it", func(t *testing.T) {
		router, manager := newAuthRouter(t)

		_, err := manager.Login(context.Background(), seedCredentials())
		require.NoError(t, err)

		recorder := doJSON(router, http.MethodPost, "/auth/logout", "")

		require.Equal(t, http.StatusNoContent, recorder.Code)
		assert.False(t, manager.IsAuthenticated())
	})
}

func TestSessionEndpoints(t *testing.T) {
	router, manager := newAuthRouter(t)

	t.Run("snapshot reflects the machine", func(t *testing.T) {
		recorder := doJSON(router, http.MethodGet, "/auth/session", "")

		require.Equal(t, http.StatusOK, recorder.Code)

		var envelope struct {
			Data auth.State `json:"data"`
		}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
		assert.False(t, envelope.Data.Loading)
		assert.False(t, envelope.Data.IsAuthenticated)
	})

	t.Run("clear error drops a lingering failure", func(t *testing.T) {
		_, _ = manager.Login(context.Background(), auth.Credentials{Email: auth.SeedEmail, Password: "wrong"})
		require.NotEmpty(t, manager.Snapshot().Error)

		recorder := doJSON(router, http.MethodDelete, "/auth/session/error", "")

		require.Equal(t, http.StatusNoContent, recorder.Code)
		assert.Empty(t, manager.Snapshot().Error)
	})
}

func TestGuardHoldsWhileLoading(t *testing.T) {
	manager, _ := newTestManager(t)
	// No CheckAuth: the machine is still in its boot loading state.

	router := chi.NewRouter()
	router.Mount("/auth", auth.NewHandler(manager).Routes(
		middleware.Public(manager),
		middleware.Protected(manager),
	))

	recorder := doJSON(router, http.MethodPost, "/auth/login",
		`{"email":"juan@ejemplo.com","password":"password123"}`)

	require.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	assert.Equal(t, "1", recorder.Header().Get(constants.HeaderRetryAfter))
}
