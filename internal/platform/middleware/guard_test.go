// Copyright (c) 2026 Bitacora. All rights reserved.
// Author: o.sanchez.dev@gmail.com

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osanchez/bitacora/internal/platform/constants"
	"github.com/osanchez/bitacora/internal/platform/middleware"
)

// fakeAuthState is a static [middleware.AuthState] for guard tests.
type fakeAuthState struct {
	loading       bool
	authenticated bool
}

func (s fakeAuthState) IsLoading() bool       { return s.loading }
func (s fakeAuthState) IsAuthenticated() bool { return s.authenticated }

func okHandler() http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusOK)
	})
}

func runGuard(guard func(http.Handler) http.Handler) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/resource", nil)
	guard(okHandler()).ServeHTTP(recorder, request)
	return recorder
}

func TestProtectedGuard(t *testing.T) {
	testCases := []struct {
		name             string
		state            fakeAuthState
		expectedStatus   int
		expectedLocation string
	}{
		{
			name:           "loading holds the request with a retryable placeholder",
			state:          fakeAuthState{loading: true},
			expectedStatus: http.StatusServiceUnavailable,
		},
		{
			name:             "unauthenticated redirects to login",
			state:            fakeAuthState{},
			expectedStatus:   http.StatusFound,
			expectedLocation: constants.RouteLogin,
		},
		{
			name:           "authenticated passes through",
			state:          fakeAuthState{authenticated: true},
			expectedStatus: http.StatusOK,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			recorder := runGuard(middleware.Protected(testCase.state))

			assert.Equal(t, testCase.expectedStatus, recorder.Code)
			if testCase.expectedLocation != "" {
				assert.Equal(t, testCase.expectedLocation, recorder.Header().Get("Location"))
			}
			if testCase.expectedStatus == http.StatusServiceUnavailable {
				assert.Equal(t, "1", recorder.Header().Get(constants.HeaderRetryAfter))
				assert.Contains(t, recorder.Body.String(), "STARTING")
			}
		})
	}
}

func TestPublicGuard(t *testing.T) {
	testCases := []struct {
		name             string
		state            fakeAuthState
		expectedStatus   int
		expectedLocation string
	}{
		{
			name:           "loading holds the request with a retryable placeholder",
			state:          fakeAuthState{loading: true},
			expectedStatus: http.StatusServiceUnavailable,
		},
		{
			name:             "authenticated redirects to the landing page",
			state:            fakeAuthState{authenticated: true},
			expectedStatus:   http.StatusFound,
			expectedLocation: constants.RouteLanding,
		},
		{
			name:           "unauthenticated passes through",
			state:          fakeAuthState{},
			expectedStatus: http.StatusOK,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			recorder := runGuard(middleware.Public(testCase.state))

			assert.Equal(t, testCase.expectedStatus, recorder.Code)
			if testCase.expectedLocation != "" {
				assert.Equal(t, testCase.expectedLocation, recorder.Header().Get("Location"))
			}
		})
	}
}
