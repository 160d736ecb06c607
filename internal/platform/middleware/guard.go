// Copyright (c) 2026 Bitacora. All rights reserved.
// Author: o.sanchez.dev@gmail.com

package middleware

import (
	"net/http"

	"github.com/osanchez/bitacora/internal/platform/constants"
)

// AuthState is the read-only view of the process-wide auth state machine
// that the route guards consult.
//
// # Why an interface?
//
// Defining AuthState here decouples the guards from the auth manager
// implementation, allowing a trivial fake in unit tests. Both guards must be
// wired to the SAME instance: there is exactly one auth state per process.
type AuthState interface {
	// IsLoading reports whether the startup session rehydration (or an
	// in-flight login/register) has not resolved yet.
	IsLoading() bool

	// IsAuthenticated reports whether a user session is established.
	IsAuthenticated() bool
}

// Protected gates routes that require an established session.
//
// # Flow
//  1. While the auth state is loading, render a neutral placeholder so the
//     client never sees a premature "logged out" view before the persisted
//     session has had a chance to rehydrate.
//  2. Once resolved: pass through if authenticated, else redirect to the
//     login entry point.
func Protected(state AuthState) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if state.IsLoading() {
				writeLoadingPlaceholder(writer)
				return
			}

			if !state.IsAuthenticated() {
				http.Redirect(writer, request, constants.RouteLogin, http.StatusFound)
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// Public gates the login/register entry points, symmetric to [Protected]:
// placeholder while loading, redirect to the authenticated landing page if a
// session is already established, pass through otherwise.
func Public(state AuthState) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if state.IsLoading() {
				writeLoadingPlaceholder(writer)
				return
			}

			if state.IsAuthenticated() {
				http.Redirect(writer, request, constants.RouteLanding, http.StatusFound)
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// writeLoadingPlaceholder is the HTTP analog of a loading spinner: the
// request is neither accepted nor rejected, the client should retry shortly.
func writeLoadingPlaceholder(writer http.ResponseWriter) {
	writer.Header().Set(constants.HeaderRetryAfter, "1")
	writeError(writer, http.StatusServiceUnavailable, "STARTING", "Session state is still loading")
}
