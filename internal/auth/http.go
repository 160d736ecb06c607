// Copyright (c) 2026 Bitacora. All rights reserved.
// Author: o.sanchez.dev@gmail.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osanchez/bitacora/internal/platform/respond"
	"github.com/osanchez/bitacora/internal/platform/validate"

	requestutil "github.com/osanchez/bitacora/internal/platform/request"
)

// Handler exposes the auth state machine over HTTP.
type Handler struct {
	manager *Manager
}

// NewHandler creates the auth HTTP handler.
func NewHandler(manager *Manager) *Handler {
	return &Handler{manager: manager}
}

// registerRequest is the JSON payload of the registration endpoint.
type registerRequest struct {
	Name             string `json:"name"`
	PaternalLastname string `json:"paternal_lastname"`
	MaternalLastname string `json:"maternal_lastname"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	UserName         string `json:"user_name"`
	Password         string `json:"password"`
	DocumentNumber   string `json:"document_number"`
	Country          string `json:"country"`
}

// Routes mounts the auth endpoints.
//
// The guard split mirrors the route map: entry points (login, register) sit
// behind the public guard, exit points behind the protected guard, and the
// session snapshot is open so any caller can observe the machine.
func (h *Handler) Routes(public, protected func(http.Handler) http.Handler) chi.Router {
	router := chi.NewRouter()

	router.Group(func(r chi.Router) {
		r.Use(public)
		r.Post("/login", h.handleLogin)
		r.Post("/register", h.handleRegister)
	})

	router.Group(func(r chi.Router) {
		r.Use(protected)
		r.Post("/logout", h.handleLogout)
	})

	router.Get("/session", h.handleSession)
	router.Delete("/session/error", h.handleClearError)

	return router
}

// handleLogin authenticates credentials and establishes the session.
//
//	POST /api/v1/auth/login
func (h *Handler) handleLogin(writer http.ResponseWriter, request *http.Request) {
	var creds Credentials
	if err := requestutil.DecodeJSON(request, &creds); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.
		Required("email", creds.Email).
		Required("password", creds.Password)
	if !validator.HasErrors() {
		validator.Email("email", creds.Email)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := h.manager.Login(request.Context(), creds)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, session)
}

// handleRegister enrolls a new member and establishes the session.
//
//	POST /api/v1/auth/register
func (h *Handler) handleRegister(writer http.ResponseWriter, request *http.Request) {
	var payload registerRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.
		Required("name", payload.Name).
		MaxLen("name", payload.Name, 100).
		Required("paternal_lastname", payload.PaternalLastname).
		Required("email", payload.Email).
		Required("user_name", payload.UserName).
		MinLen("user_name", payload.UserName, 3).
		Username("user_name", payload.UserName).
		Required("password", payload.Password).
		MinLen("password", payload.Password, 6)
	if payload.Email != "" {
		validator.Email("email", payload.Email)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := h.manager.Register(request.Context(), RegisterInput{
		Name:             payload.Name,
		PaternalLastname: payload.PaternalLastname,
		MaternalLastname: payload.MaternalLastname,
		Email:            payload.Email,
		Phone:            payload.Phone,
		UserName:         payload.UserName,
		Password:         payload.Password,
		DocumentNumber:   payload.DocumentNumber,
		Country:          payload.Country,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, result)
}

// handleLogout clears the session.
//
//	POST /api/v1/auth/logout
func (h *Handler) handleLogout(writer http.ResponseWriter, request *http.Request) {
	h.manager.Logout(request.Context())
	respond.NoContent(writer)
}

// handleSession returns a snapshot of the auth state machine.
//
//	GET /api/v1/auth/session
func (h *Handler) handleSession(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, h.manager.Snapshot())
}

// handleClearError drops a lingering error from the auth state.
//
//	DELETE /api/v1/auth/session/error
func (h *Handler) handleClearError(writer http.ResponseWriter, request *http.Request) {
	h.manager.ClearError()
	respond.NoContent(writer)
}
