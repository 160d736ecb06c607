// Copyright (c) 2026 Bitacora. All rights reserved.
// Author: o.sanchez.dev@gmail.com

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osanchez/bitacora/internal/platform/respond"
	"github.com/osanchez/bitacora/internal/platform/validate"

	requestutil "github.com/osanchez/bitacora/internal/platform/request"
)

// Handler exposes the profile endpoints over HTTP.
type Handler struct {
	service *Service
}

// NewHandler creates the account HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// updateRequest is the JSON payload of the profile update endpoint.
type updateRequest struct {
	Name             string `json:"name"`
	PaternalLastname string `json:"paternal_lastname"`
	MaternalLastname string `json:"maternal_lastname"`
	Phone            string `json:"phone"`
	Country          string `json:"country"`
}

// Routes mounts the profile endpoints behind the protected guard.
func (h *Handler) Routes(protected func(http.Handler) http.Handler) chi.Router {
	router := chi.NewRouter()
	router.Use(protected)

	router.Get("/", h.handleProfile)
	router.Put("/", h.handleUpdate)

	return router
}

// handleProfile returns the current member's profile.
//
//	GET /api/v1/profile
func (h *Handler) handleProfile(writer http.ResponseWriter, request *http.Request) {
	user, err := h.service.Profile(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, user)
}

// handleUpdate applies profile edits.
//
//	PUT /api/v1/profile
func (h *Handler) handleUpdate(writer http.ResponseWriter, request *http.Request) {
	var payload updateRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.
		Required("name", payload.Name).
		MaxLen("name", payload.Name, 100).
		Required("paternal_lastname", payload.PaternalLastname).
		MaxLen("phone", payload.Phone, 30)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := h.service.UpdateProfile(request.Context(), UpdateInput{
		Name:             payload.Name,
		PaternalLastname: payload.PaternalLastname,
		MaternalLastname: payload.MaternalLastname,
		Phone:            payload.Phone,
		Country:          payload.Country,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}
