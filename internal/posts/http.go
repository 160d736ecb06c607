// Copyright (c) 2026 Bitacora. All rights reserved.
// Author: o.sanchez.dev@gmail.com

package posts

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/osanchez/bitacora/internal/platform/constants"
	"github.com/osanchez/bitacora/internal/platform/respond"
	"github.com/osanchez/bitacora/pkg/pagination"

	requestutil "github.com/osanchez/bitacora/internal/platform/request"
)

// Handler exposes the blog feed endpoints over HTTP.
//
// The feed is the authenticated landing content, so the whole subtree sits
// behind the protected guard.
type Handler struct {
	service *Service
}

// NewHandler creates the feed HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes mounts the feed endpoints behind the protected guard.
func (h *Handler) Routes(protected func(http.Handler) http.Handler) chi.Router {
	router := chi.NewRouter()
	router.Use(protected)

	router.Get("/", h.handleList)
	router.Get("/{id}", h.handleGet)
	router.Get("/{id}/comments", h.handleComments)
	router.Get("/{id}/author", h.handleAuthor)

	return router
}

// handleList returns one formatted page of the feed.
//
//	GET /api/v1/posts?page=1&limit=10
func (h *Handler) handleList(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	page, total, err := h.service.Posts(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Mirror the upstream convention so API consumers can page without
	// parsing the envelope metadata.
	writer.Header().Set(constants.HeaderXTotalCount, strconv.Itoa(total))
	respond.Paginated(writer, page, pagination.NewMeta(params.Page, params.Limit, total))
}

// handleGet returns one formatted post.
//
//	GET /api/v1/posts/{id}
func (h *Handler) handleGet(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	post, err := h.service.PostByID(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, post)
}

// handleComments returns the comments of a post.
//
//	GET /api/v1/posts/{id}/comments
func (h *Handler) handleComments(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	comments, err := h.service.PostComments(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comments)
}

// handleAuthor resolves the account that wrote a post.
//
//	GET /api/v1/posts/{id}/author
func (h *Handler) handleAuthor(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	post, err := h.service.PostByID(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	author, err := h.service.Author(request.Context(), post.UserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, author)
}
