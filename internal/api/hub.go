// Copyright (c) 2026 Bitacora. All rights reserved.
// Author: o.sanchez.dev@gmail.com

package api

import (
	"log/slog"
	"net/http"

	"github.com/osanchez/bitacora/internal/account"
	"github.com/osanchez/bitacora/internal/auth"
	"github.com/osanchez/bitacora/internal/platform/respond"
	"github.com/osanchez/bitacora/internal/posts"
	"github.com/osanchez/bitacora/pkg/pagination"
)

// hubRecentPosts is how many feed entries the dashboard shows.
const hubRecentPosts = 5

// hubResponse is the member dashboard payload: the profile next to the
// newest slice of the feed.
//
// The feed is deliberately unreliable, so a feed failure degrades the hub
// instead of failing it: posts come back empty with the failure message in
// feed_error.
type hubResponse struct {
	User        *auth.User            `json:"user"`
	RecentPosts []posts.FormattedPost `json:"recent_posts"`
	FeedError   string                `json:"feed_error,omitempty"`
}

type hubHandler struct {
	account *account.Service
	posts   *posts.Service
	logger  *slog.Logger
}

func newHubHandler(accountService *account.Service, postsService *posts.Service, logger *slog.Logger) *hubHandler {
	return &hubHandler{account: accountService, posts: postsService, logger: logger}
}

// handleHub returns the member dashboard.
//
//	GET /api/v1/hub
func (h *hubHandler) handleHub(writer http.ResponseWriter, request *http.Request) {
	user, err := h.account.Profile(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	response := hubResponse{
		User:        user,
		RecentPosts: []posts.FormattedPost{},
	}

	page, _, err := h.posts.Posts(request.Context(), pagination.Params{Page: 1, Limit: hubRecentPosts})
	if err != nil {
		h.logger.WarnContext(request.Context(), "hub feed degraded", slog.String("error", err.Error()))
		response.FeedError = err.Error()
	} else {
		response.RecentPosts = page
	}

	respond.OK(writer, response)
}
