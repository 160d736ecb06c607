// Copyright (c) 2026 Bitacora. All rights reserved.
// Author: o.sanchez.dev@gmail.com

package posts_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osanchez/bitacora/internal/posts"
	"github.com/osanchez/bitacora/pkg/pagination"
)

func newFeedService(t *testing.T, handler http.HandlerFunc) *posts.Service {
	t.Helper()

	upstream := httptest.NewServer(handler)
	t.Cleanup(upstream.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := posts.NewClient(upstream.URL, 0, logger)
	return posts.NewService(client, logger)
}

func TestPostsForwardsPaginationUpstream(t *testing.T) {
	var seenPage, seenLimit string
	service := newFeedService(t, func(writer http.ResponseWriter, request *http.Request) {
		seenPage = request.URL.Query().Get("_page")
		seenLimit = request.URL.Query().Get("_limit")
		writer.Header().Set("X-Total-Count", "57")
		writer.Write([]byte(`[{"userId":1,"id":1,"title":"Título Uno","body":"cuerpo uno"}]`))
	})

	page, total, err := service.Posts(context.Background(), pagination.Params{Page: 3, Limit: 10})
	require.NoError(t, err)

	assert.Equal(t, "3", seenPage)
	assert.Equal(t, "10", seenLimit)
	assert.Equal(t, 57, total)
	require.Len(t, page, 1)
	assert.Equal(t, "titulo-uno", page[0].Slug)
	assert.Equal(t, 1, page[0].UserID, "upstream camelCase must map onto the API entity")
}

func TestPostsAssumesDefaultTotalWhenHeaderMissing(t *testing.T) {
	service := newFeedService(t, func(writer http.ResponseWriter, _ *http.Request) {
		writer.Write([]byte(`[]`))
	})

	_, total, err := service.Posts(context.Background(), pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)

	assert.Equal(t, 100, total)
}

func TestPostByID(t *testing.T) {
	service := newFeedService(t, func(writer http.ResponseWriter, _ *http.Request) {
		writer.Write([]byte(`{"userId":7,"id":42,"title":"La Cuarenta y Dos","body":"contenido"}`))
	})

	post, err := service.PostByID(context.Background(), 42)
	require.NoError(t, err)

	assert.Equal(t, 42, post.ID)
	assert.Equal(t, 7, post.UserID)
	assert.Equal(t, "la-cuarenta-y-dos", post.Slug)
	assert.Equal(t, 1, post.ReadTimeMinutes)
}

func TestPostComments(t *testing.T) {
	service := newFeedService(t, func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/posts/5/comments", request.URL.Path)
		writer.Write([]byte(`[{"postId":5,"id":9,"name":"Ana","email":"ana@ejemplo.com","body":"buen post"}]`))
	})

	comments, err := service.PostComments(context.Background(), 5)
	require.NoError(t, err)

	require.Len(t, comments, 1)
	assert.Equal(t, 5, comments[0].PostID)
	assert.Equal(t, "Ana", comments[0].Name)
}

func TestAuthor(t *testing.T) {
	service := newFeedService(t, func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/users/7", request.URL.Path)
		writer.Write([]byte(`{"id":7,"name":"Leanne Graham","username":"Bret","email":"bret@ejemplo.com"}`))
	})

	author, err := service.Author(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, "Leanne Graham", author.Name)
	assert.Equal(t, "Bret", author.UserName)
}
