// Copyright (c) 2026 Bitacora. All rights reserved.
// Author: o.sanchez.dev@gmail.com

package posts

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osanchez/bitacora/internal/platform/apperr"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestTransportAddsCacheBuster(t *testing.T) {
	var seen url.Values
	upstream := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		seen = request.URL.Query()
		writer.Write([]byte(`[]`))
	}))
	defer upstream.Close()

	fixed := time.UnixMilli(1700000000000)
	client := &http.Client{Transport: &Transport{
		Rate: 0, // No faults: this test is about the request interceptor.
		Now:  func() time.Time { return fixed },
	}}

	response, err := client.Get(upstream.URL + "/posts?_page=2")
	require.NoError(t, err)
	response.Body.Close()

	assert.Equal(t, "1700000000000", seen.Get(cacheBusterParam))
	assert.Equal(t, "2", seen.Get("_page"), "existing query parameters must survive")
}

func TestTransportDoesNotMutateOriginalRequest(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.Write([]byte(`[]`))
	}))
	defer upstream.Close()

	request, err := http.NewRequest(http.MethodGet, upstream.URL+"/posts", nil)
	require.NoError(t, err)

	client := &http.Client{Transport: &Transport{Rate: 0}}
	response, err := client.Do(request)
	require.NoError(t, err)
	response.Body.Close()

	assert.NotContains(t, request.URL.RawQuery, cacheBusterParam)
}

func TestTransportInjectsSyntheticFaults(t *testing.T) {
	var hits int
	upstream := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		hits++
		writer.Write([]byte(`[]`))
	}))
	defer upstream.Close()

	t.Run("roll below the rate fails before the upstream is reached", func(t *testing.T) {
		client := &http.Client{Transport: &Transport{
			Rate: 0.2,
			Roll: func() float64 { return 0.1 },
		}}

		_, err := client.Get(upstream.URL + "/posts")
		require.Error(t, err)

		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, "SERVICE_UNAVAILABLE", appErr.Code)
		assert.Equal(t, "Simulated server error", appErr.Message)
		assert.Zero(t, hits, "a faulted request must not hit the upstream")
	})

	t.Run("roll above the rate passes", func(t *testing.T) {
		client := &http.Client{Transport: &Transport{
			Rate: 0.2,
			Roll: func() float64 { return 0.9 },
		}}

		response, err := client.Get(upstream.URL + "/posts")
		require.NoError(t, err)
		response.Body.Close()
	})
}

func TestTransportFaultRateConverges(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.Write([]byte(`[]`))
	}))
	defer upstream.Close()

	source := rand.New(rand.NewPCG(7, 11))
	client := &http.Client{Transport: &Transport{
		Rate: 0.2,
		Roll: source.Float64,
	}}

	const attempts = 2000
	faults := 0
	for i := 0; i < attempts; i++ {
		response, err := client.Get(upstream.URL + "/posts")
		if err != nil {
			faults++
			continue
		}
		response.Body.Close()
	}

	ratio := float64(faults) / float64(attempts)
	assert.InDelta(t, 0.2, ratio, 0.05, "observed fault ratio %f", ratio)
}

func TestNormalizeTransportError(t *testing.T) {
	t.Run("synthetic fault keeps its identity", func(t *testing.T) {
		wrapped := &url.Error{Op: "Get", URL: "http://feed", Err: apperr.Unavailable("Simulated server error", nil)}

		err := normalizeTransportError(wrapped)

		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, "Simulated server error", appErr.Message)
	})

	t.Run("timeout becomes upstream timeout", func(t *testing.T) {
		wrapped := &url.Error{Op: "Get", URL: "http://feed", Err: timeoutError{}}

		err := normalizeTransportError(wrapped)

		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, "SERVICE_UNAVAILABLE", appErr.Code)
		assert.Equal(t, "Upstream timeout", appErr.Message)
	})

	t.Run("anything else becomes upstream unreachable", func(t *testing.T) {
		err := normalizeTransportError(errors.New("connection refused"))

		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, "SERVICE_UNAVAILABLE", appErr.Code)
		assert.Equal(t, "Upstream unreachable", appErr.Message)
	})
}

// timeoutError satisfies net.Error with Timeout() == true.
type timeoutError struct{}

func (timeoutError) Error() string   { return "deadline exceeded" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

func TestClientMapsUpstreamStatuses(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		switch request.URL.Path {
		case "/posts/1":
			writer.Write([]byte(`{"userId":1,"id":1,"title":"hola","body":"cuerpo"}`))
		case "/posts/999":
			writer.WriteHeader(http.StatusNotFound)
		default:
			writer.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer upstream.Close()

	client := NewClient(upstream.URL, 0, discardLogger())
	ctx := context.Background()

	t.Run("success decodes", func(t *testing.T) {
		var post upstreamPost
		_, err := client.getJSON(ctx, "/posts/1", nil, "Post", &post)
		require.NoError(t, err)
		assert.Equal(t, "hola", post.Title)
	})

	t.Run("404 maps to not found", func(t *testing.T) {
		var post upstreamPost
		_, err := client.getJSON(ctx, "/posts/999", nil, "Post", &post)

		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
		assert.Equal(t, "Post not found", appErr.Message)
	})

	t.Run("5xx maps to unavailable", func(t *testing.T) {
		var post upstreamPost
		_, err := client.getJSON(ctx, "/boom", nil, "Post", &post)

		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, "SERVICE_UNAVAILABLE", appErr.Code)
	})
}
