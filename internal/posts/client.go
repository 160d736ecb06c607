// Copyright (c) 2026 Bitacora. All rights reserved.
// Author: o.sanchez.dev@gmail.com

package posts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/osanchez/bitacora/internal/platform/apperr"
)

// cacheBusterParam is the query parameter carrying the request timestamp,
// defeating any intermediary cache between us and the feed.
const cacheBusterParam = "_t"

// Transport decorates an [http.RoundTripper] with the two feed interceptors:
// a cache-busting timestamp on the way out and a synthetic-failure roll on
// the way back.
//
// # Fault Injection
//
// Rate is the probability in [0, 1] that a request fails with a synthetic
// unavailability error. The roll happens before the real round trip, so a
// faulted request never reaches the upstream.
type Transport struct {
	// Next performs the real round trip. Defaults to [http.DefaultTransport].
	Next http.RoundTripper

	// Rate is the synthetic failure probability.
	Rate float64

	// Roll draws a uniform number in [0, 1). Defaults to [rand.Float64].
	// Injectable for deterministic tests.
	Roll func() float64

	// Now supplies the cache-buster timestamp. Defaults to [time.Now].
	Now func() time.Time
}

// RoundTrip implements [http.RoundTripper].
func (t *Transport) RoundTrip(request *http.Request) (*http.Response, error) {
	next := t.Next
	if next == nil {
		next = http.DefaultTransport
	}
	roll := t.Roll
	if roll == nil {
		roll = rand.Float64
	}
	now := t.Now
	if now == nil {
		now = time.Now
	}

	if t.Rate > 0 && roll() < t.Rate {
		return nil, apperr.Unavailable("Simulated server error", nil)
	}

	// Outgoing requests must not be mutated; work on a clone.
	cloned := request.Clone(request.Context())
	query := cloned.URL.Query()
	query.Set(cacheBusterParam, strconv.FormatInt(now().UnixMilli(), 10))
	cloned.URL.RawQuery = query.Encode()

	return next.RoundTrip(cloned)
}

// Client is the intercepted HTTP client of the blog feed.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// NewClient creates a feed client against the given base URL with the given
// synthetic failure rate.
func NewClient(baseURL string, faultRate float64, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Transport: &Transport{Rate: faultRate},
			Timeout:   10 * time.Second,
		},
		logger: logger,
	}
}

// getJSON performs a GET against the feed and decodes the JSON body.
//
// resource names the entity for 404 mapping. The returned header carries
// upstream metadata such as the total count.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, resource string, target interface{}) (http.Header, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("feed_request_build_failed: %w", err))
	}

	response, err := c.http.Do(request)
	if err != nil {
		return nil, normalizeTransportError(err)
	}
	defer response.Body.Close()

	switch {
	case response.StatusCode == http.StatusNotFound:
		return nil, apperr.NotFound(resource)
	case response.StatusCode < 200 || response.StatusCode > 299:
		c.logger.WarnContext(ctx, "feed upstream error",
			slog.Int("status", response.StatusCode),
			slog.String("path", path),
		)
		return nil, apperr.Unavailable("Upstream error",
			fmt.Errorf("feed_status_%d: %s", response.StatusCode, path))
	}

	if err := json.NewDecoder(response.Body).Decode(target); err != nil {
		return nil, apperr.Internal(fmt.Errorf("feed_decode_failed: %w", err))
	}

	return response.Header, nil
}

// normalizeTransportError folds every transport failure into the retryable
// taxonomy: synthetic faults keep their identity, timeouts and connection
// failures become generic unavailability.
func normalizeTransportError(err error) error {
	if appErr := apperr.As(err); appErr != nil {
		// Synthetic fault surfaced through the url.Error wrapper.
		return appErr
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return apperr.Unavailable("Upstream timeout", err)
	}
	return apperr.Unavailable("Upstream unreachable", err)
}
