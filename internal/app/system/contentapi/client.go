// Package contentapi is the HTTP client for the backend content API that
// serves static pages, events, learning materials, and assessment state.
// The portal consumes these endpoints; it does not define them.
package contentapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Error taxonomy for collaborator responses. Handlers recover from both by
// falling back to empty collections and a user-visible placeholder; neither
// is ever allowed to crash a page.
var (
	// ErrNotFound is returned for a 404 from the content API.
	ErrNotFound = errors.New("contentapi: not found")
	// ErrUnavailable is returned for network failures and non-2xx
	// responses other than 404.
	ErrUnavailable = errors.New("contentapi: unavailable")
)

// maxResponseBytes bounds how much of a collaborator response we will read.
const maxResponseBytes = 4 << 20

// Client talks to the backend content API.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// New creates a content API client. baseURL is the API root without a
// trailing slash (e.g. https://api.example.com).
func New(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// GetJSON fetches path (plus optional query) and decodes the JSON response
// into out. token, when non-empty, is sent as a bearer token for the
// authenticated endpoints.
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values, token string, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("building request for %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("content API request failed",
			zap.String("path", path),
			zap.Error(err))
		return fmt.Errorf("%w: %s: %v", ErrUnavailable, path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		c.logger.Warn("content API returned error status",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode))
		return fmt.Errorf("%w: %s: status %d", ErrUnavailable, path, resp.StatusCode)
	}

	body := io.LimitReader(resp.Body, maxResponseBytes)
	if err := json.NewDecoder(body).Decode(out); err != nil {
		return fmt.Errorf("%w: %s: decoding response: %v", ErrUnavailable, path, err)
	}
	return nil
}

// Ping reports whether the content API is reachable. Any HTTP response,
// including an error status, counts as reachable; only transport failures
// do not.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<10))
	resp.Body.Close()
	return nil
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}
