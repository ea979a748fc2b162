// Package apiclient is the dashboard's HTTP adapter for the remote Mohandz
// REST backend. It owns base-URL prefixing, bearer-token injection, the
// {success, data, message, pagination} response envelope, and the mapping of
// transport outcomes onto the error taxonomy the handlers work with.
//
// The backend is an external collaborator: all persistence, business rules,
// and authorization live there. This package only moves requests and
// envelopes across the wire.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultTimeout bounds a single backend round trip. There is no retry
	// policy: a failure is surfaced once and the user retries via the UI.
	DefaultTimeout = 15 * time.Second

	publicPath = "/api"
	adminPath  = "/api/admin"
)

// Client talks to the Mohandz backend. The zero value is not usable; build
// one with New. A Client is shared across requests; bind it to the caller's
// bearer token with WithToken before issuing authenticated calls.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger

	// token is the bearer credential for this binding ("" = anonymous).
	token string
}

// New builds a Client for the backend at baseURL (scheme://host[:port],
// without the /api suffix).
func New(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     logger,
	}
}

// WithToken returns a shallow copy of c bound to the given bearer token.
// The underlying transport is shared.
func (c *Client) WithToken(token string) *Client {
	bound := *c
	bound.token = token
	return &bound
}

// BaseURL reports the configured backend origin.
func (c *Client) BaseURL() string { return c.baseURL }

// adminURL joins an admin-scoped endpoint path with optional query values.
func (c *Client) adminURL(path string, q url.Values) string {
	return c.buildURL(adminPath, path, q)
}

// publicURL joins a public endpoint path with optional query values.
func (c *Client) publicURL(path string, q url.Values) string {
	return c.buildURL(publicPath, path, q)
}

func (c *Client) buildURL(prefix, path string, q url.Values) string {
	u := c.baseURL + prefix + "/" + strings.TrimLeft(path, "/")
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return u
}

// Do issues a JSON request and decodes the response envelope.
//
// Outcomes map onto the error taxonomy as follows:
//   - 401                      → ErrUnauthenticated (never an *APIError)
//   - 404                      → ErrNotFound
//   - other non-2xx, or a 2xx envelope with success=false
//     → *APIError carrying the backend message
//   - transport/decode failure → wrapped connectivity error
func (c *Client) Do(ctx context.Context, method, rawURL string, body any) (*Envelope, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req)
}

// send applies auth headers, executes the request, and decodes the envelope.
func (c *Client) send(req *http.Request) (*Envelope, error) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("backend request failed",
			zap.String("method", req.Method),
			zap.String("url", req.URL.Path),
			zap.Error(err))
		return nil, fmt.Errorf("backend request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, ErrUnauthenticated
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	}

	var env Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if resp.StatusCode >= 400 {
			// Non-JSON error body (proxy page, plain text). Surface the
			// status with the generic message rather than the raw body.
			return nil, &APIError{Status: resp.StatusCode, Message: ""}
		}
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if resp.StatusCode >= 400 || !env.Success {
		c.log.Info("backend rejected request",
			zap.String("method", req.Method),
			zap.String("url", req.URL.Path),
			zap.Int("status", resp.StatusCode),
			zap.Duration("elapsed", time.Since(start)))
		return nil, &APIError{Status: resp.StatusCode, Message: env.Message}
	}

	return &env, nil
}

// decodeData unmarshals an envelope's data payload into out.
func decodeData(env *Envelope, out any) error {
	if len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode response data: %w", err)
	}
	return nil
}
