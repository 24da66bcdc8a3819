// Package upstream talks to the external marketplace backend over HTTP and
// translates its JSON envelopes into domain values and errors.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/ruabo2004/totnghiep0kho-frontend/domain"
)

// Client is the shared HTTP plumbing for the auth and catalog gateways.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a backend client. Timeouts live here (the gateway's
// responsibility); they surface to callers as ordinary errors.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// envelope is the backend's standard response wrapper.
type envelope struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Data    json.RawMessage     `json:"data"`
	Errors  map[string][]string `json:"errors"`
}

func (c *Client) get(ctx context.Context, path string, query url.Values, token string, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, token, out, true)
}

// getRaw decodes the whole response body into out, for endpoints that put
// pagination metadata next to data instead of inside the envelope.
func (c *Client) getRaw(ctx context.Context, path string, query url.Values, token string, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, token, out, false)
}

func (c *Client) post(ctx context.Context, path string, body any, token string, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, token, out, true)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, token string, out any, unwrap bool) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: reading response: %v", domain.ErrUpstreamUnavailable, err)
	}

	var env envelope
	if len(raw) > 0 {
		// A malformed body on an error status still maps by status below.
		_ = json.Unmarshal(raw, &env)
	}

	if resp.StatusCode >= 400 {
		return c.statusError(resp.StatusCode, &env)
	}

	if out != nil {
		data := raw
		if unwrap && env.Data != nil {
			data = env.Data
		}
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) statusError(status int, env *envelope) error {
	switch {
	case status == http.StatusUnprocessableEntity && len(env.Errors) > 0:
		return domain.FieldErrors(env.Errors)
	case status == http.StatusUnauthorized:
		return domain.ErrUnauthenticated
	case status == http.StatusForbidden:
		if strings.Contains(strings.ToLower(env.Message), "locked") {
			return domain.ErrAccountLocked
		}
		return domain.ErrUnauthenticated
	case status == http.StatusNotFound:
		return domain.ErrNotFound
	case status >= 500:
		return fmt.Errorf("%w: backend returned %d", domain.ErrUpstreamUnavailable, status)
	default:
		if env.Message != "" {
			return fmt.Errorf("backend rejected request: %s", env.Message)
		}
		return fmt.Errorf("backend rejected request with status %d", status)
	}
}
