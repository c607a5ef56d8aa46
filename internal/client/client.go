/*
Package client talks to the CarsDB HTTP API and keeps the local application
state in sync with what the server committed.

Every mutating call returns the committed delta and dispatches it into App,
so the local items and session never run ahead of the database. A Client is
not safe for concurrent use; it owns its App like a UI thread would.
*/
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/lealre/carsdb-backend/internal/state"
	"github.com/rs/zerolog"
)

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     zerolog.Logger

	App     *state.App
	Notices *state.Notices
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.httpClient = c }
}

func WithLogger(l zerolog.Logger) Option {
	return func(cl *Client) { cl.logger = l }
}

// WithToken resumes a stored session token. Call Resume to load the state.
func WithToken(token string) Option {
	return func(cl *Client) { cl.token = token }
}

// WithClock sets the clock used for notice expiry.
func WithClock(now func() time.Time) Option {
	return func(cl *Client) { cl.Notices = state.NewNotices(now) }
}

func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("client: baseURL is required")
	}

	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     zerolog.Nop(),
		App:        state.New(),
		Notices:    state.NewNotices(nil),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Token returns the current bearer token, empty when signed out.
func (c *Client) Token() string {
	return c.token
}

type errorBody struct {
	StatusCode   int               `json:"statusCode"`
	ErrorMessage string            `json:"errorMessage"`
	Details      map[string]string `json:"details"`
}

// doJSON sends body as JSON and decodes a 2xx answer into dst. Anything else
// becomes an *APIError.
func (c *Client) doJSON(ctx context.Context, method, path string, body, dst any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s %s: encode request: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s %s: create request: %w", method, path, err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug().Str("method", method).Str("path", path).Msg("api request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug().Str("method", method).Str("path", path).Int("status", resp.StatusCode).Msg("api response")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		var errBody errorBody
		if json.Unmarshal(raw, &errBody) == nil && errBody.ErrorMessage != "" {
			return &APIError{StatusCode: resp.StatusCode, Message: errBody.ErrorMessage, Details: errBody.Details}
		}
		msg := strings.TrimSpace(string(raw))
		if msg == "" {
			msg = resp.Status
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if dst != nil {
		if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
			return fmt.Errorf("%s %s: decode response: %w", method, path, err)
		}
	}
	return nil
}
