// Package transport is the HTTP client used for every remote endpoint:
// the sync endpoint, the weather and exchange-rate APIs.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/agentstation/tripmap/pkg/constants"
	"github.com/agentstation/tripmap/pkg/errors"
	"github.com/agentstation/tripmap/pkg/logging"
)

// DefaultHTTPTimeout is the default timeout for HTTP requests.
var DefaultHTTPTimeout = constants.DefaultHTTPTimeout

// Client performs JSON requests against one remote service.
type Client struct {
	http    *http.Client
	auth    Authenticator
	apiKey  string
	service string
	logger  *zerolog.Logger
	maxBody int64
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithAuth applies auth with apiKey to every request. An empty key disables it.
func WithAuth(auth Authenticator, apiKey string) Option {
	return func(c *Client) {
		if auth != nil {
			c.auth = auth
		}
		c.apiKey = apiKey
	}
}

// WithLogger sets the logger for request tracing.
func WithLogger(l *zerolog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMaxBodyBytes caps how much of a response body is read.
func WithMaxBodyBytes(n int64) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxBody = n
		}
	}
}

// New creates a client for service, the name used in errors and logs.
func New(service string, opts ...Option) *Client {
	c := &Client{
		http:    &http.Client{Timeout: DefaultHTTPTimeout},
		auth:    &NoAuth{},
		service: service,
		logger:  logging.Component("transport"),
		maxBody: constants.MaxResponseBodyBytes,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Service returns the service name.
func (c *Client) Service() string {
	return c.service
}

// Do performs req with authentication and JSON headers applied.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	req = req.WithContext(ctx)
	if c.apiKey != "" {
		c.auth.Apply(req, c.apiKey)
	}

	req.Header.Set("Accept", "application/json")
	if req.Method == http.MethodPost || req.Method == http.MethodPut || req.Method == http.MethodPatch {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug().
		Str("service", c.service).
		Str("method", req.Method).
		Str("host", req.URL.Host).
		Msg("HTTP request")

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, errors.WrapAPI(c.service, 0, errors.ErrTimeout)
		}
		return nil, errors.WrapAPI(c.service, 0, err)
	}
	return resp, nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.WrapResource("create", "request", "GET "+url, err)
	}
	return c.Do(ctx, req)
}

// PostJSON encodes body as JSON and POSTs it.
func (c *Client) PostJSON(ctx context.Context, url string, body any) (*http.Response, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, errors.WrapParse("json", "request body", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, errors.WrapResource("create", "request", "POST "+url, err)
	}
	return c.Do(ctx, req)
}

// GetJSON performs a GET and decodes a 2xx JSON response into target.
func (c *Client) GetJSON(ctx context.Context, url string, target any) error {
	resp, err := c.Get(ctx, url)
	if err != nil {
		return err
	}
	_, err = c.Decode(resp, target)
	return err
}

// Decode reads resp, requires a 2xx status and unmarshals the body into
// target unless target is nil. The raw body is returned either way.
func (c *Client) Decode(resp *http.Response, target any) ([]byte, error) {
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Warn().Err(err).Str("service", c.service).Msg("Failed to close response body")
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, errors.WrapIO("read", "response body", err)
	}
	if int64(len(body)) > c.maxBody {
		return nil, &errors.APIError{
			Service:    c.service,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("response body exceeds %d bytes", c.maxBody),
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &errors.APIError{
			Service:    c.service,
			StatusCode: resp.StatusCode,
			Message:    snippet(body),
		}
		if resp.Request != nil && resp.Request.URL != nil {
			apiErr.Endpoint = resp.Request.URL.Redacted()
		}
		return body, apiErr
	}

	if target == nil {
		return body, nil
	}
	if err := json.Unmarshal(body, target); err != nil {
		return body, errors.WrapParse("json", c.service+" response", err)
	}
	return body, nil
}

// snippet keeps error messages short when a server answers with an HTML page.
func snippet(body []byte) string {
	const max = 200
	body = bytes.TrimSpace(body)
	if len(body) > max {
		return string(body[:max]) + "…"
	}
	return string(body)
}
