// Package apiclient is a thin client for the translation backend's REST API.
// Each endpoint maps to one method that issues a single request and returns
// the response as received. There is no retry, validation, or reshaping.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/google/uuid"
)

const (
	// DefaultBaseURL is used when no base URL is configured.
	DefaultBaseURL = "/api"

	// DefaultLocale is sent by CreateBatch when no locale is given.
	DefaultLocale = "en-us"

	// EnvBaseURL names the environment variable holding the base URL.
	EnvBaseURL = "API_URL"

	// DefaultMaxResponseSize bounds response bodies read by the client.
	DefaultMaxResponseSize int64 = 32 << 20

	headerRequestID = "X-Request-ID"
)

// BaseURLFromEnv returns the API_URL environment value. When it is unset it
// returns fallback, or DefaultBaseURL if fallback is empty.
func BaseURLFromEnv(fallback string) string {
	if v := strings.TrimSpace(os.Getenv(EnvBaseURL)); v != "" {
		return v
	}
	if fallback != "" {
		return fallback
	}
	return DefaultBaseURL
}

// Response is an API response exactly as the backend produced it.
type Response struct {
	StatusCode int
	Header     http.Header
	Data       json.RawMessage
}

// Decode unmarshals the response body into v.
func (r *Response) Decode(v any) error {
	if len(r.Data) == 0 {
		return fmt.Errorf("decode response: empty body")
	}
	dec := json.NewDecoder(bytes.NewReader(r.Data))
	dec.UseNumber()
	return dec.Decode(v)
}

// Client issues requests against a single base URL.
type Client struct {
	baseURL         *url.URL
	origin          string
	http            *http.Client
	header          http.Header
	requestID       func(context.Context) string
	maxResponseSize int64
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

// WithOrigin sets the scheme and host a relative base URL resolves against.
func WithOrigin(origin string) Option {
	return func(c *Client) {
		c.origin = origin
	}
}

// WithHeader adds a header sent on every request.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.header.Add(key, value)
	}
}

// WithMaxResponseSize bounds the bytes read from a response body.
// Non-positive values keep the default.
func WithMaxResponseSize(n int64) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxResponseSize = n
		}
	}
}

// WithRequestID sets the source of the X-Request-ID header. When fn yields
// an empty string a new UUID is used.
func WithRequestID(fn func(context.Context) string) Option {
	return func(c *Client) {
		c.requestID = fn
	}
}

// New creates a Client for baseURL. An empty baseURL falls back to
// DefaultBaseURL. A relative baseURL requires WithOrigin.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		http:            &http.Client{},
		header:          make(http.Header),
		maxResponseSize: DefaultMaxResponseSize,
	}
	c.header.Set("Content-Type", "application/json")

	for _, opt := range opts {
		opt(c)
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
	}

	if !base.IsAbs() {
		if c.origin == "" {
			return nil, fmt.Errorf("%w: relative base %q requires an origin", ErrInvalidBaseURL, baseURL)
		}
		origin, err := url.Parse(c.origin)
		if err != nil || !origin.IsAbs() || origin.Host == "" {
			return nil, fmt.Errorf("%w: invalid origin %q", ErrInvalidBaseURL, c.origin)
		}
		base = origin.ResolveReference(base)
	}

	base.Path = strings.TrimSuffix(base.Path, "/")
	base.RawPath = ""
	c.baseURL = base

	return c, nil
}

// BaseURL returns the resolved absolute base URL.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

func (c *Client) url(path string) string {
	u := *c.baseURL
	raw := c.baseURL.EscapedPath() + path
	if p, err := url.PathUnescape(raw); err == nil {
		u.Path = p
		u.RawPath = raw
	} else {
		u.Path = raw
	}
	return u.String()
}

func (c *Client) get(ctx context.Context, path string) (*Response, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

func (c *Client) post(ctx context.Context, path string, body any) (*Response, error) {
	return c.do(ctx, http.MethodPost, path, body)
}

func (c *Client) put(ctx context.Context, path string, body any) (*Response, error) {
	return c.do(ctx, http.MethodPut, path, body)
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%s %s: encode body: %w", method, path, err)
		}
		reader = bytes.NewReader(data)
	}

	target := c.url(path)
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}

	for key, values := range c.header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	req.Header.Set(headerRequestID, c.nextRequestID(ctx))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxResponseSize+1))
	if err != nil {
		return nil, fmt.Errorf("%s %s: read body: %w", method, path, err)
	}
	if int64(len(data)) > c.maxResponseSize {
		return nil, fmt.Errorf("%s %s: %w", method, path, ErrResponseTooLarge)
	}

	result := &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Data:       data,
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return result, &StatusError{Method: method, URL: target, Response: result}
	}

	return result, nil
}

func (c *Client) nextRequestID(ctx context.Context) string {
	if c.requestID != nil {
		if id := c.requestID(ctx); id != "" {
			return id
		}
	}
	return uuid.NewString()
}
