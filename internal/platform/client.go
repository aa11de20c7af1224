package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/google/uuid"

	"github.com/felixgeelhaar/omsctl/internal/log"
	"github.com/felixgeelhaar/omsctl/internal/metrics"
)

const (
	// DefaultBaseURL is the backend origin used when none is configured
	DefaultBaseURL = "http://localhost:8000/api/"

	// DefaultTimeout bounds every request
	DefaultTimeout = 30 * time.Second

	// RequestIDHeader carries a per-request correlation id
	RequestIDHeader = "X-Request-ID"
)

// Credentials supplies the bearer token for outgoing requests and can
// exchange the refresh token when the backend rejects it. rejected is the
// access token the backend refused; if it is no longer current another
// caller already refreshed and RefreshAccess returns nil.
type Credentials interface {
	AccessToken() string
	RefreshAccess(ctx context.Context, rejected string) error
}

// Client is the single HTTP pipeline to the OMS backend
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	creds      Credentials
	logger     *log.Logger
	metrics    *metrics.Metrics
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout on a copy of the HTTP client,
// leaving an injected client untouched
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			hc := *c.httpClient
			hc.Timeout = d
			c.httpClient = &hc
		}
	}
}

// WithUserAgent sets the User-Agent header
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithLogger sets the logger used for request tracing
func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics records every call in m
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// NewClient creates a client rooted at baseURL
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/") + "/",
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger: log.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetCredentials installs the token source consulted before each request
func (c *Client) SetCredentials(creds Credentials) {
	c.creds = creds
}

// BaseURL returns the backend origin
func (c *Client) BaseURL() string {
	return c.baseURL
}

type request struct {
	method string
	path   string
	body   any

	// public requests carry no bearer and are never refreshed
	public bool
}

func (c *Client) url(path string) string {
	return c.baseURL + strings.TrimLeft(path, "/")
}

// do sends r and decodes a 2xx body into out. An authenticated request that
// comes back 401 is replayed once after a successful token refresh.
func (c *Client) do(ctx context.Context, r request, out any) error {
	payload, err := encodeBody(r.body)
	if err != nil {
		return err
	}

	if r.public || c.creds == nil {
		return c.send(ctx, r, payload, "", out)
	}

	var token string
	send := func() error {
		token = c.creds.AccessToken()
		return c.send(ctx, r, payload, token, out)
	}

	refreshed := false
	return retry.Do(
		send,
		retry.Context(ctx),
		retry.Attempts(2),
		retry.Delay(0),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			if refreshed || !IsUnauthorized(err) {
				return false
			}
			refreshed = true
			if rerr := c.creds.RefreshAccess(ctx, token); rerr != nil {
				c.logger.WithError(rerr).DebugContext(ctx, "api.refresh_failed", "path", r.path)
				return false
			}
			c.logger.DebugContext(ctx, "api.replay", "method", r.method, "path", r.path)
			return true
		}),
	)
}

func encodeBody(body any) ([]byte, error) {
	if body == nil {
		return nil, nil
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}
	return data, nil
}

func (c *Client) send(ctx context.Context, r request, payload []byte, token string, out any) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, c.url(r.path), body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		c.metrics.RecordAPICall(r.method, r.path, 0, elapsed)
		c.logger.WithError(err).DebugContext(ctx, "api.transport_error",
			"method", r.method, "path", r.path, "request_id", requestID, "latency", elapsed)
		return &TransportError{Method: r.method, Path: r.path, RequestID: requestID, Err: err}
	}
	defer resp.Body.Close()

	c.metrics.RecordAPICall(r.method, r.path, resp.StatusCode, elapsed)
	c.logger.DebugContext(ctx, "api.request",
		"method", r.method,
		"path", r.path,
		"status", resp.StatusCode,
		"latency", elapsed,
		"request_id", requestID,
	)

	return parseResponse(resp, requestID, out)
}

// parseResponse decodes a 2xx body into target or turns the response into an *APIError
func parseResponse(resp *http.Response, requestID string, target any) error {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Method: resp.Request.Method, Path: resp.Request.URL.Path, RequestID: requestID, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp.StatusCode, requestID, data)
	}

	if target == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if raw, ok := target.(*json.RawMessage); ok {
		*raw = append((*raw)[:0], data...)
		return nil
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// IsUnauthorized reports whether err is a 401 from the backend
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}
