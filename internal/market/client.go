// Package market provides the HTTP client for the secondhand marketplace
// API. It attaches the stored access token to authorized requests, retries
// exactly once through a refresh cycle on 401, and normalizes error bodies
// into a single *APIError shape.
package market

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/junseo/marketctl/internal/metrics"
	"github.com/junseo/marketctl/internal/token"
)

// Client is an HTTP client for the marketplace API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     token.Store
	limiter    *rate.Limiter
	log        *slog.Logger

	// refreshMu serializes refresh cycles so concurrent 401s coalesce
	// into a single token exchange.
	refreshMu sync.Mutex
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTokenStore sets the credential store consulted for authorized
// requests and updated by refresh cycles.
func WithTokenStore(s token.Store) Option {
	return func(c *Client) {
		c.tokens = s
	}
}

// WithRateLimiter installs a client-side token bucket consulted before
// every outbound request. The limiter may be shared between clients.
func WithRateLimiter(l *rate.Limiter) Option {
	return func(c *Client) {
		c.limiter = l
	}
}

// WithLogger sets the logger for request and refresh events.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// New creates a marketplace API client targeting the given base URL.
// Without options it uses an in-memory token store and a 30-second
// request timeout.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		tokens:     token.NewMemory(),
		log:        slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Tokens returns the client's credential store.
func (c *Client) Tokens() token.Store {
	return c.tokens
}

func (c *Client) get(ctx context.Context, path string, dst any, authed bool) error {
	return c.do(ctx, http.MethodGet, path, nil, dst, authed)
}

func (c *Client) post(ctx context.Context, path string, body, dst any, authed bool) error {
	return c.do(ctx, http.MethodPost, path, body, dst, authed)
}

func (c *Client) patch(ctx context.Context, path string, body, dst any, authed bool) error {
	return c.do(ctx, http.MethodPatch, path, body, dst, authed)
}

func (c *Client) del(ctx context.Context, path string, authed bool) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, authed)
}

func (c *Client) do(ctx context.Context, method, path string, body, dst any, authed bool) error {
	return c.send(ctx, method, path, body, dst, authed, true)
}

// send issues one request. mayRefresh is the single-use refresh budget:
// it is true only on the first attempt of a logical call and is consumed
// by the one retry, so refresh cycles never cascade.
func (c *Client) send(
	ctx context.Context,
	method, path string,
	body, dst any,
	authed, mayRefresh bool,
) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit: %w", err)
		}
	}

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	// Every call must observe current server state.
	req.Header.Set("Cache-Control", "no-store")

	// A missing token on an authorized call is not an error here: the
	// request goes out without the header and the server's 401 feeds the
	// refresh path below.
	sentAccess := ""
	if authed {
		if sentAccess = c.tokens.Access(); sentAccess != "" {
			req.Header.Set("Authorization", "Bearer "+sentAccess)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.APIRequestsTotal.WithLabelValues(method, "error").Inc()
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	status := strconv.Itoa(resp.StatusCode)
	metrics.APIRequestsTotal.WithLabelValues(method, status).Inc()
	metrics.APIRequestDuration.WithLabelValues(method, status).
		Observe(time.Since(start).Seconds())

	if resp.StatusCode == http.StatusUnauthorized &&
		authed && mayRefresh && path != refreshPath {
		if refreshErr := c.refreshTokens(ctx, sentAccess); refreshErr == nil {
			return c.send(ctx, method, path, body, dst, authed, false)
		}
		c.log.Debug("token refresh failed, surfacing original 401",
			"method", method, "path", path)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return normalizeError(resp.StatusCode, respBody)
	}

	if dst != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, dst); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}
