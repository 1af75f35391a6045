// KAPAS - Ethnic Wear Storefront Services
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ishubhamdubey/KAPAS

package remote

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/ishubhamdubey/KAPAS/internal/config"
	"github.com/ishubhamdubey/KAPAS/internal/logging"
	"github.com/ishubhamdubey/KAPAS/internal/metrics"
)

// maxBodySize limits how much of a response body is read.
const maxBodySize = 4 << 20

// breakerName labels circuit breaker metrics.
const breakerName = "kapas-remote"

// cartSessionHeader carries the shopper's session id; the server scopes cart
// rows to it.
const cartSessionHeader = "X-Cart-Session"

// TokenProvider supplies the bearer token for requests; "" means anonymous.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// SessionProvider supplies the anonymous session id sent with each request.
type SessionProvider interface {
	SessionID(ctx context.Context) (string, error)
}

// Options configures a Client. Zero values take the defaults noted per field.
type Options struct {
	Timeout         time.Duration // 10s
	RateLimit       float64       // requests per second; <= 0 is unlimited
	RateBurst       int           // 1
	BreakerFailures uint32        // 5
	BreakerTimeout  time.Duration // 30s
	Tokens          TokenProvider
	Sessions        SessionProvider
	HTTPClient      *http.Client // overrides Timeout when set
}

// Client talks to the storefront server. It is safe for concurrent use.
type Client struct {
	baseURL  *url.URL
	http     *http.Client
	tokens   TokenProvider
	sessions SessionProvider
	limiter  *rate.Limiter
	cb       *gobreaker.CircuitBreaker[*envelope]
	logger   zerolog.Logger
}

// New creates a client for the server at baseURL.
func New(baseURL string, opts Options) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse remote url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("remote url must use http or https, got %q", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("remote url %q has no host", baseURL)
	}

	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.RateBurst <= 0 {
		opts.RateBurst = 1
	}
	if opts.BreakerFailures == 0 {
		opts.BreakerFailures = 5
	}
	if opts.BreakerTimeout <= 0 {
		opts.BreakerTimeout = 30 * time.Second
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	limit := rate.Inf
	if opts.RateLimit > 0 {
		limit = rate.Limit(opts.RateLimit)
	}

	c := &Client{
		baseURL:  u,
		http:     httpClient,
		tokens:   opts.Tokens,
		sessions: opts.Sessions,
		limiter:  rate.NewLimiter(limit, opts.RateBurst),
		logger:   logging.WithComponent("remote"),
	}
	c.cb = newBreaker(opts.BreakerFailures, opts.BreakerTimeout, c.logger)
	return c, nil
}

// NewFromConfig creates a client from the CLI configuration.
func NewFromConfig(cfg *config.ClientConfig, tokens TokenProvider, sessions SessionProvider) (*Client, error) {
	return New(cfg.RemoteURL, Options{
		Timeout:         cfg.Timeout,
		RateLimit:       cfg.RateLimit,
		RateBurst:       cfg.RateBurst,
		BreakerFailures: cfg.BreakerFailures,
		BreakerTimeout:  cfg.BreakerTimeout,
		Tokens:          tokens,
		Sessions:        sessions,
	})
}

// BreakerState reports the circuit breaker state: closed, half-open or open.
func (c *Client) BreakerState() string {
	return stateToString(c.cb.State())
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// do performs one API call and decodes the envelope's data into out.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	env, err := c.cb.Execute(func() (*envelope, error) {
		return c.roundTrip(ctx, method, path, query, body)
	})
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "rejected").Inc()
		return fmt.Errorf("%s %s: %w: %w", method, path, ErrCircuitOpen, err)
	case err != nil:
		if countsAsFailure(err) {
			metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "failure").Inc()
		} else {
			metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "success").Inc()
		}
		return err
	}
	metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "success").Inc()

	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("%s %s: decode data: %w", method, path, err)
	}
	return nil
}

func (c *Client) roundTrip(ctx context.Context, method, path string, query url.Values, body any) (*envelope, error) {
	target := *c.baseURL
	target.Path = c.baseURL.Path + path
	if len(query) > 0 {
		target.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return nil, fmt.Errorf("read bearer token: %w", err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	if c.sessions != nil {
		id, err := c.sessions.SessionID(ctx)
		if err != nil {
			return nil, fmt.Errorf("read session id: %w", err)
		}
		req.Header.Set(cartSessionHeader, id)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.Debug().Err(cerr).Msg("close response body")
		}
	}()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%s %s: read body: %w", method, path, err)
	}
	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("Remote call")

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)
	if resp.StatusCode >= http.StatusBadRequest || decodeErr != nil || !env.Success {
		serr := &StatusError{StatusCode: resp.StatusCode, Method: method, Path: path}
		switch {
		case decodeErr == nil && env.Error != nil:
			serr.Code, serr.Message = env.Error.Code, env.Error.Message
		case decodeErr != nil:
			serr.Message = truncate(string(raw), 256)
		}
		return nil, serr
	}
	return &env, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
