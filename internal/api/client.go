package api

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

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
)

// TokenSource supplies the vendor bearer token. ok is false when no valid
// session exists.
type TokenSource interface {
	Token() (token string, ok bool)
}

// Client talks to the InLine HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	tokens    TokenSource
	log       zerolog.Logger
	breaker   *gobreaker.CircuitBreaker[exchange]
}

const (
	defaultBaseURL   = "http://localhost:4100/api"
	defaultUserAgent = "inline/0.1"
	requestTimeout   = 10 * time.Second
)

// Option customises a Client.
type Option func(*Client)

// WithTokenSource attaches the vendor session used for authenticated calls.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithLogger sets the request logger.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua = strings.TrimSpace(ua); ua != "" {
			c.userAgent = ua
		}
	}
}

// NewClient builds a Client for the API rooted at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.breaker = newBreaker(c.log)
	return c, nil
}

// BaseURL returns the API root.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

type authMode int

const (
	authNone authMode = iota
	authOptional
	authRequired
)

type exchange struct {
	status int
	body   []byte
}

func (c *Client) do(ctx context.Context, method, path string, auth authMode, body, dest any) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}

	var token string
	if auth != authNone && c.tokens != nil {
		if t, ok := c.tokens.Token(); ok {
			token = t
		}
	}
	if auth == authRequired && token == "" {
		return ErrNoToken
	}

	var payload io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		payload = bytes.NewReader(encoded)
	}

	reqURL := c.baseURL.JoinPath(path)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), payload)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	res, err := c.breaker.Execute(func() (exchange, error) {
		return c.roundTrip(req, method, path)
	})
	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", res.status).
		Dur("took", time.Since(start)).
		Str("request_id", requestID).
		Err(err).
		Msg("api request")
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return err
	}

	if dest == nil || res.status == http.StatusNoContent || len(bytes.TrimSpace(res.body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(res.body, dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) roundTrip(req *http.Request, method, path string) (exchange, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return exchange{}, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return exchange{status: resp.StatusCode}, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return exchange{status: resp.StatusCode}, newError(method, path, resp.StatusCode, body)
	}
	return exchange{status: resp.StatusCode, body: body}, nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api url %q: missing host", raw)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
