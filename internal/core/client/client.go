// Package client exposes the EarthMC API as typed Go calls. Every call goes
// through one rate limited executor owned by the Client.
package client

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

	"github.com/fulmenhq/gofulmen/logging"
	"go.uber.org/zap"

	"github.com/emcapi/emcapi/internal/core/engine"
	"github.com/emcapi/emcapi/internal/metrics"
)

const (
	DefaultBaseURL = "https://api.earthmc.net/v3"
	DefaultServer  = "aurora"
)

// Options configures a Client. Use DefaultOptions as a starting point.
type Options struct {
	BaseURL    string
	Server     string
	RateLimit  engine.RateLimit
	Retries    int
	UserAgent  string
	HTTPClient *http.Client
	Clock      engine.Clock
	Logger     *logging.Logger
}

// DefaultOptions returns the production endpoint, unlimited quota over the
// default window, and the default retry budget.
func DefaultOptions() Options {
	return Options{
		BaseURL:   DefaultBaseURL,
		Server:    DefaultServer,
		RateLimit: engine.RateLimit{Quota: engine.Unlimited(), Window: engine.DefaultWindow},
		Retries:   engine.DefaultRetries,
		UserAgent: engine.DefaultUserAgent,
	}
}

// Client is one API session. It owns its rate limiter exclusively; separate
// clients never share quota.
type Client struct {
	server   string
	baseURL  *url.URL
	limiter  *engine.RateLimiter
	executor *engine.Executor
	logger   *logging.Logger
}

// New builds a Client from opts.
func New(opts Options) (*Client, error) {
	rawBase := strings.TrimSpace(opts.BaseURL)
	if rawBase == "" {
		rawBase = DefaultBaseURL
	}
	baseURL, err := url.Parse(strings.TrimRight(rawBase, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if baseURL.Scheme == "" || baseURL.Host == "" {
		return nil, fmt.Errorf("invalid base url %q: scheme and host are required", rawBase)
	}

	server := strings.TrimSpace(opts.Server)
	if server == "" {
		server = DefaultServer
	}
	if strings.Contains(server, "/") {
		return nil, fmt.Errorf("invalid server %q", server)
	}
	if opts.Retries < 0 {
		return nil, errors.New("retries must not be negative")
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	limiter := engine.NewRateLimiter(opts.RateLimit, opts.Clock)
	return &Client{
		server:  server,
		baseURL: baseURL,
		limiter: limiter,
		executor: &engine.Executor{
			Limiter:   limiter,
			Client:    httpClient,
			Retries:   opts.Retries,
			UserAgent: opts.UserAgent,
			Logger:    opts.Logger,
		},
		logger: opts.Logger,
	}, nil
}

// Server returns the backend partition this client queries.
func (c *Client) Server() string {
	return c.server
}

// RateLimit returns the limiter configuration.
func (c *Client) RateLimit() engine.RateLimit {
	return c.limiter.Limit()
}

// InWindow returns the admissions counted in the current window.
func (c *Client) InWindow() int {
	return c.limiter.InWindow()
}

// StatusError is returned when the API answers with a non-2xx status,
// including a 504 that outlived the retry budget.
type StatusError struct {
	Resource   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d %s", e.Resource, e.StatusCode, http.StatusText(e.StatusCode))
}

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == code
}

const maxErrorBody = 4 << 10

// endpoint resolves {base}/{server}/{path} with params.
func (c *Client) endpoint(path string, params url.Values) string {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + "/" + c.server
	if path != "" {
		u.Path += "/" + strings.TrimLeft(path, "/")
	} else {
		u.Path += "/"
	}
	if len(params) > 0 {
		u.RawQuery = params.Encode()
	}
	return u.String()
}

// fetch executes a GET and decodes a 2xx JSON body into out.
func (c *Client) fetch(ctx context.Context, resource, path string, params url.Values, out any) error {
	resp, err := c.executor.Execute(ctx, c.endpoint(path, params))
	if err != nil {
		metrics.RecordOperation(resource, false)
		return err
	}
	defer resp.Body.Close() // nolint:errcheck // best-effort cleanup on HTTP response body

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.RecordOperation(resource, false)
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{Resource: resource, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		metrics.RecordOperation(resource, false)
		return fmt.Errorf("decode %s response: %w", resource, err)
	}

	metrics.RecordOperation(resource, true)
	return nil
}

func (c *Client) debug(msg string, fields ...zap.Field) {
	if c.logger != nil {
		c.logger.Debug(msg, fields...)
	}
}
