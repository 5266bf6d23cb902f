package engine

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/fulmenhq/gofulmen/logging"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/emcapi/emcapi/internal/metrics"
)

const (
	// DefaultRetries is the number of extra attempts made after a 504.
	DefaultRetries = 3

	// DefaultUserAgent identifies this client on every request.
	DefaultUserAgent = "emcapi-go"

	// CacheBustParam is regenerated on every attempt so intermediaries never
	// serve a cached body.
	CacheBustParam = "no-cache-please"
)

// Executor performs rate limited GET requests with bounded retry on 504.
type Executor struct {
	Limiter   *RateLimiter
	Client    *http.Client
	Retries   int
	UserAgent string
	Logger    *logging.Logger

	mu        sync.Mutex
	lastToken string
}

// Execute issues a GET for rawURL. Every attempt passes through the limiter
// and carries a fresh cache-busting token. A 504 is retried up to Retries
// times; once the budget is spent the last 504 response is returned without
// error. Other statuses are returned as-is and transport errors are returned
// unchanged. The caller closes the response body.
func (e *Executor) Execute(ctx context.Context, rawURL string) (*http.Response, error) {
	if e == nil {
		return nil, fmt.Errorf("executor is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	base, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}

	client := e.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	userAgent := e.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	retries := e.Retries
	if retries < 0 {
		retries = 0
	}

	callID := uuid.New().String()

	for attempt := 0; ; attempt++ {
		if e.Limiter != nil {
			waited, err := e.Limiter.Admit(ctx)
			if err != nil {
				return nil, err
			}
			if waited > 0 {
				metrics.RecordAdmissionWait(waited)
				e.debug("Request held by rate limiter",
					zap.String("call_id", callID),
					zap.Duration("waited", waited))
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.withCacheBuster(base), nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := client.Do(req)
		if err != nil {
			metrics.RecordTransportError()
			return nil, err
		}
		metrics.RecordAttempt(resp.StatusCode)

		if resp.StatusCode != http.StatusGatewayTimeout || attempt >= retries {
			return resp, nil
		}

		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()

		metrics.RecordRetry()
		e.info("Gateway timeout, retrying request",
			zap.String("call_id", callID),
			zap.String("url", base.String()),
			zap.Int("attempt", attempt+1),
			zap.Int("retries_remaining", retries-attempt-1))
	}
}

// withCacheBuster returns base with a new cache-busting token attached.
func (e *Executor) withCacheBuster(base *url.URL) string {
	u := *base
	query := u.Query()
	query.Set(CacheBustParam, e.nextToken(time.Now()))
	u.RawQuery = query.Encode()
	return u.String()
}

// nextToken formats {epochMillis}~{random}. Consecutive tokens never repeat.
func (e *Executor) nextToken(now time.Time) string {
	e.mu.Lock()
	defer e.mu.Unlock()

	for {
		token := strconv.FormatInt(now.UnixMilli(), 10) + "~" + strconv.FormatFloat(rand.Float64(), 'f', 3, 64)
		if token != e.lastToken {
			e.lastToken = token
			return token
		}
	}
}

func (e *Executor) info(msg string, fields ...zap.Field) {
	if e.Logger != nil {
		e.Logger.Info(msg, fields...)
	}
}

func (e *Executor) debug(msg string, fields ...zap.Field) {
	if e.Logger != nil {
		e.Logger.Debug(msg, fields...)
	}
}
