// Package httpclient provides the shared HTTP client used by provider
// adapters: bearer-token auth, a camd User-Agent, client-side rate limiting,
// and bounded retries on retryable server errors. Adapters get consistent
// structured error classification (auth, network, parse) for free.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	camderrors "github.com/cheapamd/camd/pkg/errors"
)

const (
	defaultTimeout = 10 * time.Second

	maxRetries = 3
	baseDelay  = 500 * time.Millisecond
	maxDelay   = 8 * time.Second
)

// HTTPError captures unexpected status codes and response bodies.
type HTTPError struct {
	StatusCode int
	Body       []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("unexpected status code: %d, body: %s", e.StatusCode, string(e.Body))
}

// userAgentRoundTripper adds a User-Agent header to every request.
type userAgentRoundTripper struct {
	wrapped   http.RoundTripper
	userAgent string
}

func (rt *userAgentRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	// clone request to avoid mutating the original
	clone := req.Clone(req.Context())
	clone.Header.Set("User-Agent", rt.userAgent)
	return rt.wrapped.RoundTrip(clone)
}

// Client wraps *http.Client with rate limiting and retry logic.
type Client struct {
	hc      *http.Client
	limiter *rate.Limiter
	sleep   func(d time.Duration)
}

// Option configures a Client.
type Option func(*Client)

// WithRateLimit caps outgoing requests per second.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.hc.Timeout = d
	}
}

// New returns a Client sending the given User-Agent. A non-empty apiKey is
// attached as a bearer token on every request via oauth2's static source.
func New(userAgent, apiKey string, opts ...Option) *Client {
	base := http.DefaultTransport
	if apiKey != "" {
		base = &oauth2.Transport{
			Base:   base,
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: apiKey}),
		}
	}

	c := &Client{
		hc: &http.Client{
			Transport: &userAgentRoundTripper{wrapped: base, userAgent: userAgent},
			Timeout:   defaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(5), 5),
		sleep:   time.Sleep,
	}

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetJSON performs a GET and unmarshals the JSON response into out.
func (c *Client) GetJSON(ctx context.Context, url string, out any) error {
	return c.doJSON(ctx, http.MethodGet, url, nil, out)
}

// PostJSON performs a POST with a JSON body and unmarshals the response into out.
func (c *Client) PostJSON(ctx context.Context, url string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return camderrors.Wrap(camderrors.ErrCodeInternal, "failed to encode request body", err)
	}
	return c.doJSON(ctx, http.MethodPost, url, payload, out)
}

func (c *Client) doJSON(ctx context.Context, method, url string, body []byte, out any) error {
	data, err := c.doWithRetry(ctx, method, url, body)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return camderrors.Wrap(camderrors.ErrCodeParse, "unexpected response shape", err)
	}
	return nil
}

// doWithRetry performs the request, retrying a bounded number of times on
// retryable server errors with exponential backoff and jitter.
func (c *Client) doWithRetry(ctx context.Context, method, url string, body []byte) ([]byte, error) {
	delay := baseDelay

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		data, err := c.do(ctx, method, url, body)
		if err == nil {
			return data, nil
		}
		lastErr = err

		var httpErr *HTTPError
		if !errors.As(err, &httpErr) || !retryable(httpErr.StatusCode) {
			break
		}
		if attempt == maxRetries-1 {
			break
		}

		jitter := time.Duration(rand.Int63n(int64(delay)))
		c.sleep(delay + jitter)
		delay *= 2
		if delay > maxDelay {
			delay = maxDelay
		}
	}
	return nil, classify(lastErr)
}

func (c *Client) do(ctx context.Context, method, url string, body []byte) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: data}
	}
	return data, nil
}

func retryable(status int) bool {
	switch status {
	case http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// classify maps transport and status failures onto the adapter error
// taxonomy. 401/403 become auth errors, everything else network errors.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		switch httpErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return camderrors.Wrap(camderrors.ErrCodeAuth, "invalid or missing API key", err)
		default:
			return camderrors.Wrap(camderrors.ErrCodeNetwork,
				fmt.Sprintf("provider returned status %d", httpErr.StatusCode), err)
		}
	}

	var se *camderrors.StructuredError
	if errors.As(err, &se) {
		return err
	}
	return camderrors.Wrap(camderrors.ErrCodeNetwork, "provider unreachable", err)
}

// SetSleepForTest replaces the backoff sleep function in tests.
func (c *Client) SetSleepForTest(sleep func(d time.Duration)) {
	c.sleep = sleep
}
