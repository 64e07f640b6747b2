// ABOUTME: Standard HTTP client implementation with timeout support and outbound pacing
// ABOUTME: Provides HTTP functionality for the lookup, extraction, LLM and store APIs

package standard

import (
	"context"
	"io"
	"net/http"
	"time"

	"linkdigest-api/core/interfaces"

	"golang.org/x/time/rate"
)

const userAgent = "LinkDigestAPI/1.0"

// StandardHTTPClient implements the HTTPClient interface using standard library
type StandardHTTPClient struct {
	client  *http.Client
	limiter *rate.Limiter
}

// Option configures a StandardHTTPClient
type Option func(*StandardHTTPClient)

// WithRateLimit paces outbound requests to perSecond with the given burst.
// A non-positive perSecond leaves the client unlimited.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(c *StandardHTTPClient) {
		if perSecond <= 0 {
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// WithTransport replaces the underlying round tripper, e.g. with a logging one
func WithTransport(rt http.RoundTripper) Option {
	return func(c *StandardHTTPClient) {
		c.client.Transport = rt
	}
}

// NewStandardHTTPClient creates a new HTTP client with the specified timeout
func NewStandardHTTPClient(timeout time.Duration, opts ...Option) *StandardHTTPClient {
	c := &StandardHTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get performs an HTTP GET request
func (c *StandardHTTPClient) Get(ctx context.Context, url string, headers interfaces.Headers) (interfaces.Response, error) {
	return c.Do(ctx, http.MethodGet, url, nil, headers)
}

// Post performs an HTTP POST request with a JSON body
func (c *StandardHTTPClient) Post(ctx context.Context, url string, body io.Reader, headers interfaces.Headers) (interfaces.Response, error) {
	merged := interfaces.Headers{"Content-Type": "application/json"}
	for k, v := range headers {
		merged[k] = v
	}
	return c.Do(ctx, http.MethodPost, url, body, merged)
}

// Do performs a single request. There is no retry: callers own their fallback policy.
func (c *StandardHTTPClient) Do(ctx context.Context, method, url string, body io.Reader, headers interfaces.Headers) (interfaces.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", userAgent)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}

	return &httpResponse{
		statusCode: resp.StatusCode,
		body:       resp.Body,
		headers:    resp.Header,
	}, nil
}

// httpResponse implements the Response interface
type httpResponse struct {
	statusCode int
	body       io.ReadCloser
	headers    http.Header
}

// StatusCode returns the HTTP status code
func (r *httpResponse) StatusCode() int {
	return r.statusCode
}

// Body returns the response body
func (r *httpResponse) Body() io.ReadCloser {
	return r.body
}

// Header returns the value of the specified header
func (r *httpResponse) Header(key string) string {
	return r.headers.Get(key)
}
