package interfaces

import (
	"context"
	"io"
)

// Headers are extra request headers, applied after the client defaults
type Headers map[string]string

// HTTPClient defines the interface for making HTTP requests.
// This abstraction allows for easy mocking in tests and switching between
// different HTTP client implementations.
//
// A non-2xx status is not an error: callers inspect StatusCode and decide
// whether the failure is soft or terminal.
type HTTPClient interface {
	// Get performs an HTTP GET request to the specified URL.
	Get(ctx context.Context, url string, headers Headers) (Response, error)

	// Post performs an HTTP POST request with a JSON body.
	// The body should be closed by the caller after use.
	Post(ctx context.Context, url string, body io.Reader, headers Headers) (Response, error)

	// Do performs a request with an arbitrary method (PUT, DELETE, ...).
	Do(ctx context.Context, method, url string, body io.Reader, headers Headers) (Response, error)
}

// Response defines the interface for HTTP responses.
// This abstraction allows different HTTP client implementations to provide
// their own response types while maintaining a consistent interface.
type Response interface {
	// StatusCode returns the HTTP status code of the response.
	StatusCode() int

	// Body returns the response body as an io.ReadCloser.
	// The caller is responsible for closing the body when done.
	Body() io.ReadCloser

	// Header returns the value of the specified header.
	// Returns an empty string if the header is not present.
	// Header names are case-insensitive.
	Header(key string) string
}
