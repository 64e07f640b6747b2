package extract

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync"

	"linkdigest-api/core/domain"
	"linkdigest-api/core/interfaces"
)

// mockHTTPClient is a mock implementation of the HTTPClient interface.
// Every method funnels into doFunc so tests route on method and URL.
type mockHTTPClient struct {
	doFunc func(ctx context.Context, method, url string, headers interfaces.Headers) (interfaces.Response, error)

	mu       sync.Mutex
	requests []string
}

func (m *mockHTTPClient) Get(ctx context.Context, url string, headers interfaces.Headers) (interfaces.Response, error) {
	return m.Do(ctx, http.MethodGet, url, nil, headers)
}

func (m *mockHTTPClient) Post(ctx context.Context, url string, body io.Reader, headers interfaces.Headers) (interfaces.Response, error) {
	return m.Do(ctx, http.MethodPost, url, body, headers)
}

func (m *mockHTTPClient) Do(ctx context.Context, method, url string, body io.Reader, headers interfaces.Headers) (interfaces.Response, error) {
	m.mu.Lock()
	m.requests = append(m.requests, url)
	m.mu.Unlock()

	if m.doFunc != nil {
		return m.doFunc(ctx, method, url, headers)
	}
	return &mockResponse{statusCode: http.StatusNotFound}, nil
}

func (m *mockHTTPClient) calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.requests...)
}

// mockResponse is a mock implementation of the Response interface
type mockResponse struct {
	statusCode int
	body       string
	headers    map[string]string
}

func (m *mockResponse) StatusCode() int {
	return m.statusCode
}

func (m *mockResponse) Body() io.ReadCloser {
	return io.NopCloser(strings.NewReader(m.body))
}

func (m *mockResponse) Header(key string) string {
	if m.headers != nil {
		return m.headers[key]
	}
	return ""
}

func jsonResponse(status int, body string) *mockResponse {
	return &mockResponse{
		statusCode: status,
		body:       body,
		headers:    map[string]string{"Content-Type": "application/json"},
	}
}

// mockLogger records messages by level
type mockLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

type logEntry struct {
	level  string
	msg    string
	fields map[string]interface{}
}

func (m *mockLogger) record(level, msg string, fields map[string]interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, logEntry{level: level, msg: msg, fields: fields})
}

func (m *mockLogger) Debug(msg string, fields map[string]interface{}) { m.record("debug", msg, fields) }
func (m *mockLogger) Info(msg string, fields map[string]interface{})  { m.record("info", msg, fields) }
func (m *mockLogger) Warn(msg string, fields map[string]interface{})  { m.record("warn", msg, fields) }
func (m *mockLogger) Error(msg string, fields map[string]interface{}) { m.record("error", msg, fields) }

func (m *mockLogger) count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.entries {
		if e.level == level {
			n++
		}
	}
	return n
}

// stubFetcher answers Fetch from a fixed table and records call order
type stubFetcher struct {
	results map[string]*domain.ExtractResult
	called  []string
}

func (s *stubFetcher) Fetch(ctx context.Context, url string) (*domain.ExtractResult, bool) {
	s.called = append(s.called, url)
	if r, ok := s.results[url]; ok {
		return r, true
	}
	return nil, false
}

// stubStrategy is a Strategy with a canned answer
type stubStrategy struct {
	name   string
	result *domain.ExtractResult
	calls  int
}

func (s *stubStrategy) Name() string { return s.name }

func (s *stubStrategy) Try(ctx context.Context, url string) (*domain.ExtractResult, bool) {
	s.calls++
	if s.result == nil {
		return nil, false
	}
	return s.result, true
}

func newDeps(client interfaces.HTTPClient) (interfaces.Dependencies, *mockLogger) {
	logger := &mockLogger{}
	return interfaces.Dependencies{HTTPClient: client, Logger: logger}, logger
}

func longText(n int) string {
	return strings.Repeat("a", n)
}
