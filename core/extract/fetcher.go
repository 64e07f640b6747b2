// ABOUTME: Content fetcher retrieves article text for one URL through a remote reader API
// ABOUTME: Applies bearer auth, a request timeout and content length validation

package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"linkdigest-api/core/domain"
	"linkdigest-api/core/interfaces"
)

const (
	// MinContentLength is the shortest text accepted as a real extraction
	MinContentLength = 50

	// MaxContentLength bounds the text handed to the summarizer
	MaxContentLength = 15000

	// TruncationMarker is appended to content cut at MaxContentLength
	TruncationMarker = "\n\n[...truncated]"

	// DefaultFetchTimeout bounds a single reader API call
	DefaultFetchTimeout = 15 * time.Second

	maxResponseBytes = 10 << 20
)

// ContentFetcher retrieves validated content for a single URL.
// A false result is a soft failure; implementations never return errors.
type ContentFetcher interface {
	Fetch(ctx context.Context, url string) (*domain.ExtractResult, bool)
}

// FetcherConfig configures the reader API backend
type FetcherConfig struct {
	// BaseURL is the reader endpoint; the target URL is appended as a path
	BaseURL string

	// APIKey is sent as a bearer token when non-empty
	APIKey string

	// Timeout bounds each request (DefaultFetchTimeout when zero)
	Timeout time.Duration
}

// Fetcher implements ContentFetcher against a reader API that returns
// {"data": {"title": ..., "content": ...}}
type Fetcher struct {
	deps interfaces.Dependencies
	cfg  FetcherConfig
}

// NewFetcher creates a reader API fetcher
func NewFetcher(deps interfaces.Dependencies, cfg FetcherConfig) *Fetcher {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultFetchTimeout
	}
	return &Fetcher{deps: deps, cfg: cfg}
}

type readerEnvelope struct {
	Data struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	} `json:"data"`
}

// Name identifies the strategy in logs
func (f *Fetcher) Name() string {
	return "content-reader"
}

// Try adapts Fetch to the Strategy interface
func (f *Fetcher) Try(ctx context.Context, url string) (*domain.ExtractResult, bool) {
	return f.Fetch(ctx, url)
}

// Fetch retrieves content for url, returning false on any failure
func (f *Fetcher) Fetch(ctx context.Context, url string) (*domain.ExtractResult, bool) {
	ctx, cancel := context.WithTimeout(ctx, f.cfg.Timeout)
	defer cancel()

	headers := interfaces.Headers{"Accept": "application/json"}
	if f.cfg.APIKey != "" {
		headers["Authorization"] = "Bearer " + f.cfg.APIKey
	}

	resp, err := f.deps.HTTPClient.Get(ctx, f.cfg.BaseURL+"/"+url, headers)
	if err != nil {
		f.warn("Content fetch failed", url, err)
		return nil, false
	}
	defer resp.Body().Close()

	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		f.warn("Content fetch failed", url, fmt.Errorf("HTTP %d", resp.StatusCode()))
		return nil, false
	}

	var envelope readerEnvelope
	if err := json.NewDecoder(io.LimitReader(resp.Body(), maxResponseBytes)).Decode(&envelope); err != nil {
		f.warn("Content response malformed", url, err)
		return nil, false
	}

	content, ok := NormalizeContent(envelope.Data.Content)
	if !ok {
		f.warn("Content too short", url, fmt.Errorf("%d characters", utf8.RuneCountInString(envelope.Data.Content)))
		return nil, false
	}

	f.deps.Logger.Debug("Content fetched", map[string]interface{}{
		"url":   url,
		"title": envelope.Data.Title,
		"chars": utf8.RuneCountInString(content),
	})
	return &domain.ExtractResult{
		Title:   envelope.Data.Title,
		Content: content,
		URL:     url,
	}, true
}

func (f *Fetcher) warn(msg, url string, err error) {
	f.deps.Logger.Warn(msg, map[string]interface{}{
		"url":   url,
		"error": err.Error(),
	})
}

// NormalizeContent rejects content under MinContentLength characters and
// truncates content over MaxContentLength, appending TruncationMarker.
// Anything in between is returned as given.
func NormalizeContent(content string) (string, bool) {
	n := utf8.RuneCountInString(content)
	if n < MinContentLength {
		return "", false
	}
	if n <= MaxContentLength {
		return content, true
	}

	runes := []rune(content)
	return string(runes[:MaxContentLength]) + TruncationMarker, true
}
