// ABOUTME: Local extraction strategy fetches the page directly and runs readability on it
// ABOUTME: Converts the article body to markdown so structure survives into the summary

package extract

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"regexp"
	"strings"
	"time"

	"linkdigest-api/core/domain"
	"linkdigest-api/core/interfaces"

	md "github.com/JohannesKaufmann/html-to-markdown"
	readability "github.com/go-shiori/go-readability"
)

// DefaultLocalTimeout bounds the direct page fetch
const DefaultLocalTimeout = 10 * time.Second

var (
	manyNewlines     = regexp.MustCompile(`\n{3,}`)
	trailingSpaces   = regexp.MustCompile(`[ \t]+\n`)
	leadingSpaces    = regexp.MustCompile(`\n[ \t]+`)
	headerNeedsBreak = regexp.MustCompile(`\n(#{1,6} )`)
)

// LocalStrategy extracts readable content without a remote reader API
type LocalStrategy struct {
	deps      interfaces.Dependencies
	timeout   time.Duration
	converter *md.Converter
}

// NewLocalStrategy creates a local readability strategy
func NewLocalStrategy(deps interfaces.Dependencies, timeout time.Duration) *LocalStrategy {
	if timeout <= 0 {
		timeout = DefaultLocalTimeout
	}
	return &LocalStrategy{
		deps:      deps,
		timeout:   timeout,
		converter: md.NewConverter("", true, nil),
	}
}

// Name identifies the strategy in logs
func (s *LocalStrategy) Name() string {
	return "local-readability"
}

// Try fetches pageURL and extracts its main article. Post URLs are skipped
// since their pages render client-side.
func (s *LocalStrategy) Try(ctx context.Context, pageURL string) (*domain.ExtractResult, bool) {
	if postHosts[hostname(pageURL)] {
		return nil, false
	}

	article, err := s.fetchArticle(ctx, pageURL)
	if err != nil {
		s.deps.Logger.Warn("Local extraction failed", map[string]interface{}{
			"url":   pageURL,
			"error": err.Error(),
		})
		return nil, false
	}

	text := strings.TrimSpace(article.TextContent)
	if article.Content != "" {
		markdown, err := s.converter.ConvertString(article.Content)
		if err != nil {
			s.deps.Logger.Debug("Failed to convert HTML to markdown", map[string]interface{}{
				"url":   pageURL,
				"error": err.Error(),
			})
		} else {
			text = cleanMarkdown(markdown)
		}
	}

	content, ok := NormalizeContent(text)
	if !ok {
		s.deps.Logger.Warn("Local extraction returned too little text", map[string]interface{}{
			"url": pageURL,
		})
		return nil, false
	}

	return &domain.ExtractResult{
		Title:   article.Title,
		Content: content,
		URL:     pageURL,
	}, true
}

func (s *LocalStrategy) fetchArticle(ctx context.Context, pageURL string) (readability.Article, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	parsed, err := url.Parse(pageURL)
	if err != nil {
		return readability.Article{}, err
	}

	resp, err := s.deps.HTTPClient.Get(ctx, pageURL, interfaces.Headers{
		"Accept": "text/html,application/xhtml+xml",
	})
	if err != nil {
		return readability.Article{}, err
	}
	defer resp.Body().Close()

	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		return readability.Article{}, fmt.Errorf("HTTP %d", resp.StatusCode())
	}
	if ct := resp.Header("Content-Type"); ct != "" && !IsExtractableContentType(ct) {
		return readability.Article{}, fmt.Errorf("unsupported content type %q", ct)
	}

	return readability.FromReader(io.LimitReader(resp.Body(), maxResponseBytes), parsed)
}

// IsExtractableContentType accepts text/* and XHTML media types
func IsExtractableContentType(contentType string) bool {
	mediaType := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	return strings.HasPrefix(mediaType, "text/") || mediaType == "application/xhtml+xml"
}

// cleanMarkdown normalises line endings and blank-line runs
func cleanMarkdown(markdown string) string {
	markdown = strings.ReplaceAll(markdown, "\r\n", "\n")
	markdown = strings.ReplaceAll(markdown, "\r", "\n")
	markdown = manyNewlines.ReplaceAllString(markdown, "\n\n")
	markdown = trailingSpaces.ReplaceAllString(markdown, "\n")
	markdown = leadingSpaces.ReplaceAllString(markdown, "\n")
	markdown = headerNeedsBreak.ReplaceAllString(markdown, "\n\n$1")
	markdown = manyNewlines.ReplaceAllString(markdown, "\n\n")
	return strings.TrimSpace(markdown)
}
