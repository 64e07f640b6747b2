// ABOUTME: oEmbed strategy reads a post's embed markup when no richer source exists
// ABOUTME: Converts the embed HTML to text and attributes it to the post author

package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"linkdigest-api/core/domain"
	"linkdigest-api/core/interfaces"
	"linkdigest-api/pkg/utils/html"
)

// DefaultOEmbedTimeout bounds the oEmbed call
const DefaultOEmbedTimeout = 10 * time.Second

// OEmbedConfig configures the oEmbed endpoint
type OEmbedConfig struct {
	// Endpoint is called as {Endpoint}?url={escaped post URL}
	Endpoint string

	// Timeout bounds the call (DefaultOEmbedTimeout when zero)
	Timeout time.Duration
}

// OEmbedStrategy extracts post text through the platform oEmbed endpoint
type OEmbedStrategy struct {
	deps interfaces.Dependencies
	cfg  OEmbedConfig
}

// NewOEmbedStrategy creates an oEmbed strategy
func NewOEmbedStrategy(deps interfaces.Dependencies, cfg OEmbedConfig) *OEmbedStrategy {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultOEmbedTimeout
	}
	return &OEmbedStrategy{deps: deps, cfg: cfg}
}

type oembedPayload struct {
	HTML       string `json:"html"`
	Title      string `json:"title"`
	AuthorName string `json:"author_name"`
}

// Name identifies the strategy in logs
func (s *OEmbedStrategy) Name() string {
	return "oembed"
}

// Try only handles post URLs; everything else reports false immediately
func (s *OEmbedStrategy) Try(ctx context.Context, postURL string) (*domain.ExtractResult, bool) {
	if _, ok := PostID(postURL); !ok {
		return nil, false
	}

	payload, err := s.lookup(ctx, postURL)
	if err != nil {
		s.deps.Logger.Warn("oEmbed lookup failed", map[string]interface{}{
			"url":   postURL,
			"error": err.Error(),
		})
		return nil, false
	}

	markup := payload.HTML
	if markup == "" {
		markup = payload.Title
	}
	text := html.StripHTML(markup)
	if text == "" {
		s.deps.Logger.Warn("oEmbed returned empty content", map[string]interface{}{
			"url": postURL,
		})
		return nil, false
	}

	title := ""
	if payload.AuthorName != "" {
		title = fmt.Sprintf("Post by %s", payload.AuthorName)
	}
	return &domain.ExtractResult{
		Title:   title,
		Content: text,
		URL:     postURL,
	}, true
}

func (s *OEmbedStrategy) lookup(ctx context.Context, postURL string) (*oembedPayload, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	endpoint := s.cfg.Endpoint
	if strings.Contains(endpoint, "?") {
		endpoint += "&"
	} else {
		endpoint += "?"
	}

	resp, err := s.deps.HTTPClient.Get(ctx, endpoint+"url="+url.QueryEscape(postURL), interfaces.Headers{"Accept": "application/json"})
	if err != nil {
		return nil, err
	}
	defer resp.Body().Close()

	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode())
	}

	var payload oembedPayload
	if err := json.NewDecoder(io.LimitReader(resp.Body(), maxResponseBytes)).Decode(&payload); err != nil {
		return nil, fmt.Errorf("malformed payload: %w", err)
	}
	return &payload, nil
}
