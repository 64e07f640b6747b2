// ABOUTME: Claude summarizer calls the Anthropic Messages API over the shared HTTP client
// ABOUTME: Parses the first text block of the reply into a digest

package claude

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"linkdigest-api/core/domain"
	coreerrors "linkdigest-api/core/errors"
	"linkdigest-api/core/interfaces"
	"linkdigest-api/infrastructure/llm/prompt"
)

const (
	// Name identifies this backend in configuration and errors
	Name = "claude"

	DefaultBaseURL   = "https://api.anthropic.com"
	DefaultModel     = "claude-sonnet-4-20250514"
	DefaultMaxTokens = 4096
	DefaultTimeout   = 120 * time.Second

	apiVersion = "2023-06-01"
)

// Config configures the Anthropic backend
type Config struct {
	APIKey    string
	BaseURL   string
	Model     string
	MaxTokens int
	Timeout   time.Duration
	Language  string
}

// Provider implements interfaces.Summarizer
type Provider struct {
	deps   interfaces.Dependencies
	cfg    Config
	system string
}

// NewProvider creates a Claude summarizer, filling config defaults
func NewProvider(deps interfaces.Dependencies, cfg Config) *Provider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Provider{deps: deps, cfg: cfg, system: prompt.System(cfg.Language)}
}

type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesResponse struct {
	Content []contentBlock `json:"content"`
	Error   *apiError      `json:"error,omitempty"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type apiError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Name returns the backend name
func (p *Provider) Name() string {
	return Name
}

// Summarize asks Claude for a digest of content
func (p *Provider) Summarize(ctx context.Context, content string) (*domain.Digest, error) {
	p.deps.Logger.Info("Requesting summary", map[string]interface{}{
		"provider": Name,
		"model":    p.cfg.Model,
	})

	text, err := p.call(ctx, content)
	if err != nil {
		return nil, err
	}

	digest, err := domain.ParseDigest(text)
	if err != nil {
		return nil, fmt.Errorf("claude: %w", err)
	}

	p.deps.Logger.Info("Summary generated", map[string]interface{}{
		"provider": Name,
		"title":    digest.Title,
	})
	return digest, nil
}

func (p *Provider) call(ctx context.Context, content string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	body, err := json.Marshal(messagesRequest{
		Model:     p.cfg.Model,
		MaxTokens: p.cfg.MaxTokens,
		System:    p.system,
		Messages:  []message{{Role: "user", Content: prompt.User(content)}},
	})
	if err != nil {
		return "", fmt.Errorf("claude: failed to marshal request: %w", err)
	}

	resp, err := p.deps.HTTPClient.Post(ctx, p.cfg.BaseURL+"/v1/messages", bytes.NewReader(body), interfaces.Headers{
		"x-api-key":         p.cfg.APIKey,
		"anthropic-version": apiVersion,
	})
	if err != nil {
		return "", fmt.Errorf("claude: request failed: %w", err)
	}
	defer resp.Body().Close()

	raw, err := io.ReadAll(resp.Body())
	if err != nil {
		return "", fmt.Errorf("claude: failed to read response: %w", err)
	}

	var parsed messagesResponse
	jsonErr := json.Unmarshal(raw, &parsed)

	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		msg := strings.TrimSpace(string(raw))
		if jsonErr == nil && parsed.Error != nil {
			msg = parsed.Error.Type + ": " + parsed.Error.Message
		}
		return "", &coreerrors.ExternalAPIError{API: Name, StatusCode: resp.StatusCode(), Message: msg}
	}
	if jsonErr != nil {
		return "", fmt.Errorf("claude: failed to parse response: %w", jsonErr)
	}

	for _, block := range parsed.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("claude: %w", domain.ErrEmptyResponse)
}
