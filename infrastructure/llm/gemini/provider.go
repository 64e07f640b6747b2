// ABOUTME: Gemini summarizer calls the Gemini API through the genai SDK
// ABOUTME: Requests JSON output constrained by a digest response schema

package gemini

import (
	"context"
	"fmt"
	"sync"
	"time"

	"linkdigest-api/core/domain"
	"linkdigest-api/core/interfaces"
	"linkdigest-api/infrastructure/llm/prompt"

	"google.golang.org/genai"
)

const (
	// Name identifies this backend in configuration and errors
	Name = "gemini"

	DefaultModel   = "gemini-2.0-flash"
	DefaultTimeout = 120 * time.Second
)

// Config configures the Gemini backend
type Config struct {
	APIKey string

	// BaseURL overrides the API endpoint, mainly for tests
	BaseURL string

	Model    string
	Timeout  time.Duration
	Language string
}

// Provider implements interfaces.Summarizer
type Provider struct {
	logger interfaces.Logger
	cfg    Config
	system string

	mu     sync.Mutex
	client *genai.Client
}

// NewProvider creates a Gemini summarizer. The SDK client is built on first
// use so a missing key only fails the calls that need it.
func NewProvider(logger interfaces.Logger, cfg Config) *Provider {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Provider{logger: logger, cfg: cfg, system: prompt.System(cfg.Language)}
}

// Name returns the backend name
func (p *Provider) Name() string {
	return Name
}

func (p *Provider) getClient(ctx context.Context) (*genai.Client, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.client != nil {
		return p.client, nil
	}
	if p.cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: API key is not configured")
	}

	cc := &genai.ClientConfig{
		APIKey:  p.cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if p.cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: p.cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("gemini: failed to create client: %w", err)
	}
	p.client = client
	return client, nil
}

// Summarize asks Gemini for a digest of content
func (p *Provider) Summarize(ctx context.Context, content string) (*domain.Digest, error) {
	client, err := p.getClient(ctx)
	if err != nil {
		return nil, err
	}

	p.logger.Info("Requesting summary", map[string]interface{}{
		"provider": Name,
		"model":    p.cfg.Model,
	})

	ctx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	resp, err := client.Models.GenerateContent(ctx, p.cfg.Model, genai.Text(prompt.User(content)), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(p.system, genai.RoleUser),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    digestSchema(),
		Temperature:       genai.Ptr[float32](0.4),
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: generate content: %w", err)
	}

	digest, err := domain.ParseDigest(resp.Text())
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}

	p.logger.Info("Summary generated", map[string]interface{}{
		"provider": Name,
		"title":    digest.Title,
	})
	return digest, nil
}

func stringList(description string) *genai.Schema {
	return &genai.Schema{
		Type:        genai.TypeArray,
		Description: description,
		Items:       &genai.Schema{Type: genai.TypeString},
	}
}

// bounded caps an array schema to r items
func bounded(s *genai.Schema, r prompt.Range) *genai.Schema {
	s.MinItems = genai.Ptr(int64(r.Min))
	s.MaxItems = genai.Ptr(int64(r.Max))
	return s
}

// digestSchema mirrors domain.Digest so the model cannot drift from it
func digestSchema() *genai.Schema {
	categories := make([]string, len(domain.Categories))
	for i, c := range domain.Categories {
		categories[i] = string(c)
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title":    {Type: genai.TypeString, Description: "Short title"},
			"synopsis": {Type: genai.TypeString, Description: "One sentence synopsis"},
			"slug":     {Type: genai.TypeString, Description: "English kebab-case slug"},
			"category": {Type: genai.TypeString, Enum: categories},
			"tags":     bounded(stringList(prompt.Tags.String()+" English tags"), prompt.Tags),
			"keywords": bounded(stringList(prompt.Keywords.String()+" key terms"), prompt.Keywords),
			"concepts": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"broader":      stringList("Parent concepts"),
					"narrower":     stringList("Sub-concepts covered"),
					"related":      stringList("Adjacent concepts"),
					"prerequisite": stringList("Concepts to know first"),
					"followUp":     stringList("Concepts to study next"),
				},
				Required: []string{"broader", "narrower", "related", "prerequisite", "followUp"},
			},
			"quotes": bounded(&genai.Schema{
				Type:        genai.TypeArray,
				Description: prompt.Quotes.String() + " verbatim quotations",
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"text":   {Type: genai.TypeString},
						"reason": {Type: genai.TypeString},
					},
					Required: []string{"text", "reason"},
				},
			}, prompt.Quotes),
			"insights": bounded(&genai.Schema{
				Type:        genai.TypeArray,
				Description: prompt.Insights.String() + " insights",
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"title":       {Type: genai.TypeString},
						"description": {Type: genai.TypeString},
					},
					Required: []string{"title", "description"},
				},
			}, prompt.Insights),
			"simplified": {Type: genai.TypeString, Description: "The main idea for a newcomer"},
			"summary":    {Type: genai.TypeString, Description: "Detailed markdown summary"},
		},
		Required: []string{"title", "synopsis", "slug", "category", "tags", "keywords", "concepts", "quotes", "insights", "simplified", "summary"},
	}
}
