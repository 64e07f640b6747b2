// ABOUTME: Builds the application components from configuration
// ABOUTME: Shared by the HTTP server and the command line tool

package bootstrap

import (
	"net/http"

	"linkdigest-api/api/middleware"
	"linkdigest-api/core/extract"
	"linkdigest-api/core/interfaces"
	"linkdigest-api/core/summary"
	stdhttp "linkdigest-api/infrastructure/http/standard"
	"linkdigest-api/infrastructure/llm/claude"
	"linkdigest-api/infrastructure/llm/gemini"
	"linkdigest-api/infrastructure/logger/structured"
	"linkdigest-api/infrastructure/store/github"
	"linkdigest-api/pkg/config"
	"linkdigest-api/pkg/featureflags"
)

// NewLogger creates the structured logger described by cfg
func NewLogger(cfg config.LogConfig) *structured.Logger {
	return structured.New(structured.Options{
		Level:  cfg.Level,
		Format: cfg.Format,
		File:   cfg.File,
	})
}

// NewDependencies creates the shared HTTP client and bundles it with logger.
// Outbound calls are logged at debug level and paced when a rate is configured.
func NewDependencies(cfg *config.Config, logger interfaces.Logger) interfaces.Dependencies {
	client := stdhttp.NewStandardHTTPClient(cfg.HTTP.Timeout,
		stdhttp.WithRateLimit(cfg.HTTP.RatePerSecond, cfg.HTTP.Burst),
		stdhttp.WithTransport(&middleware.LoggingRoundTripper{
			Transport: http.DefaultTransport,
			Logger:    logger,
		}),
	)
	return interfaces.Dependencies{HTTPClient: client, Logger: logger}
}

// NewExtractor assembles the extraction pipeline. The post resolver and the
// content reader always run; the oEmbed and local readability strategies are
// appended behind their feature flags.
func NewExtractor(cfg *config.Config, deps interfaces.Dependencies, flags featureflags.Manager) *extract.Pipeline {
	fetcher := extract.NewFetcher(deps, extract.FetcherConfig{
		BaseURL: cfg.Extraction.ContentAPIBaseURL,
		APIKey:  cfg.Extraction.ContentAPIKey,
		Timeout: cfg.Extraction.FetchTimeout,
	})
	resolver := extract.NewSocialResolver(deps, fetcher, extract.SocialResolverConfig{
		BaseURL: cfg.Extraction.PostLookupBaseURL,
		Timeout: cfg.Extraction.LookupTimeout,
	})
	oembed := extract.NewOEmbedStrategy(deps, extract.OEmbedConfig{
		Endpoint: cfg.Extraction.OEmbedEndpoint,
		Timeout:  cfg.Extraction.LookupTimeout,
	})
	local := extract.NewLocalStrategy(deps, cfg.Extraction.FetchTimeout)

	return extract.NewPipeline(deps.Logger,
		resolver,
		fetcher,
		extract.WhenEnabled(flags, featureflags.OEmbedFallback, oembed),
		extract.WhenEnabled(flags, featureflags.LocalFallback, local),
	)
}

// NewSummarizer creates both providers and orders them by cfg.LLM.Provider
func NewSummarizer(cfg *config.Config, deps interfaces.Dependencies) (*summary.Orchestrator, error) {
	claudeProvider := claude.NewProvider(deps, claude.Config{
		APIKey:   cfg.LLM.AnthropicAPIKey,
		Model:    cfg.LLM.ClaudeModel,
		Timeout:  cfg.LLM.Timeout,
		Language: cfg.LLM.Language,
	})
	geminiProvider := gemini.NewProvider(deps.Logger, gemini.Config{
		APIKey:   cfg.LLM.GeminiAPIKey,
		Model:    cfg.LLM.GeminiModel,
		Timeout:  cfg.LLM.Timeout,
		Language: cfg.LLM.Language,
	})
	return summary.NewOrchestrator(deps.Logger, cfg.LLM.Provider, claudeProvider, geminiProvider)
}

// NewStore creates the GitHub document store
func NewStore(cfg *config.Config, deps interfaces.Dependencies) *github.Store {
	return github.NewStore(deps, github.Config{
		Token:  cfg.GitHub.Token,
		Repo:   cfg.GitHub.Repo,
		Branch: cfg.GitHub.Branch,
		Dir:    cfg.GitHub.Dir,
	})
}
