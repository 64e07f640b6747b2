// ABOUTME: Configuration management for the application with environment variable support
// ABOUTME: Defines configuration structures for the server, extraction, providers and storage

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// Config holds all application configuration
type Config struct {
	// Server contains HTTP server configuration
	Server ServerConfig

	// Extraction contains the remote APIs used to resolve links
	Extraction ExtractionConfig

	// LLM contains summarization provider configuration
	LLM LLMConfig

	// GitHub contains the document store target
	GitHub GitHubConfig

	// Digest contains pending digest cache configuration
	Digest DigestConfig

	// HTTP contains outbound client configuration
	HTTP HTTPConfig

	// Log contains logger configuration
	Log LogConfig

	// FeatureFlagPrefix is the env prefix read by the feature flag manager
	FeatureFlagPrefix string
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Port is the HTTP server port
	Port string

	// AllowedOrigins is the CORS origin list
	AllowedOrigins []string
}

// ExtractionConfig holds the link resolution endpoints
type ExtractionConfig struct {
	PostLookupBaseURL string
	ContentAPIBaseURL string
	ContentAPIKey     string
	OEmbedEndpoint    string

	// LookupTimeout bounds post lookup and oEmbed calls
	LookupTimeout time.Duration

	// FetchTimeout bounds content API and local page fetches
	FetchTimeout time.Duration
}

// LLMConfig holds summarization provider configuration
type LLMConfig struct {
	// Provider is the primary backend (claude/gemini); the other one is the fallback
	Provider string

	AnthropicAPIKey string
	ClaudeModel     string
	GeminiAPIKey    string
	GeminiModel     string

	// Language is the output language requested from the model
	Language string

	Timeout time.Duration
}

// GitHubConfig holds the repository digests are written to
type GitHubConfig struct {
	Token  string
	Repo   string
	Branch string
	Dir    string
}

// DigestConfig holds pending digest cache configuration
type DigestConfig struct {
	// TTLSeconds is how long an unsaved digest stays retrievable
	TTLSeconds int

	// SweepSchedule is a cron expression for proactive eviction; empty disables it
	SweepSchedule string
}

// HTTPConfig holds outbound HTTP client configuration
type HTTPConfig struct {
	Timeout time.Duration

	// RatePerSecond paces outbound requests; 0 means unlimited
	RatePerSecond float64
	Burst         int
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level  string
	Format string
	File   string
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnvOrDefault("PORT", "8000"),
			AllowedOrigins: getEnvAsListOrDefault("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
		Extraction: ExtractionConfig{
			PostLookupBaseURL: getEnvOrDefault("POST_LOOKUP_BASE_URL", "https://api.fxtwitter.com"),
			ContentAPIBaseURL: getEnvOrDefault("CONTENT_API_BASE_URL", "https://r.jina.ai"),
			ContentAPIKey:     getEnvOrDefault("CONTENT_API_KEY", ""),
			OEmbedEndpoint:    getEnvOrDefault("OEMBED_ENDPOINT", "https://publish.twitter.com/oembed"),
			LookupTimeout:     time.Duration(getEnvAsIntOrDefault("LOOKUP_TIMEOUT_SECONDS", 10)) * time.Second,
			FetchTimeout:      time.Duration(getEnvAsIntOrDefault("CONTENT_TIMEOUT_SECONDS", 15)) * time.Second,
		},
		LLM: LLMConfig{
			Provider:        strings.ToLower(getEnvOrDefault("LLM_PROVIDER", "claude")),
			AnthropicAPIKey: getEnvOrDefault("ANTHROPIC_API_KEY", ""),
			ClaudeModel:     getEnvOrDefault("CLAUDE_MODEL", ""),
			GeminiAPIKey:    getEnvOrDefault("GEMINI_API_KEY", ""),
			GeminiModel:     getEnvOrDefault("GEMINI_MODEL", ""),
			Language:        getEnvOrDefault("SUMMARY_LANGUAGE", "English"),
			Timeout:         time.Duration(getEnvAsIntOrDefault("LLM_TIMEOUT_SECONDS", 120)) * time.Second,
		},
		GitHub: GitHubConfig{
			Token:  getEnvOrDefault("GITHUB_TOKEN", ""),
			Repo:   getEnvOrDefault("GITHUB_REPO", ""),
			Branch: getEnvOrDefault("GITHUB_BRANCH", ""),
			Dir:    getEnvOrDefault("SUMMARY_DIR", "98-summaries"),
		},
		Digest: DigestConfig{
			TTLSeconds:    getEnvAsIntOrDefault("DIGEST_TTL_SECONDS", 600),
			SweepSchedule: getEnvOrDefault("DIGEST_SWEEP_SCHEDULE", ""),
		},
		HTTP: HTTPConfig{
			Timeout:       time.Duration(getEnvAsIntOrDefault("HTTP_TIMEOUT_SECONDS", 180)) * time.Second,
			RatePerSecond: getEnvAsFloatOrDefault("HTTP_RATE_PER_SECOND", 0),
			Burst:         getEnvAsIntOrDefault("HTTP_RATE_BURST", 1),
		},
		Log: LogConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", "text"),
			File:   getEnvOrDefault("LOG_FILE", ""),
		},
		FeatureFlagPrefix: getEnvOrDefault("FEATURE_FLAG_PREFIX", "FEATURE_"),
	}

	return cfg, nil
}

// DigestTTL returns the cache TTL as a duration
func (c *Config) DigestTTL() time.Duration {
	return time.Duration(c.Digest.TTLSeconds) * time.Second
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the environment variable as int or a default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsFloatOrDefault returns the environment variable as float64 or a default
func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// getEnvAsListOrDefault splits a comma separated variable
func getEnvAsListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

// ValidateLLM checks the provider settings, which every entry point needs
func (c *Config) ValidateLLM() error {
	switch c.LLM.Provider {
	case "claude":
		if c.LLM.AnthropicAPIKey == "" {
			return errors.New("ANTHROPIC_API_KEY is required when claude is the primary provider")
		}
	case "gemini":
		if c.LLM.GeminiAPIKey == "" {
			return errors.New("GEMINI_API_KEY is required when gemini is the primary provider")
		}
	default:
		return errors.New("llm provider must be 'claude' or 'gemini'")
	}
	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("port cannot be empty")
	}

	if err := c.ValidateLLM(); err != nil {
		return err
	}

	if c.GitHub.Token == "" {
		return errors.New("github token cannot be empty")
	}

	owner, name, ok := strings.Cut(c.GitHub.Repo, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return errors.New("github repo must be in owner/name form")
	}

	if c.Digest.TTLSeconds < 1 {
		return errors.New("digest ttl must be at least 1 second")
	}

	if c.Digest.SweepSchedule != "" {
		if _, err := cron.ParseStandard(c.Digest.SweepSchedule); err != nil {
			return fmt.Errorf("invalid digest sweep schedule: %w", err)
		}
	}

	if c.HTTP.RatePerSecond < 0 {
		return errors.New("http rate cannot be negative")
	}

	if c.Log.Format != "text" && c.Log.Format != "json" {
		return errors.New("log format must be 'text' or 'json'")
	}

	return nil
}
