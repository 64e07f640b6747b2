package config

import (
	"os"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestLoadFromEnv_Defaults(t *testing.T) {
	os.Clearenv()

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}

	if cfg.Server.Port != "8000" {
		t.Errorf("Port = %v, want %v", cfg.Server.Port, "8000")
	}
	if !reflect.DeepEqual(cfg.Server.AllowedOrigins, []string{"*"}) {
		t.Errorf("AllowedOrigins = %v, want [*]", cfg.Server.AllowedOrigins)
	}
	if cfg.Extraction.PostLookupBaseURL != "https://api.fxtwitter.com" {
		t.Errorf("PostLookupBaseURL = %v", cfg.Extraction.PostLookupBaseURL)
	}
	if cfg.Extraction.ContentAPIBaseURL != "https://r.jina.ai" {
		t.Errorf("ContentAPIBaseURL = %v", cfg.Extraction.ContentAPIBaseURL)
	}
	if cfg.Extraction.OEmbedEndpoint != "https://publish.twitter.com/oembed" {
		t.Errorf("OEmbedEndpoint = %v", cfg.Extraction.OEmbedEndpoint)
	}
	if cfg.Extraction.LookupTimeout != 10*time.Second {
		t.Errorf("LookupTimeout = %v, want 10s", cfg.Extraction.LookupTimeout)
	}
	if cfg.Extraction.FetchTimeout != 15*time.Second {
		t.Errorf("FetchTimeout = %v, want 15s", cfg.Extraction.FetchTimeout)
	}
	if cfg.LLM.Provider != "claude" {
		t.Errorf("Provider = %v, want claude", cfg.LLM.Provider)
	}
	if cfg.LLM.Language != "English" {
		t.Errorf("Language = %v, want English", cfg.LLM.Language)
	}
	if cfg.GitHub.Dir != "98-summaries" {
		t.Errorf("Dir = %v, want 98-summaries", cfg.GitHub.Dir)
	}
	if cfg.Digest.TTLSeconds != 600 {
		t.Errorf("TTLSeconds = %v, want 600", cfg.Digest.TTLSeconds)
	}
	if cfg.DigestTTL() != 10*time.Minute {
		t.Errorf("DigestTTL() = %v, want 10m", cfg.DigestTTL())
	}
	if cfg.Digest.SweepSchedule != "" {
		t.Errorf("SweepSchedule = %v, want empty", cfg.Digest.SweepSchedule)
	}
	if cfg.HTTP.RatePerSecond != 0 {
		t.Errorf("RatePerSecond = %v, want 0", cfg.HTTP.RatePerSecond)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "text" {
		t.Errorf("Log = %+v, want info/text", cfg.Log)
	}
	if cfg.FeatureFlagPrefix != "FEATURE_" {
		t.Errorf("FeatureFlagPrefix = %v, want FEATURE_", cfg.FeatureFlagPrefix)
	}
}

func TestLoadFromEnv_CustomValues(t *testing.T) {
	os.Clearenv()
	os.Setenv("PORT", "9090")
	os.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	os.Setenv("LLM_PROVIDER", "Gemini")
	os.Setenv("GEMINI_API_KEY", "g-key")
	os.Setenv("SUMMARY_LANGUAGE", "Korean")
	os.Setenv("GITHUB_REPO", "me/notes")
	os.Setenv("DIGEST_TTL_SECONDS", "30")
	os.Setenv("DIGEST_SWEEP_SCHEDULE", "@every 1m")
	os.Setenv("HTTP_RATE_PER_SECOND", "2.5")
	os.Setenv("LOG_FORMAT", "json")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("Port = %v, want 9090", cfg.Server.Port)
	}
	if !reflect.DeepEqual(cfg.Server.AllowedOrigins, []string{"https://a.example", "https://b.example"}) {
		t.Errorf("AllowedOrigins = %v", cfg.Server.AllowedOrigins)
	}
	if cfg.LLM.Provider != "gemini" {
		t.Errorf("Provider = %v, want gemini", cfg.LLM.Provider)
	}
	if cfg.LLM.GeminiAPIKey != "g-key" {
		t.Errorf("GeminiAPIKey = %v, want g-key", cfg.LLM.GeminiAPIKey)
	}
	if cfg.LLM.Language != "Korean" {
		t.Errorf("Language = %v, want Korean", cfg.LLM.Language)
	}
	if cfg.GitHub.Repo != "me/notes" {
		t.Errorf("Repo = %v, want me/notes", cfg.GitHub.Repo)
	}
	if cfg.DigestTTL() != 30*time.Second {
		t.Errorf("DigestTTL() = %v, want 30s", cfg.DigestTTL())
	}
	if cfg.Digest.SweepSchedule != "@every 1m" {
		t.Errorf("SweepSchedule = %v", cfg.Digest.SweepSchedule)
	}
	if cfg.HTTP.RatePerSecond != 2.5 {
		t.Errorf("RatePerSecond = %v, want 2.5", cfg.HTTP.RatePerSecond)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("Log.Format = %v, want json", cfg.Log.Format)
	}
}

func TestLoadFromEnv_InvalidNumbers(t *testing.T) {
	os.Clearenv()
	os.Setenv("DIGEST_TTL_SECONDS", "not-a-number")
	os.Setenv("HTTP_RATE_PER_SECOND", "fast")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}

	// Should use default values when parsing fails
	if cfg.Digest.TTLSeconds != 600 {
		t.Errorf("TTLSeconds = %v, want %v (default)", cfg.Digest.TTLSeconds, 600)
	}
	if cfg.HTTP.RatePerSecond != 0 {
		t.Errorf("RatePerSecond = %v, want 0 (default)", cfg.HTTP.RatePerSecond)
	}
}

func validConfig() Config {
	return Config{
		Server: ServerConfig{Port: "8000"},
		LLM:    LLMConfig{Provider: "claude", AnthropicAPIKey: "a-key"},
		GitHub: GitHubConfig{Token: "tok", Repo: "me/notes"},
		Digest: DigestConfig{TTLSeconds: 600},
		Log:    LogConfig{Format: "text"},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name: "gemini primary with only gemini key",
			mutate: func(c *Config) {
				c.LLM = LLMConfig{Provider: "gemini", GeminiAPIKey: "g-key"}
			},
			wantErr: false,
		},
		{
			name:    "valid sweep schedule",
			mutate:  func(c *Config) { c.Digest.SweepSchedule = "*/5 * * * *" },
			wantErr: false,
		},
		{
			name:    "empty port",
			mutate:  func(c *Config) { c.Server.Port = "" },
			wantErr: true,
			errMsg:  "port cannot be empty",
		},
		{
			name:    "unknown provider",
			mutate:  func(c *Config) { c.LLM.Provider = "openai" },
			wantErr: true,
			errMsg:  "llm provider must be 'claude' or 'gemini'",
		},
		{
			name:    "claude primary without key",
			mutate:  func(c *Config) { c.LLM.AnthropicAPIKey = "" },
			wantErr: true,
			errMsg:  "ANTHROPIC_API_KEY is required when claude is the primary provider",
		},
		{
			name:    "gemini primary without key",
			mutate:  func(c *Config) { c.LLM.Provider = "gemini" },
			wantErr: true,
			errMsg:  "GEMINI_API_KEY is required when gemini is the primary provider",
		},
		{
			name:    "missing github token",
			mutate:  func(c *Config) { c.GitHub.Token = "" },
			wantErr: true,
			errMsg:  "github token cannot be empty",
		},
		{
			name:    "malformed github repo",
			mutate:  func(c *Config) { c.GitHub.Repo = "notes" },
			wantErr: true,
			errMsg:  "github repo must be in owner/name form",
		},
		{
			name:    "github repo with extra segment",
			mutate:  func(c *Config) { c.GitHub.Repo = "me/notes/extra" },
			wantErr: true,
			errMsg:  "github repo must be in owner/name form",
		},
		{
			name:    "ttl less than 1",
			mutate:  func(c *Config) { c.Digest.TTLSeconds = 0 },
			wantErr: true,
			errMsg:  "digest ttl must be at least 1 second",
		},
		{
			name:    "invalid sweep schedule",
			mutate:  func(c *Config) { c.Digest.SweepSchedule = "every so often" },
			wantErr: true,
			errMsg:  "invalid digest sweep schedule",
		},
		{
			name:    "negative rate",
			mutate:  func(c *Config) { c.HTTP.RatePerSecond = -1 },
			wantErr: true,
			errMsg:  "http rate cannot be negative",
		},
		{
			name:    "invalid log format",
			mutate:  func(c *Config) { c.Log.Format = "xml" },
			wantErr: true,
			errMsg:  "log format must be 'text' or 'json'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if err != nil && tt.errMsg != "" && !strings.HasPrefix(err.Error(), tt.errMsg) {
				t.Errorf("Validate() error = %v, want %v", err.Error(), tt.errMsg)
			}
		})
	}
}

func TestConfig_ValidateLLM_IgnoresStore(t *testing.T) {
	cfg := Config{LLM: LLMConfig{Provider: "claude", AnthropicAPIKey: "a-key"}}

	if err := cfg.ValidateLLM(); err != nil {
		t.Errorf("ValidateLLM() error = %v, want nil", err)
	}
}
