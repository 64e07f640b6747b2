// Package infrastructure provides concrete implementations of the interfaces
// defined in the core package. These implementations handle external concerns
// such as HTTP communication, language model calls, persistence and logging.
//
// The infrastructure package is organized by technical concern:
//
// - http/standard: net/http client with per-call headers and outbound pacing
// - llm/claude: Messages API summarizer
// - llm/gemini: Gemini summarizer on the genai SDK
// - llm/prompt: System and user prompts shared by both summarizers
// - logger/structured: logrus-backed logger with optional file rotation
// - store/github: Markdown notes written through the GitHub contents API
//
// # Example
//
//	client := standard.NewStandardHTTPClient(30*time.Second, standard.WithRateLimit(5, 2))
//	logger := structured.New(structured.Options{Level: "info", Format: "json"})
//	deps := interfaces.Dependencies{HTTPClient: client, Logger: logger}
//
//	store := github.NewStore(deps, github.Config{Token: token, Repo: "me/notes"})
//	provider := claude.NewProvider(deps, claude.Config{APIKey: key})
package infrastructure
