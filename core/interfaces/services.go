// ABOUTME: Service interfaces for the core business logic
// ABOUTME: Defines contracts for extraction, summarization and the digest flow

package interfaces

import (
	"context"

	"linkdigest-api/core/domain"
)

// Extractor resolves raw input text to clean content
type Extractor interface {
	Extract(ctx context.Context, input string) (*domain.ExtractResult, error)
}

// Summarizer turns content into a digest through one language model backend
type Summarizer interface {
	// Name identifies the backend in logs and aggregated errors
	Name() string

	Summarize(ctx context.Context, content string) (*domain.Digest, error)
}

// DigestResult is the outcome of one full extract-summarize-persist run
type DigestResult struct {
	Token        string
	Digest       *domain.Digest
	SourceURL    string
	PersistedURL string
}

// DigestService manages digests awaiting an explicit save or discard
type DigestService interface {
	Process(ctx context.Context, input string) (*DigestResult, error)
	Regenerate(ctx context.Context, input string) (*DigestResult, error)
	Get(token string) (*domain.CacheEntry, error)
	SaveAndClear(ctx context.Context, token, overrideSourceURL string) (string, error)
	Discard(ctx context.Context, token string)
}
