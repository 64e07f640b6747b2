// ABOUTME: Response DTOs for digest and extraction API endpoints
// ABOUTME: Provides structured responses with JSON serialization

package responses

import (
	"time"

	"linkdigest-api/core/domain"
)

// DigestResponse represents a freshly generated digest awaiting save or discard
type DigestResponse struct {
	Token        string        `json:"token" doc:"Handle for the save, discard and preview endpoints"`
	SourceURL    string        `json:"source_url,omitempty" doc:"Page the content was read from; empty for plain text"`
	PersistedURL string        `json:"persisted_url" doc:"Where the rendered digest was written"`
	Digest       domain.Digest `json:"digest" doc:"Structured summary"`
}

// DigestEntryResponse represents a cached digest preview
type DigestEntryResponse struct {
	Token        string        `json:"token" doc:"Entry token"`
	SourceURL    string        `json:"source_url,omitempty" doc:"Original source URL"`
	PersistedURL string        `json:"persisted_url" doc:"Where the rendered digest was written"`
	ExpiresAt    time.Time     `json:"expires_at" doc:"When the entry stops being retrievable"`
	Digest       domain.Digest `json:"digest" doc:"Structured summary"`
}

// SaveDigestResponse represents the result of an explicit save
type SaveDigestResponse struct {
	URL string `json:"url" doc:"Persisted document URL"`
}

// ExtractResponse represents resolved content without summarization
type ExtractResponse struct {
	Title     string `json:"title,omitempty" doc:"Title of the resolved content, when known"`
	URL       string `json:"url,omitempty" doc:"Page the content came from; empty for plain text"`
	Content   string `json:"content" doc:"Clean text"`
	Length    int    `json:"length" doc:"Content length in characters"`
	PlainText bool   `json:"plain_text" doc:"True when the input was not a URL"`
}
