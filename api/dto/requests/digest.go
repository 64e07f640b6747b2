// ABOUTME: Request DTOs for digest and extraction API endpoints
// ABOUTME: Input is either a URL or free text, mirroring what a chat message carries

package requests

import "strings"

// DigestRequest represents the body for creating or regenerating a digest
type DigestRequest struct {
	// Input is a URL or plain text
	Input string `json:"input" minLength:"1" maxLength:"100000" example:"https://example.com/article" doc:"URL or plain text to summarize"`
}

// Normalize trims surrounding whitespace from the input
func (r *DigestRequest) Normalize() {
	r.Input = strings.TrimSpace(r.Input)
}

// SaveDigestRequest represents the body for saving a pending digest
type SaveDigestRequest struct {
	// SourceURL overrides the source recorded when the digest was created
	SourceURL string `json:"source_url,omitempty" format:"uri" doc:"Optional source URL to record instead of the original one"`
}

// ExtractRequest represents the body for a dry-run extraction
type ExtractRequest struct {
	Input string `json:"input" minLength:"1" maxLength:"100000" example:"https://x.com/user/status/1234567890" doc:"URL or plain text to resolve"`
}
