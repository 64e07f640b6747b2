// ABOUTME: Mappers for converting between domain models and API DTOs
// ABOUTME: Provides clean separation between business logic and API layer

package mappers

import (
	"unicode/utf8"

	"linkdigest-api/api/dto/responses"
	"linkdigest-api/core/domain"
	"linkdigest-api/core/interfaces"
)

// ToDigestResponse converts a service result to a DigestResponse DTO
func ToDigestResponse(result *interfaces.DigestResult) *responses.DigestResponse {
	if result == nil {
		return nil
	}

	response := &responses.DigestResponse{
		Token:        result.Token,
		SourceURL:    result.SourceURL,
		PersistedURL: result.PersistedURL,
	}
	if result.Digest != nil {
		response.Digest = *result.Digest
	}
	return response
}

// ToDigestEntryResponse converts a cache entry to a preview DTO
func ToDigestEntryResponse(token string, entry *domain.CacheEntry) *responses.DigestEntryResponse {
	if entry == nil {
		return nil
	}

	return &responses.DigestEntryResponse{
		Token:        token,
		SourceURL:    entry.SourceURL,
		PersistedURL: entry.PersistedURL,
		ExpiresAt:    entry.ExpiresAt,
		Digest:       entry.Digest,
	}
}

// ToExtractResponse converts an extraction result to its DTO
func ToExtractResponse(result *domain.ExtractResult) *responses.ExtractResponse {
	if result == nil {
		return nil
	}

	return &responses.ExtractResponse{
		Title:     result.Title,
		URL:       result.URL,
		Content:   result.Content,
		Length:    utf8.RuneCountInString(result.Content),
		PlainText: result.IsPlainText(),
	}
}
