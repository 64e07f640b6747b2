// ABOUTME: Cache entry domain model pairs a digest with its persisted document
// ABOUTME: Provides expiration checking for short-lived digest previews

package domain

import "time"

// PersistedDocument locates a rendered digest in the document store
type PersistedDocument struct {
	// URL is the human-facing link to the document
	URL string `json:"url"`

	// Path is the store-relative path used for deletion
	Path string `json:"path"`
}

// CacheEntry is a digest awaiting an explicit save or discard
type CacheEntry struct {
	Digest        Digest    `json:"digest"`
	SourceURL     string    `json:"sourceUrl"`
	PersistedURL  string    `json:"persistedUrl"`
	PersistedPath string    `json:"persistedPath"`
	ExpiresAt     time.Time `json:"expiresAt"`
}

// IsExpired checks whether the entry is past its expiry at the given instant
func (e *CacheEntry) IsExpired(now time.Time) bool {
	return now.After(e.ExpiresAt)
}
