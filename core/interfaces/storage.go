// ABOUTME: Storage interfaces for persisting rendered digests
// ABOUTME: Defines the two operations consumed from the remote document store

package interfaces

import (
	"context"

	"linkdigest-api/core/domain"
)

// DocumentStore persists rendered digests outside the process
type DocumentStore interface {
	// Save renders and writes the digest, returning where it landed
	Save(ctx context.Context, digest *domain.Digest, sourceURL string) (*domain.PersistedDocument, error)

	// Delete removes a previously saved document by its store path
	Delete(ctx context.Context, path string) error
}
