// ABOUTME: Digest service runs extraction, summarization and persistence for one input
// ABOUTME: Keeps each result in the cache until it is saved again or discarded

package digest

import (
	"context"

	"linkdigest-api/core/domain"
	coreerrors "linkdigest-api/core/errors"
	"linkdigest-api/core/interfaces"
)

// Service implements interfaces.DigestService
type Service struct {
	extractor  interfaces.Extractor
	summarizer interfaces.Summarizer
	store      interfaces.DocumentStore
	cache      *Cache
	logger     interfaces.Logger
}

// NewService creates a digest service around an injected cache
func NewService(extractor interfaces.Extractor, summarizer interfaces.Summarizer, store interfaces.DocumentStore, cache *Cache, logger interfaces.Logger) *Service {
	return &Service{
		extractor:  extractor,
		summarizer: summarizer,
		store:      store,
		cache:      cache,
		logger:     logger,
	}
}

// Process extracts, summarizes and persists input, then caches the result
// under a new token. Nothing is cached when any step fails.
func (s *Service) Process(ctx context.Context, input string) (*interfaces.DigestResult, error) {
	extracted, err := s.extractor.Extract(ctx, input)
	if err != nil {
		return nil, err
	}

	if extracted.URL != "" {
		s.logger.Info("Processing URL", map[string]interface{}{"url": extracted.URL})
	} else {
		s.logger.Info("Processing plain text input", nil)
	}

	digest, err := s.summarizer.Summarize(ctx, extracted.Content)
	if err != nil {
		return nil, err
	}

	doc, err := s.store.Save(ctx, digest, extracted.URL)
	if err != nil {
		return nil, coreerrors.WrapError(err, "failed to persist digest")
	}

	token := s.cache.Put(*digest, extracted.URL, doc.URL, doc.Path)
	s.logger.Info("Digest persisted and cached", map[string]interface{}{
		"token": token,
		"path":  doc.Path,
	})

	return &interfaces.DigestResult{
		Token:        token,
		Digest:       digest,
		SourceURL:    extracted.URL,
		PersistedURL: doc.URL,
	}, nil
}

// Regenerate runs the full flow again without consulting the cache.
// Earlier entries for the same input are left untouched.
func (s *Service) Regenerate(ctx context.Context, input string) (*interfaces.DigestResult, error) {
	s.logger.Info("Regenerating digest", nil)
	return s.Process(ctx, input)
}

// Get returns the cached entry for token
func (s *Service) Get(token string) (*domain.CacheEntry, error) {
	entry, ok := s.cache.Get(token)
	if !ok {
		return nil, notFound(token)
	}
	return entry, nil
}

// SaveAndClear persists the cached digest again, using overrideSourceURL when
// non-empty, and removes the entry. The entry is kept if the save fails.
func (s *Service) SaveAndClear(ctx context.Context, token, overrideSourceURL string) (string, error) {
	entry, ok := s.cache.Get(token)
	if !ok {
		return "", notFound(token)
	}

	sourceURL := overrideSourceURL
	if sourceURL == "" {
		sourceURL = entry.SourceURL
	}

	digest := entry.Digest
	doc, err := s.store.Save(ctx, &digest, sourceURL)
	if err != nil {
		return "", coreerrors.WrapError(err, "failed to persist digest")
	}

	s.cache.Delete(token)
	s.logger.Info("Digest saved and removed from cache", map[string]interface{}{
		"token": token,
		"path":  doc.Path,
	})
	return doc.URL, nil
}

// Discard deletes the persisted document (best effort) and drops the entry.
// Unknown or expired tokens are a no-op.
func (s *Service) Discard(ctx context.Context, token string) {
	entry, ok := s.cache.Get(token)
	if !ok {
		s.logger.Debug("Discard of unknown digest", map[string]interface{}{"token": token})
		return
	}

	if entry.PersistedPath != "" {
		if err := s.store.Delete(ctx, entry.PersistedPath); err != nil {
			s.logger.Warn("Failed to delete persisted digest", map[string]interface{}{
				"token": token,
				"path":  entry.PersistedPath,
				"error": err.Error(),
			})
		}
	}

	s.cache.Delete(token)
	s.logger.Info("Discarded digest", map[string]interface{}{"token": token})
}

func notFound(token string) error {
	return &coreerrors.NotFoundError{Resource: "digest entry", ID: token, Expirable: true}
}
