package handlers

import (
	"context"

	"linkdigest-api/core/domain"
	"linkdigest-api/core/interfaces"
)

// mockDigestService is a mock implementation of the digest service
type mockDigestService struct {
	processFunc    func(ctx context.Context, input string) (*interfaces.DigestResult, error)
	regenerateFunc func(ctx context.Context, input string) (*interfaces.DigestResult, error)
	getFunc        func(token string) (*domain.CacheEntry, error)
	saveFunc       func(ctx context.Context, token, override string) (string, error)
	discarded      []string
}

func (m *mockDigestService) Process(ctx context.Context, input string) (*interfaces.DigestResult, error) {
	if m.processFunc != nil {
		return m.processFunc(ctx, input)
	}
	return nil, nil
}

func (m *mockDigestService) Regenerate(ctx context.Context, input string) (*interfaces.DigestResult, error) {
	if m.regenerateFunc != nil {
		return m.regenerateFunc(ctx, input)
	}
	return nil, nil
}

func (m *mockDigestService) Get(token string) (*domain.CacheEntry, error) {
	if m.getFunc != nil {
		return m.getFunc(token)
	}
	return nil, nil
}

func (m *mockDigestService) SaveAndClear(ctx context.Context, token, override string) (string, error) {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, token, override)
	}
	return "", nil
}

func (m *mockDigestService) Discard(ctx context.Context, token string) {
	m.discarded = append(m.discarded, token)
}

// mockExtractor is a mock implementation of the extraction pipeline
type mockExtractor struct {
	extractFunc func(ctx context.Context, input string) (*domain.ExtractResult, error)
}

func (m *mockExtractor) Extract(ctx context.Context, input string) (*domain.ExtractResult, error) {
	if m.extractFunc != nil {
		return m.extractFunc(ctx, input)
	}
	return nil, nil
}
