// Package core contains the business logic for the link digest service.
// It is designed to be framework-agnostic and can be used independently
// of any web framework or infrastructure concerns.
//
// The core package is organized into several sub-packages:
//
// - domain: Pure domain models (ExtractResult, Digest, CacheEntry)
// - extract: URL classification, post resolution and the extraction pipeline
// - summary: Primary/fallback orchestration over two summarizers
// - digest: Pending digest cache and the create/save/discard/regenerate flow
// - workers: Scheduled eviction of expired pending digests
// - errors: Custom error types for better error handling
// - interfaces: Contracts for external dependencies (HTTP, logger, store, summarizers)
//
// # Design Principles
//
// - All external dependencies are injected via interfaces
// - Extraction strategies fail softly; only exhaustion is an error
// - Business logic is testable in isolation
//
// # Usage Example
//
//	deps := interfaces.Dependencies{
//	    HTTPClient: myHTTPClient, // implements interfaces.HTTPClient
//	    Logger:     myLogger,     // implements interfaces.Logger
//	}
//
//	fetcher := extract.NewFetcher(deps, extract.FetcherConfig{BaseURL: "https://r.jina.ai"})
//	pipeline := extract.NewPipeline(deps.Logger,
//	    extract.NewSocialResolver(deps, fetcher, extract.SocialResolverConfig{BaseURL: "https://api.fxtwitter.com"}),
//	    fetcher,
//	)
//
//	service := digest.NewService(pipeline, summarizer, store, digest.NewCache(digest.DefaultTTL), deps.Logger)
//	result, err := service.Process(ctx, "https://example.com/article")
package core
