// ABOUTME: Extraction pipeline resolves input text to clean content
// ABOUTME: Runs an ordered list of strategies until one yields a result

package extract

import (
	"context"
	"strings"

	"linkdigest-api/core/domain"
	coreerrors "linkdigest-api/core/errors"
	"linkdigest-api/core/interfaces"
	"linkdigest-api/pkg/featureflags"
)

// Strategy is one way of turning a URL into content.
// A false result means "try the next strategy", never a terminal failure.
type Strategy interface {
	Name() string
	Try(ctx context.Context, url string) (*domain.ExtractResult, bool)
}

// Pipeline implements interfaces.Extractor
type Pipeline struct {
	logger     interfaces.Logger
	strategies []Strategy
}

// NewPipeline creates a pipeline that tries strategies in the given order
func NewPipeline(logger interfaces.Logger, strategies ...Strategy) *Pipeline {
	return &Pipeline{
		logger:     logger,
		strategies: strategies,
	}
}

// Strategies returns the strategy names in execution order
func (p *Pipeline) Strategies() []string {
	names := make([]string, len(p.strategies))
	for i, s := range p.strategies {
		names[i] = s.Name()
	}
	return names
}

// Extract resolves input. Non-URL input is returned untouched; URLs go
// through every strategy in order and fail with an ExtractionError once all
// of them have been exhausted.
func (p *Pipeline) Extract(ctx context.Context, input string) (*domain.ExtractResult, error) {
	target := strings.TrimSpace(input)
	if !IsURL(target) {
		p.logger.Debug("Input is plain text", nil)
		return &domain.ExtractResult{Content: input}, nil
	}

	for _, s := range p.strategies {
		if err := ctx.Err(); err != nil {
			break
		}
		if result, ok := s.Try(ctx, target); ok {
			p.logger.Info("Extraction succeeded", map[string]interface{}{
				"input":    target,
				"strategy": s.Name(),
				"url":      result.URL,
			})
			return result, nil
		}
	}

	p.logger.Error("All extraction strategies failed", map[string]interface{}{
		"input": target,
	})
	return nil, &coreerrors.ExtractionError{Input: input}
}

// gatedStrategy only runs while its feature flag is enabled
type gatedStrategy struct {
	Strategy
	flags featureflags.Manager
	flag  featureflags.FeatureFlag
}

// WhenEnabled wraps s so it is skipped while flag is disabled
func WhenEnabled(flags featureflags.Manager, flag featureflags.FeatureFlag, s Strategy) Strategy {
	return &gatedStrategy{Strategy: s, flags: flags, flag: flag}
}

// Try runs the wrapped strategy if its flag is on
func (g *gatedStrategy) Try(ctx context.Context, url string) (*domain.ExtractResult, bool) {
	if !g.flags.IsEnabled(ctx, g.flag) {
		return nil, false
	}
	return g.Strategy.Try(ctx, url)
}
