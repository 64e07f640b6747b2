// ABOUTME: Summary orchestrator runs a primary summarizer and falls back to a second one
// ABOUTME: Aggregates both failures into one ProviderError when neither backend succeeds

package summary

import (
	"context"
	"fmt"
	"strings"

	"linkdigest-api/core/domain"
	coreerrors "linkdigest-api/core/errors"
	"linkdigest-api/core/interfaces"
)

// Orchestrator implements interfaces.Summarizer over a primary/fallback pair
type Orchestrator struct {
	logger   interfaces.Logger
	primary  interfaces.Summarizer
	fallback interfaces.Summarizer
}

// NewOrchestrator picks the summarizer named preferred as primary and the
// other as fallback. An empty preferred keeps a as primary.
func NewOrchestrator(logger interfaces.Logger, preferred string, a, b interfaces.Summarizer) (*Orchestrator, error) {
	if a == nil || b == nil {
		return nil, &coreerrors.ValidationError{Field: "providers", Message: "two summarizers are required"}
	}

	o := &Orchestrator{logger: logger, primary: a, fallback: b}
	switch strings.ToLower(strings.TrimSpace(preferred)) {
	case "", strings.ToLower(a.Name()):
	case strings.ToLower(b.Name()):
		o.primary, o.fallback = b, a
	default:
		return nil, &coreerrors.ValidationError{
			Field:   "provider",
			Message: fmt.Sprintf("unknown provider %q (expected %s or %s)", preferred, a.Name(), b.Name()),
		}
	}
	return o, nil
}

// Name reports the pair as primary>fallback
func (o *Orchestrator) Name() string {
	return o.primary.Name() + ">" + o.fallback.Name()
}

// Summarize tries the primary and then the fallback with identical content
func (o *Orchestrator) Summarize(ctx context.Context, content string) (*domain.Digest, error) {
	digest, primaryErr := o.primary.Summarize(ctx, content)
	if primaryErr == nil {
		return digest, nil
	}

	o.logger.Warn("Primary summarizer failed, trying fallback", map[string]interface{}{
		"primary":  o.primary.Name(),
		"fallback": o.fallback.Name(),
		"error":    primaryErr.Error(),
	})

	digest, fallbackErr := o.fallback.Summarize(ctx, content)
	if fallbackErr == nil {
		return digest, nil
	}

	err := &coreerrors.ProviderError{
		Primary:     o.primary.Name(),
		PrimaryErr:  primaryErr,
		Fallback:    o.fallback.Name(),
		FallbackErr: fallbackErr,
	}
	o.logger.Error("All summarizers failed", map[string]interface{}{
		"error": err.Error(),
	})
	return nil, err
}
