package handlers

import (
	"fmt"
	"testing"

	"linkdigest-api/core/errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
)

func TestToHumaError(t *testing.T) {
	tests := []struct {
		name           string
		input          error
		expectedStatus int
		expectedInMsg  string
	}{
		{
			name:           "nil error returns nil",
			input:          nil,
			expectedStatus: 0,
			expectedInMsg:  "",
		},
		{
			name:           "NotFoundError returns 404",
			input:          &errors.NotFoundError{Resource: "digest entry", ID: "abc", Expirable: true},
			expectedStatus: 404,
			expectedInMsg:  "digest entry not found or expired: abc",
		},
		{
			name:           "ValidationError returns 400",
			input:          &errors.ValidationError{Field: "input", Message: "required"},
			expectedStatus: 400,
			expectedInMsg:  "input",
		},
		{
			name:           "ExtractionError returns 422",
			input:          &errors.ExtractionError{Input: "https://example.com"},
			expectedStatus: 422,
			expectedInMsg:  "all extraction strategies failed",
		},
		{
			name: "ProviderError returns 502",
			input: &errors.ProviderError{
				Primary: "claude", PrimaryErr: &errors.ExternalAPIError{API: "claude", StatusCode: 500},
				Fallback: "gemini", FallbackErr: fmt.Errorf("quota"),
			},
			expectedStatus: 502,
			expectedInMsg:  "Summarization failed",
		},
		{
			name:           "ExternalAPIError with 500 returns 503",
			input:          &errors.ExternalAPIError{StatusCode: 500, Message: "server error"},
			expectedStatus: 503,
			expectedInMsg:  "External service error",
		},
		{
			name:           "ExternalAPIError with 429 returns 429",
			input:          &errors.ExternalAPIError{StatusCode: 429, Message: "rate limited"},
			expectedStatus: 429,
			expectedInMsg:  "Rate limited by external service",
		},
		{
			name:           "ExternalAPIError with 403 returns 502",
			input:          &errors.ExternalAPIError{API: "github", StatusCode: 403, Message: "forbidden"},
			expectedStatus: 502,
			expectedInMsg:  "External service rejected the request",
		},
		{
			name:           "wrapped ExternalAPIError keeps its mapping",
			input:          errors.WrapError(&errors.ExternalAPIError{StatusCode: 502}, "failed to persist digest"),
			expectedStatus: 503,
			expectedInMsg:  "External service error",
		},
		{
			name:           "wrapped NotFoundError returns 404",
			input:          fmt.Errorf("wrapped: %w", &errors.NotFoundError{Resource: "digest entry", ID: "x"}),
			expectedStatus: 404,
			expectedInMsg:  "digest entry not found",
		},
		{
			name:           "unknown error returns 500",
			input:          fmt.Errorf("some unknown error"),
			expectedStatus: 500,
			expectedInMsg:  "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := toHumaError(tt.input)

			if tt.input == nil {
				assert.Nil(t, result)
				return
			}

			humaErr, ok := result.(*huma.ErrorModel)
			assert.True(t, ok, "Expected huma.ErrorModel")
			assert.Equal(t, tt.expectedStatus, humaErr.Status)
			assert.Contains(t, humaErr.Detail, tt.expectedInMsg)
		})
	}
}
