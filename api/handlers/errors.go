// ABOUTME: Error handling utilities for API handlers
// ABOUTME: Converts domain errors to appropriate HTTP responses

package handlers

import (
	stderrors "errors"

	"linkdigest-api/core/errors"

	"github.com/danielgtaylor/huma/v2"
)

// toHumaError converts domain errors to appropriate Huma HTTP errors
func toHumaError(err error) error {
	if err == nil {
		return nil
	}

	if errors.IsNotFound(err) {
		return huma.Error404NotFound(err.Error())
	}

	if errors.IsValidation(err) {
		return huma.Error400BadRequest(err.Error())
	}

	if errors.IsExtraction(err) {
		return huma.Error422UnprocessableEntity(err.Error())
	}

	// Checked before ExternalAPIError since it unwraps to the provider failures
	if errors.IsProvider(err) {
		return huma.Error502BadGateway("Summarization failed", err)
	}

	if errors.IsExternalAPI(err) {
		var apiErr *errors.ExternalAPIError
		if stderrors.As(err, &apiErr) {
			switch {
			case apiErr.StatusCode >= 500:
				return huma.Error503ServiceUnavailable("External service error", err)
			case apiErr.StatusCode == 429:
				return huma.Error429TooManyRequests("Rate limited by external service", err)
			default:
				return huma.Error502BadGateway("External service rejected the request", err)
			}
		}
	}

	return huma.Error500InternalServerError("Internal server error", err)
}
