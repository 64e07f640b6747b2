// ABOUTME: Custom error types for the core business logic
// ABOUTME: Separates soft extraction failures from terminal and cache-miss errors

package errors

import (
	"errors"
	"fmt"
)

// NotFoundError represents a resource not found error
type NotFoundError struct {
	Resource string
	ID       string

	// Expirable marks resources that disappear on their own after a TTL
	Expirable bool
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	if e.Expirable {
		return fmt.Sprintf("%s not found or expired: %s", e.Resource, e.ID)
	}
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// ExternalAPIError represents an error from an external API
type ExternalAPIError struct {
	StatusCode int
	Message    string
	API        string
}

// Error implements the error interface
func (e *ExternalAPIError) Error() string {
	return fmt.Sprintf("external API error from %s: %d - %s", e.API, e.StatusCode, e.Message)
}

// ExtractionError is returned once every extraction strategy failed for an input
type ExtractionError struct {
	Input string
}

// Error implements the error interface
func (e *ExtractionError) Error() string {
	return fmt.Sprintf("all extraction strategies failed: %s", e.Input)
}

// ProviderError aggregates the failures of the primary and fallback summarizers
type ProviderError struct {
	Primary     string
	PrimaryErr  error
	Fallback    string
	FallbackErr error
}

// Error implements the error interface
func (e *ProviderError) Error() string {
	return fmt.Sprintf("all summarization providers failed. primary (%s): %v, fallback (%s): %v",
		e.Primary, e.PrimaryErr, e.Fallback, e.FallbackErr)
}

// Unwrap exposes both provider failures to errors.Is and errors.As
func (e *ProviderError) Unwrap() []error {
	return []error{e.PrimaryErr, e.FallbackErr}
}

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsExternalAPI checks if an error is an ExternalAPIError
func IsExternalAPI(err error) bool {
	var apiErr *ExternalAPIError
	return errors.As(err, &apiErr)
}

// IsExtraction checks if an error is an ExtractionError
func IsExtraction(err error) bool {
	var extractErr *ExtractionError
	return errors.As(err, &extractErr)
}

// IsProvider checks if an error is a ProviderError
func IsProvider(err error) bool {
	var providerErr *ProviderError
	return errors.As(err, &providerErr)
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
