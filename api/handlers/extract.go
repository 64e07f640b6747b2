// ABOUTME: Extraction handler for the Huma API
// ABOUTME: Resolves input to clean content without summarizing or persisting it

package handlers

import (
	"context"
	"net/http"
	"strings"

	"linkdigest-api/api/dto/mappers"
	"linkdigest-api/api/dto/requests"
	"linkdigest-api/api/dto/responses"
	"linkdigest-api/core/errors"
	"linkdigest-api/core/interfaces"

	"github.com/danielgtaylor/huma/v2"
)

// ExtractHandler handles extraction requests
type ExtractHandler struct {
	extractor interfaces.Extractor
}

// NewExtractHandler creates a new extraction handler
func NewExtractHandler(extractor interfaces.Extractor) *ExtractHandler {
	return &ExtractHandler{extractor: extractor}
}

// RegisterRoutes registers the extraction route
func (h *ExtractHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "extractContent",
		Method:      http.MethodPost,
		Path:        "/extract",
		Summary:     "Resolve content",
		Description: "Runs the extraction pipeline for a URL or text and returns the clean content",
		Tags:        []string{"Extraction"},
	}, h.Extract)
}

// ExtractInput defines the input for the Extract operation
type ExtractInput struct {
	Body requests.ExtractRequest
}

// ExtractOutput defines the output for the Extract operation
type ExtractOutput struct {
	Body responses.ExtractResponse
}

// Extract handles content resolution
func (h *ExtractHandler) Extract(ctx context.Context, input *ExtractInput) (*ExtractOutput, error) {
	if strings.TrimSpace(input.Body.Input) == "" {
		return nil, toHumaError(&errors.ValidationError{Field: "input", Message: "must not be blank"})
	}

	result, err := h.extractor.Extract(ctx, input.Body.Input)
	if err != nil {
		return nil, toHumaError(err)
	}
	return &ExtractOutput{Body: *mappers.ToExtractResponse(result)}, nil
}
