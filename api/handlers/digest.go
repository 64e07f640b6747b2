// ABOUTME: Digest handlers for the Huma API
// ABOUTME: Provides HTTP endpoints to create, preview, save, discard and regenerate digests

package handlers

import (
	"context"
	"net/http"

	"linkdigest-api/api/dto/mappers"
	"linkdigest-api/api/dto/requests"
	"linkdigest-api/api/dto/responses"
	"linkdigest-api/core/errors"
	"linkdigest-api/core/interfaces"

	"github.com/danielgtaylor/huma/v2"
)

// DigestHandler handles digest-related HTTP requests
type DigestHandler struct {
	service interfaces.DigestService
}

// NewDigestHandler creates a new digest handler
func NewDigestHandler(service interfaces.DigestService) *DigestHandler {
	return &DigestHandler{service: service}
}

// RegisterRoutes registers all digest-related routes
func (h *DigestHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "createDigest",
		Method:      http.MethodPost,
		Path:        "/digests",
		Summary:     "Create a digest",
		Description: "Resolves a URL or text, summarizes it, persists the note and returns a token for follow-up actions",
		Tags:        []string{"Digests"},
	}, h.CreateDigest)

	huma.Register(api, huma.Operation{
		OperationID: "regenerateDigest",
		Method:      http.MethodPost,
		Path:        "/digests/regenerate",
		Summary:     "Regenerate a digest",
		Description: "Runs the full flow again for the same input and returns a new token; earlier tokens stay valid",
		Tags:        []string{"Digests"},
	}, h.RegenerateDigest)

	huma.Register(api, huma.Operation{
		OperationID: "getDigest",
		Method:      http.MethodGet,
		Path:        "/digests/{token}",
		Summary:     "Preview a pending digest",
		Tags:        []string{"Digests"},
	}, h.GetDigest)

	huma.Register(api, huma.Operation{
		OperationID: "saveDigest",
		Method:      http.MethodPost,
		Path:        "/digests/{token}/save",
		Summary:     "Save a pending digest",
		Description: "Writes the digest again, optionally with a different source URL, and forgets the token",
		Tags:        []string{"Digests"},
	}, h.SaveDigest)

	huma.Register(api, huma.Operation{
		OperationID:   "discardDigest",
		Method:        http.MethodDelete,
		Path:          "/digests/{token}",
		Summary:       "Discard a pending digest",
		Description:   "Removes the persisted note on a best-effort basis and forgets the token",
		Tags:          []string{"Digests"},
		DefaultStatus: http.StatusNoContent,
	}, h.DiscardDigest)
}

// DigestInput defines the input for create and regenerate
type DigestInput struct {
	Body requests.DigestRequest
}

// DigestOutput defines the output for create and regenerate
type DigestOutput struct {
	Body responses.DigestResponse
}

// TokenInput addresses one pending digest
type TokenInput struct {
	Token string `path:"token" minLength:"1" doc:"Digest token"`
}

// GetDigestOutput defines the output for the preview operation
type GetDigestOutput struct {
	Body responses.DigestEntryResponse
}

// SaveDigestInput defines the input for the save operation
type SaveDigestInput struct {
	Token string                      `path:"token" minLength:"1" doc:"Digest token"`
	Body  *requests.SaveDigestRequest `required:"false"`
}

// SaveDigestOutput defines the output for the save operation
type SaveDigestOutput struct {
	Body responses.SaveDigestResponse
}

// CreateDigest handles digest creation
func (h *DigestHandler) CreateDigest(ctx context.Context, input *DigestInput) (*DigestOutput, error) {
	return h.run(ctx, input, h.service.Process)
}

// RegenerateDigest handles digest regeneration
func (h *DigestHandler) RegenerateDigest(ctx context.Context, input *DigestInput) (*DigestOutput, error) {
	return h.run(ctx, input, h.service.Regenerate)
}

func (h *DigestHandler) run(ctx context.Context, input *DigestInput, fn func(context.Context, string) (*interfaces.DigestResult, error)) (*DigestOutput, error) {
	input.Body.Normalize()
	if input.Body.Input == "" {
		return nil, toHumaError(&errors.ValidationError{Field: "input", Message: "must not be blank"})
	}

	result, err := fn(ctx, input.Body.Input)
	if err != nil {
		return nil, toHumaError(err)
	}

	return &DigestOutput{Body: *mappers.ToDigestResponse(result)}, nil
}

// GetDigest handles the preview of a pending digest
func (h *DigestHandler) GetDigest(ctx context.Context, input *TokenInput) (*GetDigestOutput, error) {
	entry, err := h.service.Get(input.Token)
	if err != nil {
		return nil, toHumaError(err)
	}
	return &GetDigestOutput{Body: *mappers.ToDigestEntryResponse(input.Token, entry)}, nil
}

// SaveDigest handles the explicit save of a pending digest
func (h *DigestHandler) SaveDigest(ctx context.Context, input *SaveDigestInput) (*SaveDigestOutput, error) {
	override := ""
	if input.Body != nil {
		override = input.Body.SourceURL
	}

	url, err := h.service.SaveAndClear(ctx, input.Token, override)
	if err != nil {
		return nil, toHumaError(err)
	}
	return &SaveDigestOutput{Body: responses.SaveDigestResponse{URL: url}}, nil
}

// DiscardDigest handles the discard of a pending digest. Unknown tokens succeed.
func (h *DigestHandler) DiscardDigest(ctx context.Context, input *TokenInput) (*struct{}, error) {
	h.service.Discard(ctx, input.Token)
	return nil, nil
}
