// Package api provides the HTTP API layer for the link digest service.
// It uses the Huma framework to provide automatic OpenAPI documentation,
// request/response validation, and a clean handler interface.
//
// # Architecture
//
// - server.go: Huma API configuration and setup
// - handlers/: HTTP request handlers
// - dto/: Data Transfer Objects for requests and responses
// - middleware/: HTTP middleware for cross-cutting concerns
//
// # Endpoints
//
//	POST   /digests               create a digest from a URL or text
//	POST   /digests/regenerate    run the flow again and get a new token
//	GET    /digests/{token}       preview a pending digest
//	POST   /digests/{token}/save  save again, optionally with another source URL
//	DELETE /digests/{token}       discard a pending digest
//	POST   /extract               resolve content without summarizing it
//
// # Usage Example
//
//	humaAPI, router := api.NewAPIWithMiddleware(api.APIConfig{Logger: logger})
//	handlers.NewDigestHandler(digestService).RegisterRoutes(humaAPI)
//	handlers.NewExtractHandler(pipeline).RegisterRoutes(humaAPI)
//	http.ListenAndServe(":8000", router)
//
// # Error Handling
//
// Errors use the RFC 7807 format. Domain errors map to status codes:
// missing or expired tokens to 404, blank input to 400, exhausted extraction
// to 422 and failed summarization or storage to 502/503.
package api
