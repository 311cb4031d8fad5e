// Package handlers defines HTTP-layer error codes used across all API
// endpoints.
//
// These symbolic constants are mapped to HTTP responses via the fail()
// helper in this package and give clients a stable, machine-readable error
// taxonomy alongside the human-readable message. Codes are lowercase
// snake_case; generic codes mirror common HTTP status semantics, and
// domain-specific codes cover business outcomes status alone cannot convey.
package handlers

const (
	ErrCodeBadRequest   = "bad_request"
	ErrCodeUnauthorized = "unauthorized"
	ErrCodeForbidden    = "forbidden"
	ErrCodeNotFound     = "not_found"
	ErrCodeConflict     = "conflict"
	ErrCodeInternal     = "internal_error"

	// Domain-specific:
	ErrCodeGenerationFailed  = "generation_failed"
	ErrCodePersistenceFailed = "persistence_failed"
	ErrCodeMethodNotAllowed  = "method_not_allowed"
)
