package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrIndexUnavailable indicates neither profile nor content search could run.
	ErrIndexUnavailable = errors.New("search index unavailable")

	// ErrTrustUnavailable indicates web-of-trust scoring was requested
	// without a follow graph or a viewer.
	ErrTrustUnavailable = errors.New("web of trust unavailable")

	// ErrMalformedEvent indicates an imported event could not be decoded.
	ErrMalformedEvent = errors.New("malformed event")

	// ErrSessionExhausted indicates a search session has no more pages.
	ErrSessionExhausted = errors.New("no more results")
)
