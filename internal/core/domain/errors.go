package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not configured.
	ErrNotImplemented = errors.New("not implemented")

	// Extraction Errors.

	// ErrUnsupportedFormat indicates a file extension outside the
	// supported set.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrEmptyFile indicates a zero-length file. Strategies are never
	// invoked for these.
	ErrEmptyFile = errors.New("empty file")

	// ErrBelowThreshold indicates every strategy produced text below
	// the minimum-content threshold.
	ErrBelowThreshold = errors.New("content below minimum threshold")

	// Gateway Errors.

	// ErrRateLimited indicates the completion service rejected the
	// call for rate-limit reasons.
	ErrRateLimited = errors.New("rate limited")

	// ErrAuthFailed indicates the completion service rejected the
	// credentials.
	ErrAuthFailed = errors.New("authentication failed")

	// ErrInvalidRequest indicates the completion service rejected the
	// request as malformed.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrGatewayUnknown indicates an uncategorized completion-service
	// failure, including timeouts.
	ErrGatewayUnknown = errors.New("gateway failure")

	// Registry Errors.

	// ErrAccessDenied indicates a registry access-code mismatch.
	ErrAccessDenied = errors.New("access denied")
)

// ExtractionError is the structured per-file failure recorded by the
// extraction cascade. It is recorded in load reports, never raised to
// the surface as a raw exception.
type ExtractionError struct {
	// File is the file name that failed.
	File string

	// Reason is a human-readable description of why.
	Reason string

	// Err is the underlying sentinel or strategy error, if any.
	Err error
}

// Error implements the error interface.
func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %s", e.File, e.Reason)
}

// Unwrap exposes the underlying error for errors.Is checks.
func (e *ExtractionError) Unwrap() error {
	return e.Err
}
