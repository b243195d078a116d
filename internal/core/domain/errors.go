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

	// ErrInvalidPaging indicates an offset or limit outside the accepted range.
	ErrInvalidPaging = errors.New("invalid paging")

	// Local validation errors. None of these reach the network.

	// ErrEmptyUpsert indicates the upsert input has no non-empty lines.
	ErrEmptyUpsert = errors.New("nothing to upsert")

	// ErrEmptyQuestion indicates a blank question.
	ErrEmptyQuestion = errors.New("question is empty")

	// ErrDeclined indicates the operator declined a confirmation.
	ErrDeclined = errors.New("declined")

	// ErrPhraseMismatch indicates the typed confirmation phrase did not match.
	ErrPhraseMismatch = errors.New("confirmation phrase mismatch")

	// ErrOperationBusy indicates the same operation is already in flight.
	ErrOperationBusy = errors.New("operation already in progress")

	// ErrClipboardUnavailable indicates the system clipboard cannot be written.
	ErrClipboardUnavailable = errors.New("clipboard unavailable")
)

// UpstreamError is a non-success response from a backend operation.
type UpstreamError struct {
	// Operation is the backend operation that failed.
	Operation Operation

	// Status is the HTTP status code.
	Status int

	// Detail is the human-readable failure text reported upstream.
	Detail string
}

// Error returns the upstream detail verbatim.
func (e *UpstreamError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("%s failed with status %d", e.Operation, e.Status)
}

// IsNotFound reports whether the upstream answered 404.
func (e *UpstreamError) IsNotFound() bool {
	return e.Status == 404
}

// Is lets errors.Is match a 404 against ErrNotFound.
func (e *UpstreamError) Is(target error) bool {
	return target == ErrNotFound && e.IsNotFound()
}
