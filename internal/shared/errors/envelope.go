// Package errors renders the JSON envelope every Cell Tech endpoint answers with.
package errors

import (
	"fmt"
	"net/http"
)

// Envelope is the body shape shared by success and failure responses.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Content any    `json:"content,omitempty"`
	// Summary carries roll-ups next to list content, e.g. statistics totals.
	Summary any `json:"summary,omitempty"`
}

// APIError is a failure that already knows its HTTP status and client message.
type APIError struct {
	// Kind names the taxonomy bucket (not_found, conflict, ...). It is not serialized.
	Kind string
	// Status is the HTTP status code for this occurrence.
	Status int
	// Message is the human-readable text placed in the envelope.
	Message string
	// Cause keeps the underlying error for logs.
	Cause error
}

// Error implements the error interface.
func (e APIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap exposes the cause to errors.Is/As.
func (e APIError) Unwrap() error { return e.Cause }

// WithMessage returns a copy carrying the given client message.
func (e APIError) WithMessage(message string) APIError {
	e.Message = message
	return e
}

// WithCause returns a copy wrapping err.
func (e APIError) WithCause(err error) APIError {
	e.Cause = err
	return e
}

// Envelope converts the error into its wire representation.
func (e APIError) Envelope() Envelope {
	return Envelope{Success: false, Message: e.Message}
}

const (
	KindValidation   = "validation"
	KindNotFound     = "not_found"
	KindConflict     = "conflict"
	KindInternal     = "internal"
	KindUnauthorized = "unauthorized"
	KindForbidden    = "forbidden"
)

var (
	// ErrValidation indicates a malformed identifier or payload.
	ErrValidation = APIError{Kind: KindValidation, Status: http.StatusBadRequest, Message: "Invalid request!"}

	// ErrNotFound indicates the referenced entity does not exist.
	ErrNotFound = APIError{Kind: KindNotFound, Status: http.StatusNotFound, Message: "Resource not found!"}

	// ErrConflict covers duplicates and business-rule violations.
	ErrConflict = APIError{Kind: KindConflict, Status: http.StatusConflict, Message: "Conflict!"}

	// ErrInternal indicates an unexpected store or runtime failure.
	ErrInternal = APIError{Kind: KindInternal, Status: http.StatusInternalServerError, Message: "Internal Server Error!"}

	// ErrUnauthorized indicates a missing credential.
	ErrUnauthorized = APIError{Kind: KindUnauthorized, Status: http.StatusUnauthorized, Message: "Unauthorized User"}

	// ErrForbidden indicates a credential that failed verification.
	ErrForbidden = APIError{Kind: KindForbidden, Status: http.StatusForbidden, Message: "Forbidden Access"}
)
