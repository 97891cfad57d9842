// Package errors provides the error taxonomy shared by function handlers and
// its mapping onto HTTP responses.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeValidation       ErrorCode = "VALIDATION_ERROR"
	ErrCodeConfiguration    ErrorCode = "CONFIGURATION_ERROR"
	ErrCodeMethodNotAllowed ErrorCode = "METHOD_NOT_ALLOWED"
	ErrCodeUpstream         ErrorCode = "UPSTREAM_ERROR"
)

// Messages surfaced verbatim to callers.
const (
	MsgFieldsRequired   = "productName and productCategory are required"
	MsgKeyNotConfigured = "OPENAI_API_KEY not configured"
	MsgMethodNotAllowed = "Method not allowed"
)

// StandardError represents a structured application error. Message is what
// the caller sees; Details is for logs only.
type StandardError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Retryable bool      `json:"retryable"`
	Timestamp time.Time `json:"timestamp"`
	cause     error
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error { return e.cause }

// StatusCode returns the HTTP status for this error.
func (e *StandardError) StatusCode() int {
	return HTTPStatus(e.Code)
}

// NewValidationError reports missing required payload fields.
func NewValidationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidation,
		Message:   MsgFieldsRequired,
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewConfigurationError reports a missing generation-service credential.
func NewConfigurationError() *StandardError {
	return &StandardError{
		Code:      ErrCodeConfiguration,
		Message:   MsgKeyNotConfigured,
		Details:   "credential provider returned an empty key",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewMethodNotAllowedError reports an unsupported HTTP method.
func NewMethodNotAllowedError(method string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMethodNotAllowed,
		Message:   MsgMethodNotAllowed,
		Details:   fmt.Sprintf("method: %s", method),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUpstreamError wraps any other failure. The raw error text becomes the
// caller-visible message.
func NewUpstreamError(err error) *StandardError {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return &StandardError{
		Code:      ErrCodeUpstream,
		Message:   msg,
		Details:   msg,
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// HTTPStatus maps an error code to its response status.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeValidation:
		return http.StatusBadRequest
	case ErrCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case ErrCodeConfiguration, ErrCodeUpstream:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// Normalize ensures we always have a StandardError. Anything that is not
// already one is treated as an upstream failure.
func Normalize(err error) *StandardError {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	return NewUpstreamError(err)
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	switch code {
	case ErrCodeValidation, ErrCodeMethodNotAllowed:
		return "CLIENT"
	case ErrCodeConfiguration:
		return "CONFIGURATION"
	case ErrCodeUpstream:
		return "UPSTREAM"
	default:
		return "OTHER"
	}
}
