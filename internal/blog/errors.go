package blog

// errors.go defines the error codes used by the blog API

import (
	"errors"
	"fmt"
)

// BlogError represents a structured error from the blog API.
type BlogError struct {
	// code is the API error code
	code ErrorCode

	// message is a human-readable error message
	message string

	// wrapped is the optional underlying error
	wrapped error
}

func (e *BlogError) Error() string {
	if e.wrapped != nil {
		return fmt.Sprintf("%s: %v", e.message, e.wrapped)
	}
	return e.message
}

func (e *BlogError) Code() ErrorCode { return e.code }
func (e *BlogError) Unwrap() error   { return e.wrapped }

// ErrorCode is returned to clients in the error response body.
//
//   - 1000-1999 client errors (the request can not be processed as sent)
//   - 5000-5999 server errors
type ErrorCode int

const (
	// ErrCodeMalformedRequest is used when the request body is not valid JSON or has the wrong shape
	ErrCodeMalformedRequest ErrorCode = 1001

	// ErrCodeValidation is used when the request is well formed but a field value is not acceptable
	// (missing required fields, empty values, path/body id mismatch)
	ErrCodeValidation ErrorCode = 1002

	// ErrCodeNotFound is used when the identifier does not reference an existing post
	ErrCodeNotFound ErrorCode = 1003

	// ErrCodeRateLimitExceeded - only used in the middleware
	ErrCodeRateLimitExceeded ErrorCode = 1004

	// ErrCodeRequestTooLarge - only used in the middleware and body decoding
	ErrCodeRequestTooLarge ErrorCode = 1005

	// ErrCodeStoreUnavailable is used when the document store can not be reached
	ErrCodeStoreUnavailable ErrorCode = 5001

	// ErrCodeInternalError is used for unexpected server errors
	ErrCodeInternalError ErrorCode = 5002
)

// NewMalformedRequestError creates an error for malformed requests.
func NewMalformedRequestError(msg string) error {
	return &BlogError{code: ErrCodeMalformedRequest, message: msg}
}

// WrapMalformedRequestError wraps an existing error as a malformed request error.
func WrapMalformedRequestError(err error, msg string) error {
	return &BlogError{code: ErrCodeMalformedRequest, message: msg, wrapped: err}
}

// NewValidationError creates a validation error for an unacceptable field value.
func NewValidationError(msg string) error {
	return &BlogError{code: ErrCodeValidation, message: msg}
}

// WrapValidationError wraps an existing error (typically ozzo validation.Errors) as a validation error.
// The field errors are listed individually in the error response.
func WrapValidationError(err error, msg string) error {
	return &BlogError{code: ErrCodeValidation, message: msg, wrapped: err}
}

// NewNotFoundError creates an error for an unknown post identifier.
func NewNotFoundError(msg string) error {
	return &BlogError{code: ErrCodeNotFound, message: msg}
}

// NewRateLimitError is used by the RateLimit middleware.
func NewRateLimitError(msg string) error {
	return &BlogError{code: ErrCodeRateLimitExceeded, message: msg}
}

// NewRequestTooLargeError is used when the request body exceeds the configured limit.
func NewRequestTooLargeError(msg string) error {
	return &BlogError{code: ErrCodeRequestTooLarge, message: msg}
}

// WrapStoreUnavailableError wraps a store connectivity error.
func WrapStoreUnavailableError(err error, msg string) error {
	return &BlogError{code: ErrCodeStoreUnavailable, message: msg, wrapped: err}
}

// WrapInternalError wraps an unexpected error.
func WrapInternalError(err error, msg string) error {
	return &BlogError{code: ErrCodeInternalError, message: msg, wrapped: err}
}

// ErrorCodeOf returns the code of the first BlogError in the chain, or ErrCodeInternalError.
func ErrorCodeOf(err error) ErrorCode {
	var blogErr *BlogError
	if errors.As(err, &blogErr) {
		return blogErr.Code()
	}
	return ErrCodeInternalError
}

// IsNotFound reports whether err is a not found error
func IsNotFound(err error) bool {
	return err != nil && ErrorCodeOf(err) == ErrCodeNotFound
}
