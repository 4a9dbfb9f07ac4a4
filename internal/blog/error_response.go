package blog

// error_response.go maps errors to the JSON error body returned by the API.

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/LarissaMorrell/blog-app-mongoose-challenge-solution/internal/logger"
)

// ErrorResponse is the body returned for every failed API request
type ErrorResponse struct {

	// The HTTP method used to make the request e.g. GET, PUT, etc
	HTTPMethod string `json:"httpMethod"`

	// The URI that was requested
	RequestURI string `json:"requestUri"`

	// The HTTP status code returned
	StatusCode int `json:"statusCode"`

	// A standard short description corresponding to the HTTP status code
	StatusCodeText string `json:"statusCodeText"`

	ErrorCode    ErrorCode `json:"errorCode"`
	ErrorMessage string    `json:"errorMessage"`

	// the request id assigned by the RequestID middleware (also in the server logs)
	RequestID string `json:"requestId,omitempty"`

	ErrorDateTime string `json:"errorDateTime"`

	// Field level validation failures, if any
	Errors []FieldError `json:"errors,omitempty"`
}

// FieldError describes one invalid property, e.g. author.firstName
type FieldError struct {
	Property string `json:"property"`
	Message  string `json:"message"`
}

// MapErrorToResponse maps a BlogError (or any other error) to an error response.
//
// Errors that are not a BlogError are not expected - they are reported as internal errors
// and the detail is only logged server-side.
func MapErrorToResponse(err error, r *http.Request) *ErrorResponse {
	requestID := middleware.GetReqID(r.Context())

	var blogErr *BlogError
	if !errors.As(err, &blogErr) {
		reqLogger := logger.ContextRequestLogger(r.Context())
		reqLogger.Error("BUG: Unmapped error type in MapErrorToResponse",
			slog.String("error_type", fmt.Sprintf("%T", err)),
			slog.String("error", err.Error()),
			slog.String("request_id", requestID),
		)
		return newErrorResponse(r, requestID, http.StatusInternalServerError, ErrCodeInternalError, "An internal error occurred")
	}

	var statusCode int
	message := blogErr.Error()

	switch blogErr.Code() {
	case ErrCodeMalformedRequest:
		statusCode = http.StatusBadRequest
	case ErrCodeValidation:
		statusCode = http.StatusBadRequest
		message = blogErr.message
	case ErrCodeNotFound:
		statusCode = http.StatusNotFound
	case ErrCodeRateLimitExceeded:
		statusCode = http.StatusTooManyRequests
	case ErrCodeRequestTooLarge:
		statusCode = http.StatusRequestEntityTooLarge
	case ErrCodeStoreUnavailable:
		statusCode = http.StatusServiceUnavailable
		message = "The post store is unavailable"
	default:
		// the wrapped error may include driver detail, so it is not returned to the client
		statusCode = http.StatusInternalServerError
		message = "An internal error occurred"
	}

	resp := newErrorResponse(r, requestID, statusCode, blogErr.Code(), message)

	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		resp.Errors = flattenValidationErrors("", fieldErrs)
	}

	return resp
}

func newErrorResponse(r *http.Request, requestID string, statusCode int, code ErrorCode, message string) *ErrorResponse {
	return &ErrorResponse{
		HTTPMethod:     r.Method,
		RequestURI:     r.RequestURI,
		StatusCode:     statusCode,
		StatusCodeText: http.StatusText(statusCode),
		ErrorCode:      code,
		ErrorMessage:   message,
		RequestID:      requestID,
		ErrorDateTime:  time.Now().UTC().Format(time.RFC3339),
	}
}

// flattenValidationErrors converts nested ozzo errors to dotted property paths, sorted by property
func flattenValidationErrors(prefix string, errs validation.Errors) []FieldError {
	var out []FieldError
	for field, err := range errs {
		property := field
		if prefix != "" {
			property = prefix + "." + field
		}

		var nested validation.Errors
		if errors.As(err, &nested) {
			out = append(out, flattenValidationErrors(property, nested)...)
			continue
		}
		out = append(out, FieldError{Property: property, Message: err.Error()})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Property < out[j].Property })
	return out
}
