package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strings"
)

// ErrorCode represents machine-readable error codes for scripted error handling.
type ErrorCode string

const (
	// ErrBadRequest indicates a malformed request (HTTP 400).
	ErrBadRequest ErrorCode = "bad_request"
	// ErrUnauthorized indicates authentication is required or failed (HTTP 401).
	ErrUnauthorized ErrorCode = "unauthorized"
	// ErrForbidden indicates the user lacks permission (HTTP 403).
	ErrForbidden ErrorCode = "forbidden"
	// ErrNotFound indicates the requested resource does not exist (HTTP 404).
	ErrNotFound ErrorCode = "not_found"
	// ErrConflict indicates a conflict with current state (HTTP 409).
	ErrConflict ErrorCode = "conflict"
	// ErrValidation indicates input validation failed (missing argument or HTTP 422).
	ErrValidation ErrorCode = "validation_failed"
	// ErrServerError indicates an internal server error (HTTP 5xx).
	ErrServerError ErrorCode = "server_error"
	// ErrTimeout indicates the request timed out.
	ErrTimeout ErrorCode = "timeout"
	// ErrNetwork indicates the request never got a response.
	ErrNetwork ErrorCode = "network_error"
	// ErrUnknown indicates an unknown or unclassified error.
	ErrUnknown ErrorCode = "unknown"
)

// Suggestion returns a human-readable suggestion for resolving this error.
func (c ErrorCode) Suggestion() string {
	switch c {
	case ErrUnauthorized:
		return "Run 'sp auth login' to authenticate, or 'sp auth refresh' if your token expired"
	case ErrForbidden:
		return "Check the scope granted to your application"
	case ErrNotFound:
		return "Verify the resource ID exists"
	case ErrValidation:
		return "Check the input values"
	case ErrBadRequest:
		return "Check the request format and parameters"
	case ErrConflict:
		return "The resource state may have changed; refresh and try again"
	case ErrServerError:
		return "The server encountered an error; try again later"
	case ErrTimeout:
		return "The request timed out; check network connectivity or raise --timeout"
	case ErrNetwork:
		return "Check network connectivity and the API base URL"
	default:
		return ""
	}
}

// ErrorCodeFromStatus maps an HTTP status code to an ErrorCode.
func ErrorCodeFromStatus(statusCode int) ErrorCode {
	switch statusCode {
	case 400:
		return ErrBadRequest
	case 401:
		return ErrUnauthorized
	case 403:
		return ErrForbidden
	case 404:
		return ErrNotFound
	case 409:
		return ErrConflict
	case 422:
		return ErrValidation
	default:
		if statusCode >= 500 && statusCode < 600 {
			return ErrServerError
		}
		return ErrUnknown
	}
}

// StructuredError provides machine-readable error information.
type StructuredError struct {
	Code       ErrorCode      `json:"code"`
	Message    string         `json:"message"`
	Suggestion string         `json:"suggestion,omitempty"`
	Context    map[string]any `json:"context,omitempty"`
}

// Error implements the error interface.
func (e *StructuredError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// MarshalJSON implements custom JSON marshaling.
func (e *StructuredError) MarshalJSON() ([]byte, error) {
	type Alias StructuredError
	return json.Marshal((*Alias)(e))
}

// NewStructuredError creates a StructuredError from an ErrorCode and message.
func NewStructuredError(code ErrorCode, message string) *StructuredError {
	return &StructuredError{
		Code:       code,
		Message:    message,
		Suggestion: code.Suggestion(),
	}
}

// NewInvalidValueError creates a StructuredError for a flag value outside its allowed set.
func NewInvalidValueError(field, got string, allowed []string) *StructuredError {
	return &StructuredError{
		Code:       ErrValidation,
		Message:    fmt.Sprintf("invalid %s %q: must be one of %s", field, got, strings.Join(allowed, ", ")),
		Suggestion: fmt.Sprintf("Use one of: %s", strings.Join(allowed, ", ")),
		Context:    map[string]any{"field": field, "got": got},
	}
}

// StructuredErrorFromAPIError converts an APIError to a StructuredError.
// Only the status is classified; the body is attached as-is.
func StructuredErrorFromAPIError(apiErr *APIError) *StructuredError {
	code := ErrorCodeFromStatus(apiErr.StatusCode)
	ctx := map[string]any{
		"status_code": apiErr.StatusCode,
	}
	if len(apiErr.Body) > 0 {
		ctx["body"] = string(apiErr.Body)
	}
	return &StructuredError{
		Code:       code,
		Message:    apiErr.Error(),
		Suggestion: code.Suggestion(),
		Context:    ctx,
	}
}

// StructuredErrorFromError attempts to convert any error to a StructuredError.
func StructuredErrorFromError(err error) *StructuredError {
	if err == nil {
		return nil
	}

	var se *StructuredError
	if errors.As(err, &se) {
		return se
	}

	var authErr *AuthExchangeError
	if errors.As(err, &authErr) {
		return NewStructuredError(ErrUnauthorized, authErr.Error())
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return StructuredErrorFromAPIError(apiErr)
	}

	var valErr *ValidationError
	if errors.As(err, &valErr) {
		return &StructuredError{
			Code:       ErrValidation,
			Message:    valErr.Error(),
			Suggestion: ErrValidation.Suggestion(),
			Context:    map[string]any{"method": valErr.Method, "argument": valErr.Argument},
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return NewStructuredError(ErrTimeout, err.Error())
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return NewStructuredError(ErrTimeout, err.Error())
		}
		return NewStructuredError(ErrNetwork, err.Error())
	}

	return &StructuredError{
		Code:    ErrUnknown,
		Message: err.Error(),
	}
}
