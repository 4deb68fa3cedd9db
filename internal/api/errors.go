package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ValidationError reports a required argument that was not supplied.
// It is returned before any request is sent.
type ValidationError struct {
	Method   string // API method discriminator, e.g. sp.album.create
	Argument string
	Action   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is required to %s", e.Argument, e.Action)
}

func required(method, argument, action string) error {
	return &ValidationError{Method: method, Argument: argument, Action: action}
}

// APIError is returned when the API answers with a status of 300 or above.
// The body is kept verbatim and never interpreted.
type APIError struct {
	StatusCode int
	Status     string // status text, e.g. "Not Found"
	Body       []byte
	Header     http.Header
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Status)
}

// AuthExchangeError wraps a failed OAuth token exchange.
type AuthExchangeError struct {
	Refresh bool
	Err     error
}

func (e *AuthExchangeError) Error() string {
	if e.Refresh {
		return fmt.Sprintf("problem refreshing authorization tokens: %v", e.Err)
	}
	return fmt.Sprintf("problem fetching authorization tokens: %v", e.Err)
}

func (e *AuthExchangeError) Unwrap() error {
	return e.Err
}

// IsValidationError checks if the error is a missing-argument error.
func IsValidationError(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}

// IsAuthExchangeError checks if the error came from a token exchange.
func IsAuthExchangeError(err error) bool {
	var e *AuthExchangeError
	return errors.As(err, &e)
}

// IsNotFoundError checks if the API answered 404.
func IsNotFoundError(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}
	return false
}
