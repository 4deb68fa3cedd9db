package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestValidationError(t *testing.T) {
	err := required("sp.album.delete", "albumID", "delete an album")

	if err.Error() != "albumID is required to delete an album" {
		t.Errorf("unexpected message %q", err.Error())
	}
	if !IsValidationError(fmt.Errorf("wrapped: %w", err)) {
		t.Error("Expected IsValidationError through wrapping")
	}
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Method != "sp.album.delete" {
		t.Errorf("Expected method sp.album.delete, got %+v", ve)
	}
}

func TestAPIErrorMessage(t *testing.T) {
	err := &APIError{StatusCode: 404, Status: "Not Found", Body: []byte(`{"stat":"fail"}`)}
	if err.Error() != "API error (status 404): Not Found" {
		t.Errorf("unexpected message %q", err.Error())
	}
	if !IsNotFoundError(err) {
		t.Error("Expected IsNotFoundError")
	}
	if IsNotFoundError(&APIError{StatusCode: http.StatusInternalServerError}) {
		t.Error("500 is not a not-found error")
	}
	if IsNotFoundError(errors.New("plain")) {
		t.Error("plain errors are not not-found errors")
	}
}

func TestAuthExchangeErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := &AuthExchangeError{Refresh: true, Err: cause}

	if err.Error() != "problem refreshing authorization tokens: boom" {
		t.Errorf("unexpected message %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("Expected errors.Is to find the cause")
	}
	if IsAuthExchangeError(cause) {
		t.Error("cause alone is not an exchange error")
	}
}
