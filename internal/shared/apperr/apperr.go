// Package apperr defines the error kinds shared by every workflow and
// their mapping onto HTTP responses.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrInvalidCredentials is returned for any failed login, whether the
	// username is unknown or the password is wrong.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrUnauthenticated is returned when a request carries no valid session or token.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrNotFound is returned when an owned record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUpstream is returned when an external API call fails.
	ErrUpstream = errors.New("upstream service unavailable")
)

// ValidationError reports user input that was rejected before touching storage.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// Validation returns a *ValidationError with the given reason.
func Validation(reason string) error {
	return &ValidationError{Reason: reason}
}

// ConflictError reports a uniqueness violation the user can act on.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string { return e.Reason }

// Conflict returns a *ConflictError with the given reason.
func Conflict(reason string) error {
	return &ConflictError{Reason: reason}
}

// StorageError wraps a failure of the persistence layer.
// Its message is never shown to clients.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Storage wraps err in a *StorageError tagged with op. A nil err stays nil.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

// IsValidation reports whether err is a ValidationError with the given reason.
// An empty reason matches any ValidationError.
func IsValidation(err error, reason string) bool {
	var ve *ValidationError
	if !errors.As(err, &ve) {
		return false
	}
	return reason == "" || ve.Reason == reason
}

// IsConflict reports whether err is a ConflictError with the given reason.
// An empty reason matches any ConflictError.
func IsConflict(err error, reason string) bool {
	var ce *ConflictError
	if !errors.As(err, &ce) {
		return false
	}
	return reason == "" || ce.Reason == reason
}

// StatusCode maps an error onto the HTTP status returned to the client.
func StatusCode(err error) int {
	var (
		ve *ValidationError
		ce *ConflictError
	)
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &ve):
		return http.StatusBadRequest
	case errors.As(err, &ce):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the message safe to show to the client.
func PublicMessage(err error) string {
	switch StatusCode(err) {
	case http.StatusInternalServerError:
		return "internal error"
	case http.StatusBadGateway:
		return ErrUpstream.Error()
	default:
		return err.Error()
	}
}
