/*
Package errs provides custom error types and application-level error code constants.

This file holds the client-side error taxonomy: APIError for backend and transport
failures, ValidationError for rejected form input and StateError for operations that
cannot run in the current client state. UserMessage folds any of them into the single
string shown to the player.
*/
package errs

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

const (
	// NetworkErrorCode marks an APIError raised when no usable response was received.
	NetworkErrorCode = -1

	// NetworkErrorMessage is shown when the backend could not be reached.
	NetworkErrorMessage = "Network error: Please check your internet connection and try again."

	// FallbackMessage replaces empty or meaningless error messages.
	FallbackMessage = "Something went wrong. Please try again."
)

// APIError is returned by the API gateway. Code is the backend statusCode, or
// NetworkErrorCode when the transport or envelope decoding failed.
type APIError struct {
	Code    int
	Message string
	Err     error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("api error %d: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("api error %d: %s", e.Code, e.Message)
}

func (e *APIError) Unwrap() error { return e.Err }

// IsNetwork reports whether the error stems from a transport or parse failure.
func (e *APIError) IsNetwork() bool { return e.Code == NetworkErrorCode }

// NewNetworkError wraps a transport or decoding failure.
func NewNetworkError(err error) *APIError {
	return &APIError{Code: NetworkErrorCode, Message: NetworkErrorMessage, Err: err}
}

// FromEnvelope builds the error for a backend envelope with a non-zero statusCode.
func FromEnvelope(code int, message string) *APIError {
	if message == "" {
		message = "Unknown API error"
	}
	return &APIError{Code: code, Message: message}
}

// ValidationError lists the rejected form fields and their messages.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// StateError reports an operation attempted in a state that does not allow it.
type StateError struct {
	Message string
}

func (e *StateError) Error() string { return e.Message }

// ErrNotAuthenticated is the StateError for operations that need a signed-in user.
var ErrNotAuthenticated = &StateError{Message: "You need to sign in before playing."}

// ErrGuessInFlight is the StateError for a guess submitted while another one is still
// waiting for the backend.
var ErrGuessInFlight = &StateError{Message: errorMap[ErrGuessPending].Message}

// UserMessage converts err into the single human-readable string shown in the UI.
// The carried message is used when it is non-empty and does not contain the words
// "undefined" or "null"; otherwise FallbackMessage is returned.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var msg string
	var apiErr *APIError
	var stateErr *StateError
	var customErr *CustomError
	switch {
	case errors.As(err, &apiErr):
		msg = apiErr.Message
	case errors.As(err, &stateErr):
		msg = stateErr.Message
	case errors.As(err, &customErr):
		msg = customErr.Message
	default:
		msg = err.Error()
	}

	if strings.TrimSpace(msg) == "" || strings.Contains(msg, "undefined") || strings.Contains(msg, "null") {
		return FallbackMessage
	}
	return msg
}
