package states

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error returned by the states service
type Kind string

const (
	InvalidState    Kind = "invalid_state"
	InvalidInput    Kind = "invalid_input"
	NotFound        Kind = "not_found"
	IndexOutOfRange Kind = "index_out_of_range"
	StoreFailure    Kind = "store_failure"
)

// ServerErrorMessage is the only message surfaced for store failures
const ServerErrorMessage = "Server error"

// Error is a classified states error with a client-safe message
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewError creates a classified error with a message
func NewError(kind Kind, message string) error {
	return &Error{Kind: kind, Message: message}
}

// WrapStoreError wraps a backend failure. Errors that are already classified pass through unchanged
func WrapStoreError(message string, err error) error {
	if err == nil {
		return nil
	}
	var classified *Error
	if errors.As(err, &classified) {
		return err
	}
	return &Error{Kind: StoreFailure, Message: message, Err: err}
}

// KindOf returns the kind of an error, defaulting to StoreFailure for untyped errors
func KindOf(err error) Kind {
	var classified *Error
	if errors.As(err, &classified) && classified.Kind != "" {
		return classified.Kind
	}
	return StoreFailure
}

// MessageOf returns the message that may be shown to an API caller.
// Store failures and untyped errors never leak their details.
func MessageOf(err error) string {
	var classified *Error
	if errors.As(err, &classified) && classified.Kind != StoreFailure && classified.Message != "" {
		return classified.Message
	}
	return ServerErrorMessage
}

// HTTPStatus maps an error kind to its HTTP status code
func HTTPStatus(kind Kind) int {
	switch kind {
	case InvalidState, InvalidInput:
		return http.StatusBadRequest
	case NotFound, IndexOutOfRange:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
