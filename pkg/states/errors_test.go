package states

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		kind    Kind
		message string
		status  int
	}{
		{"invalid state", NewError(InvalidState, "No states found"), InvalidState, "No states found", http.StatusBadRequest},
		{"invalid input", NewError(InvalidInput, "State fun facts required"), InvalidInput, "State fun facts required", http.StatusBadRequest},
		{"not found", NewError(NotFound, "State not found"), NotFound, "State not found", http.StatusNotFound},
		{"index out of range", NewError(IndexOutOfRange, "No Fun Fact found at that index for Kansas"), IndexOutOfRange, "No Fun Fact found at that index for Kansas", http.StatusNotFound},
		{"store failure", WrapStoreError("failed to get fun facts", errors.New("dial tcp: refused")), StoreFailure, ServerErrorMessage, http.StatusInternalServerError},
		{"untyped error", errors.New("boom"), StoreFailure, ServerErrorMessage, http.StatusInternalServerError},
		{"wrapped classified error", fmt.Errorf("context: %w", NewError(NotFound, "State not found")), NotFound, "State not found", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind := KindOf(tt.err)
			assert.Equal(t, tt.kind, kind)
			assert.Equal(t, tt.message, MessageOf(tt.err))
			assert.Equal(t, tt.status, HTTPStatus(kind))
		})
	}
}

func TestWrapStoreError(t *testing.T) {
	assert.Nil(t, WrapStoreError("ignored", nil))

	classified := NewError(InvalidInput, "State fun fact value required")
	assert.Same(t, classified, WrapStoreError("ignored", classified))

	cause := errors.New("connection reset")
	wrapped := WrapStoreError("failed to add fun facts", cause)
	assert.ErrorIs(t, wrapped, cause)
	assert.Equal(t, "failed to add fun facts: connection reset", wrapped.Error())
}
