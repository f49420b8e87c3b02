package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_Error(t *testing.T) {
	err := ValidationError("bad input")
	assert.Equal(t, "validation: bad input", err.Error())

	wrapped := InternalError("query failed", fmt.Errorf("connection reset"))
	assert.Equal(t, "internal: query failed: connection reset", wrapped.Error())
}

func TestError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := ExternalError("provider unavailable", cause)

	assert.True(t, errors.Is(err, cause))
}

func TestError_HTTPStatus(t *testing.T) {
	tests := []struct {
		errType ErrorType
		status  int
	}{
		{TypeValidation, http.StatusBadRequest},
		{TypeNotFound, http.StatusNotFound},
		{TypeConflict, http.StatusConflict},
		{TypeExternal, http.StatusBadGateway},
		{TypeRateLimited, http.StatusTooManyRequests},
		{TypeInternal, http.StatusInternalServerError},
		{ErrorType("unknown"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		e := &Error{Type: tt.errType, Message: "x"}
		assert.Equal(t, tt.status, e.HTTPStatus(), string(tt.errType))
	}
}

func TestError_WithContext(t *testing.T) {
	err := NotFoundError("word not found").
		WithContext("word", "aardvark").
		WithField("language", "en")

	assert.Equal(t, "aardvark", err.Context["word"])
	assert.Equal(t, "en", err.Context["language"])
}

func TestError_ToResponse(t *testing.T) {
	err := ValidationError("text too long").WithField("max", 5000)
	resp := err.ToResponse()

	assert.Equal(t, "text too long", resp.Error)
	assert.Equal(t, TypeValidation, resp.Type)
	assert.Equal(t, 5000, resp.Details["max"])
}

func TestAsStructuredError_PassThrough(t *testing.T) {
	original := ConflictError("already exists")
	got := AsStructuredError(original)
	assert.Same(t, original, got)
}

func TestAsStructuredError_WrapsPlainError(t *testing.T) {
	plain := fmt.Errorf("boom")
	got := AsStructuredError(plain)

	require.NotNil(t, got)
	assert.Equal(t, TypeInternal, got.Type)
	assert.True(t, errors.Is(got, plain))
}

func TestAsStructuredError_WrapsNestedStructuredError(t *testing.T) {
	inner := NotFoundError("gone")
	wrapped := fmt.Errorf("service: %w", inner)

	got := AsStructuredError(wrapped)
	assert.Equal(t, TypeNotFound, got.Type)
}

func TestAsStructuredError_Nil(t *testing.T) {
	assert.Nil(t, AsStructuredError(nil))
}
