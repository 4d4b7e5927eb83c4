package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFound(t *testing.T) {
	err := NotFound("product", "42")

	assert.Equal(t, "NOT_FOUND", err.Code)
	assert.Equal(t, "product with id 42 not found", err.Message)
	assert.Equal(t, http.StatusNotFound, err.Status)
	assert.True(t, stderrors.Is(err, ErrNotFound))
}

func TestInvalidInput(t *testing.T) {
	err := InvalidInput("product is out of stock")

	assert.Equal(t, "INVALID_INPUT", err.Code)
	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.True(t, stderrors.Is(err, ErrInvalidInput))
}

func TestInternal(t *testing.T) {
	cause := fmt.Errorf("boom")
	err := Internal(cause)

	assert.Equal(t, "INTERNAL_ERROR", err.Code)
	assert.Equal(t, http.StatusInternalServerError, err.Status)
	assert.True(t, stderrors.Is(err, cause))
}

func TestUnavailable(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := Unavailable("fetch products", cause)

	assert.Equal(t, "UPSTREAM_UNAVAILABLE", err.Code)
	assert.Equal(t, http.StatusBadGateway, err.Status)
	assert.True(t, stderrors.Is(err, ErrUnavailable))
	assert.True(t, stderrors.Is(err, cause))
}

func TestAppError_ErrorString(t *testing.T) {
	err := NotFound("cart", "sess-1")
	assert.Contains(t, err.Error(), "NOT_FOUND")
	assert.Contains(t, err.Error(), "cart with id sess-1 not found")
}

func TestAppError_SurvivesWrapping(t *testing.T) {
	inner := NotFound("product", "42")
	wrapped := fmt.Errorf("fetch product for add: %w", inner)

	var appErr *AppError
	assert.True(t, stderrors.As(wrapped, &appErr))
	assert.Equal(t, http.StatusNotFound, appErr.Status)
	assert.True(t, stderrors.Is(wrapped, ErrNotFound))
}

func TestWrap(t *testing.T) {
	err := Wrap(ErrInvalidInput, "decode body")

	assert.True(t, stderrors.Is(err, ErrInvalidInput))
	assert.Contains(t, err.Error(), "decode body")
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"app error", NotFound("x", "1"), http.StatusNotFound},
		{"wrapped app error", fmt.Errorf("ctx: %w", InvalidInput("bad")), http.StatusBadRequest},
		{"sentinel not found", ErrNotFound, http.StatusNotFound},
		{"sentinel invalid input", ErrInvalidInput, http.StatusBadRequest},
		{"sentinel unavailable", ErrUnavailable, http.StatusBadGateway},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}
