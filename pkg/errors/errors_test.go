package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	err := NotFound("product", "p1")
	assert.Contains(t, err.Error(), "NOT_FOUND")
	assert.Contains(t, err.Error(), "p1")

	wrapped := Internal(errors.New("boom"))
	assert.Contains(t, wrapped.Error(), "boom")
}

func TestAppError_Unwrap(t *testing.T) {
	assert.ErrorIs(t, NotFound("product", "p1"), ErrNotFound)
	assert.ErrorIs(t, InvalidInput("bad limit"), ErrInvalidInput)

	cause := errors.New("connection refused")
	unavail := Unavailable("redis", cause)
	assert.ErrorIs(t, unavail, ErrServiceUnavail)
	assert.ErrorIs(t, unavail, cause)
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "app error", err: NotFound("product", "p1"), want: http.StatusNotFound},
		{name: "sentinel not found", err: ErrNotFound, want: http.StatusNotFound},
		{name: "wrapped sentinel", err: Wrap(ErrInvalidInput, "search"), want: http.StatusBadRequest},
		{name: "unavailable", err: ErrServiceUnavail, want: http.StatusServiceUnavailable},
		{name: "unknown", err: errors.New("boom"), want: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestWrap(t *testing.T) {
	err := Wrap(ErrNotFound, "find product")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "find product")
}
