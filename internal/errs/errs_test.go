package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		kind   Kind
		status int
	}{
		{KindValidation, http.StatusBadRequest},
		{KindConflict, http.StatusConflict},
		{KindNotFound, http.StatusNotFound},
		{KindUnauthorized, http.StatusUnauthorized},
		{KindConfiguration, http.StatusServiceUnavailable},
		{KindUnavailable, http.StatusServiceUnavailable},
		{KindTransport, http.StatusInternalServerError},
		{KindInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.status, HTTPStatus(New(tt.kind, "boom")))
		})
	}
}

func TestHTTPStatus_UntaggedError(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("plain")))
}

func TestKindOf_Wrapped(t *testing.T) {
	inner := New(KindConflict, "duplicate plate number")
	wrapped := fmt.Errorf("create bus: %w", inner)
	assert.Equal(t, KindConflict, KindOf(wrapped))
}

func TestWrap_CarriesDetail(t *testing.T) {
	cause := errors.New("535 5.7.8 Username and Password not accepted")
	e := Wrap(KindTransport, "email authentication failed", cause)
	assert.Equal(t, "email authentication failed", e.Error())
	assert.Equal(t, cause.Error(), e.Detail)
}
