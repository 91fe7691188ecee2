package stripe

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "given message and request id, then includes both",
			err:  &Error{Type: ErrorTypeCard, Message: "Your card was declined.", RequestID: "req_123"},
			want: "stripe: card_error (request req_123): Your card was declined.",
		},
		{
			name: "given no message, then falls back to type",
			err:  &Error{Type: ErrorTypeAPI},
			want: "stripe: api_error: api_error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("retrieve charge: %w", &Error{Type: ErrorTypeAPIConnection, Err: cause})

	assert.ErrorIs(t, err, cause)
	assert.True(t, IsErrorType(err, ErrorTypeAPIConnection))
	assert.False(t, IsErrorType(err, ErrorTypeCard))

	var stripeErr *Error
	require.ErrorAs(t, err, &stripeErr)
	assert.Equal(t, ErrorTypeAPIConnection, stripeErr.Type)
}

func TestErrorTypeForStatus(t *testing.T) {
	tests := []struct {
		status int
		want   ErrorType
	}{
		{http.StatusBadRequest, ErrorTypeInvalidRequest},
		{http.StatusNotFound, ErrorTypeInvalidRequest},
		{http.StatusUnauthorized, ErrorTypeAuthentication},
		{http.StatusPaymentRequired, ErrorTypeCard},
		{http.StatusForbidden, ErrorTypePermission},
		{http.StatusTooManyRequests, ErrorTypeRateLimit},
		{http.StatusInternalServerError, ErrorTypeAPI},
		{http.StatusBadGateway, ErrorTypeAPI},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorTypeForStatus(tt.status))
		})
	}
}
