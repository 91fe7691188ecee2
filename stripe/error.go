package stripe

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType discriminates API failures.
type ErrorType string

// Error types returned by the API or synthesized by the client.
const (
	ErrorTypeAPI            ErrorType = "api_error"
	ErrorTypeAPIConnection  ErrorType = "api_connection_error"
	ErrorTypeAuthentication ErrorType = "authentication_error"
	ErrorTypeCard           ErrorType = "card_error"
	ErrorTypeInvalidRequest ErrorType = "invalid_request_error"
	ErrorTypePermission     ErrorType = "permission_error"
	ErrorTypeRateLimit      ErrorType = "rate_limit_error"
)

// Error is the error returned for every failed API call.
type Error struct {
	Type           ErrorType `json:"type"`
	Message        string    `json:"message"`
	Code           string    `json:"code,omitempty"`
	Param          string    `json:"param,omitempty"`
	DeclineCode    string    `json:"decline_code,omitempty"`
	HTTPStatusCode int       `json:"-"`
	RequestID      string    `json:"-"`
	HTTPBody       string    `json:"-"`

	// Err is the underlying transport or decoding error, if any.
	Err error `json:"-"`
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Type)
	}
	if e.RequestID != "" {
		return fmt.Sprintf("stripe: %s (request %s): %s", e.Type, e.RequestID, msg)
	}
	return fmt.Sprintf("stripe: %s: %s", e.Type, msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsErrorType reports whether err is an *Error of type t.
func IsErrorType(err error, t ErrorType) bool {
	var stripeErr *Error
	return errors.As(err, &stripeErr) && stripeErr.Type == t
}

// ErrorTypeForStatus maps an HTTP status to the error type used when the
// response body does not name one.
func ErrorTypeForStatus(status int) ErrorType {
	switch status {
	case http.StatusBadRequest, http.StatusNotFound:
		return ErrorTypeInvalidRequest
	case http.StatusUnauthorized:
		return ErrorTypeAuthentication
	case http.StatusPaymentRequired:
		return ErrorTypeCard
	case http.StatusForbidden:
		return ErrorTypePermission
	case http.StatusTooManyRequests:
		return ErrorTypeRateLimit
	default:
		return ErrorTypeAPI
	}
}
