package httpclient

import (
	"context"
	"crypto/tls"
	"errors"
	"io"
	"net"
	"net/http"
	"os"
	"strings"
	"syscall"
)

// HeaderShouldRetry is set by the API when it knows whether repeating the
// request can succeed. It overrides status-code based classification.
const HeaderShouldRetry = "Stripe-Should-Retry"

// RetryClassifier determines if a request should be retried.
// Return true to retry, false to stop immediately.
//
// Example classifier that also retries 500:
//
//	client := httpclient.New(
//	    httpclient.WithRetryClassifier(func(resp *http.Response, err error) bool {
//	        if resp != nil && resp.StatusCode == http.StatusInternalServerError {
//	            return true
//	        }
//	        return httpclient.DefaultClassifier(resp, err)
//	    }),
//	)
type RetryClassifier func(resp *http.Response, err error) bool

// DefaultClassifier applies the API's retry rules.
//
// Retries on:
//   - transient network errors (timeouts, refused or reset connections)
//   - "Stripe-Should-Retry: true"
//   - 409 Conflict (concurrent update of the same object)
//   - 429, 502, 503 and 504
//
// Does not retry on:
//   - "Stripe-Should-Retry: false", whatever the status
//   - other 4xx and 500
//   - context cancellation
//   - TLS certificate and NXDOMAIN errors
func DefaultClassifier(resp *http.Response, err error) bool {
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return false
		}
		if isPermanentError(err) {
			return false
		}
		return true
	}

	if resp == nil {
		return false
	}

	switch strings.ToLower(resp.Header.Get(HeaderShouldRetry)) {
	case "true":
		return true
	case "false":
		return false
	}

	return isRetryableStatusCode(resp.StatusCode)
}

func isRetryableStatusCode(statusCode int) bool {
	switch statusCode {
	case http.StatusConflict,
		http.StatusTooManyRequests,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

// isRetryableNetworkError returns true for network errors that are
// typically transient.
func isRetryableNetworkError(err error) bool {
	if err == nil {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return dnsErr.IsTemporary || dnsErr.IsTimeout
	}

	if errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNABORTED) ||
		errors.Is(err, syscall.ETIMEDOUT) ||
		errors.Is(err, syscall.EPIPE) {
		return true
	}

	if errors.Is(err, os.ErrDeadlineExceeded) || errors.Is(err, io.EOF) {
		return true
	}

	return containsPattern(err, "connection refused", "connection reset", "i/o timeout", "broken pipe", "eof")
}

// isPermanentError returns true for errors that will not succeed on retry.
func isPermanentError(err error) bool {
	if err == nil {
		return false
	}

	var certErr *tls.CertificateVerificationError
	if errors.As(err, &certErr) {
		return true
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) && dnsErr.IsNotFound {
		return true
	}

	if errors.Is(err, syscall.EACCES) {
		return true
	}

	return containsPattern(err, "x509:", "certificate", "tls:")
}

func containsPattern(err error, patterns ...string) bool {
	msg := strings.ToLower(err.Error())
	for _, p := range patterns {
		if strings.Contains(msg, p) {
			return true
		}
	}
	return false
}

// NeverRetryClassifier returns a classifier that never retries.
func NeverRetryClassifier() RetryClassifier {
	return func(_ *http.Response, _ error) bool {
		return false
	}
}

// StatusCodeClassifier retries the given status codes and transient
// network errors.
//
// Example:
//
//	classifier := httpclient.StatusCodeClassifier(500, 502, 503, 504)
func StatusCodeClassifier(codes ...int) RetryClassifier {
	codeSet := make(map[int]bool, len(codes))
	for _, code := range codes {
		codeSet[code] = true
	}

	return func(resp *http.Response, err error) bool {
		if err != nil {
			return isRetryableNetworkError(err) && !isPermanentError(err)
		}
		if resp != nil {
			return codeSet[resp.StatusCode]
		}
		return false
	}
}
