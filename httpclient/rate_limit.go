package httpclient

import (
	"context"
	"errors"
	"net/http"

	"golang.org/x/time/rate"
)

// RateLimitConfig configures client-side rate limiting. The limiter sits
// below the retry transport so every attempt consumes a token.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate. Zero disables limiting.
	RequestsPerSecond float64

	// Burst is the number of requests allowed above the sustained rate.
	Burst int

	// WaitOnLimit blocks until a token is available (bounded by the request
	// context) instead of failing with ErrRateLimited.
	WaitOnLimit bool
}

// DefaultRateLimitConfig matches the API's documented live-mode limit of
// 100 requests per second.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		RequestsPerSecond: 100,
		Burst:             10,
		WaitOnLimit:       true,
	}
}

// TestModeRateLimitConfig matches the lower test-mode limit.
func TestModeRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		RequestsPerSecond: 25,
		Burst:             5,
		WaitOnLimit:       true,
	}
}

// ErrRateLimited is returned when a request is rejected by the client-side limiter.
var ErrRateLimited = errors.New("rate limit exceeded")

type rateLimitTransport struct {
	next    http.RoundTripper
	limiter *rate.Limiter
	wait    bool
}

func newRateLimitTransport(next http.RoundTripper, cfg *RateLimitConfig) http.RoundTripper {
	if cfg == nil || cfg.RequestsPerSecond <= 0 {
		return next
	}

	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	return &rateLimitTransport{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst),
		wait:    cfg.WaitOnLimit,
	}
}

func (t *rateLimitTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	if !t.wait {
		if !t.limiter.Allow() {
			return nil, ErrRateLimited
		}
		return t.next.RoundTrip(req)
	}

	if err := t.limiter.Wait(ctx); err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, err
		}
		// Wait also fails when the deadline is shorter than the token delay.
		return nil, ErrRateLimited
	}
	return t.next.RoundTrip(req)
}

func (t *rateLimitTransport) Unwrap() http.RoundTripper { return t.next }
