package httpclient

import (
	"time"
)

// RetryConfig holds the retry behavior configuration.
// Use DefaultRetryConfig() and modify the fields you care about.
//
// Retries use exponential backoff with jitter. A retry happens only when the
// RetryClassifier agrees and the request is safe to repeat: POST and PATCH
// requests need an Idempotency-Key header.
//
// Example usage:
//
//	cfg := httpclient.DefaultRetryConfig()
//	cfg.MaxRetries = 4
//	client := httpclient.New(
//	    httpclient.WithRetryConfig(cfg),
//	)
type RetryConfig struct {
	// MaxRetries is the maximum number of retry attempts.
	// The initial request is not counted. Zero disables retries.
	// Default: 2
	MaxRetries uint

	// InitialInterval is the first backoff interval.
	// Default: 500ms
	InitialInterval time.Duration

	// MaxInterval caps a single backoff interval.
	// Default: 2s
	MaxInterval time.Duration

	// MaxElapsedTime is the time budget for the whole retry sequence.
	// Zero means only MaxRetries applies.
	// Default: 30s
	MaxElapsedTime time.Duration

	// Multiplier controls exponential growth of backoff intervals.
	//
	// Example with InitialInterval=500ms, Multiplier=2.0:
	//   Retry 1: 500ms → Retry 2: 1s → Retry 3: 2s (capped)
	//
	// Default: 2.0
	Multiplier float64

	// JitterFactor randomizes each interval by ±JitterFactor.
	// Default: 0.5
	JitterFactor float64
}

// Default values for RetryConfig.
const (
	DefaultMaxRetries      = 2
	DefaultInitialInterval = 500 * time.Millisecond
	DefaultMaxInterval     = 2 * time.Second
	DefaultMaxElapsedTime  = 30 * time.Second
	DefaultMultiplier      = 2.0

	// DefaultJitterFactor is ±50% randomization.
	DefaultJitterFactor = 0.5
)

// DefaultRetryConfig returns the retry policy used for API traffic:
// two retries, 500ms → 1s, capped at 2s per wait and 30s overall.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:      DefaultMaxRetries,
		InitialInterval: DefaultInitialInterval,
		MaxInterval:     DefaultMaxInterval,
		MaxElapsedTime:  DefaultMaxElapsedTime,
		Multiplier:      DefaultMultiplier,
		JitterFactor:    DefaultJitterFactor,
	}
}

// NoRetryConfig returns configuration that disables retries entirely.
//
// Test suites use this so that a stubbed 503 is observed exactly once.
func NoRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:   0,
		JitterFactor: -1, // distinguishes an explicit "off" from the zero value
	}
}

// IsEnabled returns true if retries are enabled.
func (c RetryConfig) IsEnabled() bool {
	return c.MaxRetries > 0
}
