// Package httpclient provides the HTTP backends that carry API requests.
//
// # Backends
//
// A Backend sends one *http.Request and returns the *http.Response. Four are
// registered by name:
//
//   - "nethttp": a plain *http.Client
//   - "retryablehttp": hashicorp/go-retryablehttp with its own retries off
//   - "fasthttp": valyala/fasthttp, converted to and from net/http types
//   - "sentinel": Client, the instrumented default
//
// Look one up with Lookup, or replace one for the duration of a test with
// Swap:
//
//	restore := httpclient.Swap(httpclient.BackendNetHTTP, fake)
//	defer restore()
//
// # Client
//
// Client wraps a pooled transport with OpenTelemetry tracing and metrics, a
// circuit breaker, retries and client-side rate limiting:
//
//	client := httpclient.New(
//	    httpclient.WithServiceName("stripe"),
//	    httpclient.WithBreakerConfig(httpclient.DefaultBreakerConfig()),
//	    httpclient.WithRateLimit(httpclient.TestModeRateLimitConfig()),
//	)
//
// # Retries
//
// DefaultClassifier honors the Stripe-Should-Retry response header and
// otherwise retries 409, 429, 502, 503, 504 and transient network errors.
// POST and PATCH requests are retried only when they carry an
// Idempotency-Key header.
//
// # Circuit Breaker
//
// The breaker counts 5xx responses and network errors. Breaker state can be
// shared between processes through Redis:
//
//	store := httpclient.NewRedisStore(rdb)
//	client := httpclient.New(
//	    httpclient.WithBreakerConfig(httpclient.DistributedBreakerConfig(store)),
//	)
//
// # Fault Injection
//
// WithFaults sits under the rate limiter and injects latency, dial errors,
// timeouts or error statuses, so retry and breaker paths can be exercised
// without a misbehaving server:
//
//	client := httpclient.New(httpclient.WithFaults(&httpclient.FaultConfig{
//	    StatusRate: 0.2,
//	    Status:     http.StatusTooManyRequests,
//	}))
//
// # Testing
//
// MockTransport stubs responses by method and path and records every request:
//
//	mock := httpclient.NewMockTransport().
//	    StubJSON(http.MethodPost, "/v1/charges", http.StatusOK, map[string]any{"id": "ch_1"})
//	client := httpclient.New(httpclient.WithMockTransport(mock))
package httpclient
