package httpclient

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// HeaderIdempotencyKey marks a mutating request as safe to repeat.
const HeaderIdempotencyKey = "Idempotency-Key"

// retryableStatusError signals backoff.Retry to try again after a response
// the classifier rejected.
type retryableStatusError struct {
	statusCode int
}

func (e *retryableStatusError) Error() string {
	return fmt.Sprintf("retryable status %d", e.statusCode)
}

// retryTransport wraps an http.RoundTripper with retry logic.
type retryTransport struct {
	base       http.RoundTripper
	cfg        *internalConfig
	classifier RetryClassifier
}

func newRetryTransport(base http.RoundTripper, cfg *internalConfig) http.RoundTripper {
	if !cfg.RetryConfig.IsEnabled() {
		return base
	}

	classifier := cfg.RetryClassifier
	if classifier == nil {
		classifier = DefaultClassifier
	}

	return &retryTransport{
		base:       base,
		cfg:        cfg,
		classifier: classifier,
	}
}

// isReplayable reports whether the request may be sent more than once.
// POST and PATCH need an idempotency key so the API can deduplicate them.
func isReplayable(req *http.Request) bool {
	switch req.Method {
	case http.MethodPost, http.MethodPatch:
		return req.Header.Get(HeaderIdempotencyKey) != ""
	default:
		return true
	}
}

// RoundTrip implements http.RoundTripper with automatic retries.
//
// When every attempt ends in a retryable status, the last response is
// returned as-is so the caller can map it to an API error.
func (t *retryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if !isReplayable(req) {
		return t.base.RoundTrip(req)
	}

	ctx := req.Context()
	cfg := t.cfg.RetryConfig

	var bodyBytes []byte
	if req.Body != nil && req.Body != http.NoBody && req.GetBody == nil {
		var err error
		bodyBytes, err = io.ReadAll(req.Body)
		if err != nil {
			return nil, err
		}
		req.Body.Close()
		req.Body = io.NopCloser(bytes.NewReader(bodyBytes))
	}

	span := trace.SpanFromContext(ctx)

	var (
		attempt   int
		lastResp  *http.Response
		startTime = time.Now()
	)

	retryOpts := []backoff.RetryOption{
		backoff.WithBackOff(t.getBackoff()),
		backoff.WithMaxTries(cfg.MaxRetries + 1),
	}
	if cfg.MaxElapsedTime > 0 {
		retryOpts = append(retryOpts, backoff.WithMaxElapsedTime(cfg.MaxElapsedTime))
	}
	retryOpts = append(retryOpts, backoff.WithNotify(func(err error, next time.Duration) {
		attempt++
		t.recordRetryEvent(span, attempt, err, next)
		t.cfg.Metrics.recordRetryAttempt(ctx, t.cfg.baseAttributes(), attempt)
	}))

	resp, err := backoff.Retry(ctx, func() (*http.Response, error) {
		if lastResp != nil {
			drain(lastResp)
			lastResp = nil
		}

		resp, err := t.base.RoundTrip(t.cloneRequest(req, bodyBytes))

		if !t.classifier(resp, err) {
			if err != nil {
				return nil, backoff.Permanent(err)
			}
			return resp, nil
		}

		if err != nil {
			return nil, err
		}
		lastResp = resp
		return nil, &retryableStatusError{statusCode: resp.StatusCode}
	}, retryOpts...)

	var statusErr *retryableStatusError
	if errors.As(err, &statusErr) && lastResp != nil {
		resp, err = lastResp, nil
	} else if lastResp != nil && resp != lastResp {
		drain(lastResp)
	}

	if attempt > 0 {
		span.SetAttributes(
			attribute.Int("http.retry_count", attempt),
			attribute.Bool("http.retry_success", err == nil && statusErr == nil),
		)
		if err != nil || statusErr != nil {
			t.cfg.Metrics.recordRetryExhausted(ctx, t.cfg.baseAttributes())
		}
	}
	t.cfg.Metrics.recordRetryDuration(ctx, t.cfg.baseAttributes(), time.Since(startTime))

	return resp, err
}

func drain(resp *http.Response) {
	if resp.Body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}

// cloneRequest creates a copy of the request with a fresh body.
func (t *retryTransport) cloneRequest(req *http.Request, bodyBytes []byte) *http.Request {
	clone := req.Clone(req.Context())

	if bodyBytes != nil {
		clone.Body = io.NopCloser(bytes.NewReader(bodyBytes))
		clone.ContentLength = int64(len(bodyBytes))
	} else if req.GetBody != nil {
		body, err := req.GetBody()
		if err == nil {
			clone.Body = body
		}
	}

	return clone
}

func (t *retryTransport) getBackoff() backoff.BackOff {
	if t.cfg.RetryBackOff != nil {
		t.cfg.RetryBackOff.Reset()
		return t.cfg.RetryBackOff
	}
	return ExponentialBackOffFromConfig(t.cfg.RetryConfig)
}

func (t *retryTransport) recordRetryEvent(
	span trace.Span,
	attempt int,
	err error,
	nextDelay time.Duration,
) {
	if !span.IsRecording() {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.Int("retry.attempt", attempt),
		attribute.Int64("retry.delay_ms", nextDelay.Milliseconds()),
	}

	var statusErr *retryableStatusError
	switch {
	case errors.As(err, &statusErr):
		attrs = append(attrs, attribute.Int("retry.status_code", statusErr.statusCode))
	case err != nil:
		attrs = append(attrs, attribute.String("retry.reason", classifyError(err)))
		span.RecordError(err)
	}

	span.AddEvent("http.retry", trace.WithAttributes(attrs...))
}

func (t *retryTransport) Unwrap() http.RoundTripper { return t.base }
