package httpclient

import (
	"context"
	"net/http"
	"time"
)

var _ Backend = (*Client)(nil)

// Client is the instrumented backend used for API traffic.
//
// Requests pass through the transport chain, outermost first:
//
//	tracing and metrics → circuit breaker → retry → rate limit → faults → base transport
//
// Create a Client using New():
//
//	client := httpclient.New(
//	    httpclient.WithServiceName("stripe"),
//	    httpclient.WithRetryConfig(httpclient.DefaultRetryConfig()),
//	)
//	resp, err := client.Do(ctx, req)
type Client struct {
	httpClient *http.Client
	config     *internalConfig
}

// New creates a Client with pooled connections, tracing, metrics and retries.
//
// Example - test client over a mock transport:
//
//	mock := httpclient.NewMockTransport()
//	mock.StubJSON(http.MethodGet, "/v1/charges/ch_1", http.StatusOK, map[string]any{"id": "ch_1"})
//	client := httpclient.New(
//	    httpclient.WithMockTransport(mock),
//	    httpclient.WithRetryConfig(httpclient.NoRetryConfig()),
//	)
func New(opts ...Option) *Client {
	cfg := newConfig(opts...)

	transport := newFaultTransport(cfg.buildTransport(), cfg.FaultConfig)
	limited := newRateLimitTransport(transport, cfg.RateLimitConfig)
	withRetry := newRetryTransport(limited, cfg)
	withBreaker := newCircuitBreakerTransport(withRetry, cfg)
	instrumented := newOtelTransport(withBreaker, cfg)

	return &Client{
		httpClient: &http.Client{
			Transport: instrumented,
			Timeout:   cfg.httpConfig.Timeout,
		},
		config: cfg,
	}
}

// HTTP returns the underlying *http.Client, for libraries that want one.
func (c *Client) HTTP() *http.Client {
	return c.httpClient
}

// Do sends req with ctx attached.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	req = req.WithContext(ctx)

	if !c.config.Debug {
		return c.httpClient.Do(req)
	}

	logger := c.config.Logger.With().Str("service", c.config.ServiceName).Logger()
	logRequest(logger, req)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Debug().Err(err).Dur("duration", time.Since(start)).Msg("HTTP request failed")
		return nil, err
	}

	logResponse(logger, resp, time.Since(start))
	return resp, nil
}
