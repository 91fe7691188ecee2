package httpclient

import (
	"context"
	"net/http"

	"github.com/hashicorp/go-retryablehttp"
)

// RetryableHTTPBackend sends requests with hashicorp/go-retryablehttp.
type RetryableHTTPBackend struct {
	client *retryablehttp.Client
}

// NewRetryableHTTPBackend wraps client. A nil client gets retryablehttp's
// defaults with its logger silenced and retries disabled, so retry policy
// stays with the caller and error statuses are passed through.
func NewRetryableHTTPBackend(client *retryablehttp.Client) *RetryableHTTPBackend {
	if client == nil {
		client = retryablehttp.NewClient()
		client.Logger = nil
		client.RetryMax = 0
		client.ErrorHandler = retryablehttp.PassthroughErrorHandler
		client.HTTPClient.Timeout = DefaultConfig().Timeout
	}
	return &RetryableHTTPBackend{client: client}
}

// Client returns the wrapped retryablehttp client.
func (b *RetryableHTTPBackend) Client() *retryablehttp.Client {
	return b.client
}

// Do implements Backend.
func (b *RetryableHTTPBackend) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	rreq, err := retryablehttp.FromRequest(req.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	return b.client.Do(rreq)
}
