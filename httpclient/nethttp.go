package httpclient

import (
	"context"
	"net/http"
)

// NetHTTPBackend sends requests with a plain *http.Client.
type NetHTTPBackend struct {
	client *http.Client
}

// NewNetHTTPBackend wraps client. A nil client uses a client with
// DefaultConfig's timeout and http.DefaultTransport.
func NewNetHTTPBackend(client *http.Client) *NetHTTPBackend {
	if client == nil {
		client = &http.Client{Timeout: DefaultConfig().Timeout}
	}
	return &NetHTTPBackend{client: client}
}

// Client returns the wrapped *http.Client.
func (b *NetHTTPBackend) Client() *http.Client {
	return b.client
}

// Do implements Backend.
func (b *NetHTTPBackend) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	return b.client.Do(req.WithContext(ctx))
}
