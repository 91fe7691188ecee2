package httpclient

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"sync"
)

// Backend performs a single HTTP exchange on behalf of the API requestor.
//
// Each supported HTTP library is adapted to this interface and registered
// under a name. The requestor looks backends up by name on every call, so a
// registered backend can be swapped out at runtime (tests use this to install
// inert mocks).
type Backend interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// BackendFunc adapts an ordinary function to the Backend interface.
type BackendFunc func(ctx context.Context, req *http.Request) (*http.Response, error)

// Do implements Backend.
func (f BackendFunc) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	return f(ctx, req)
}

// Registered backend names.
const (
	BackendNetHTTP       = "nethttp"
	BackendRetryableHTTP = "retryablehttp"
	BackendFastHTTP      = "fasthttp"
	BackendSentinel      = "sentinel"
)

// UnknownBackendError is returned by Lookup for unregistered names.
type UnknownBackendError struct {
	Name string
}

func (e *UnknownBackendError) Error() string {
	return fmt.Sprintf("httpclient: no backend registered as %q", e.Name)
}

var registry = struct {
	mu       sync.RWMutex
	backends map[string]Backend
}{
	backends: make(map[string]Backend),
}

func init() {
	Register(BackendNetHTTP, NewNetHTTPBackend(nil))
	Register(BackendRetryableHTTP, NewRetryableHTTPBackend(nil))
	Register(BackendFastHTTP, NewFastHTTPBackend(nil))
	Register(BackendSentinel, New(WithServiceName("stripe")))
}

// Register installs b under name, replacing any previous registration.
func Register(name string, b Backend) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.backends[name] = b
}

// Lookup returns the backend registered under name.
func Lookup(name string) (Backend, error) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	b, ok := registry.backends[name]
	if !ok {
		return nil, &UnknownBackendError{Name: name}
	}
	return b, nil
}

// Swap installs b under name and returns a func that reinstates whatever was
// registered before. If nothing was registered, restore removes the name.
//
// Example:
//
//	restore := httpclient.Swap(httpclient.BackendNetHTTP, fake)
//	defer restore()
func Swap(name string, b Backend) (restore func()) {
	registry.mu.Lock()
	prev, had := registry.backends[name]
	registry.backends[name] = b
	registry.mu.Unlock()

	return func() {
		registry.mu.Lock()
		defer registry.mu.Unlock()
		if had {
			registry.backends[name] = prev
			return
		}
		delete(registry.backends, name)
	}
}

// Names returns the registered backend names, sorted.
func Names() []string {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	names := make([]string, 0, len(registry.backends))
	for name := range registry.backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
