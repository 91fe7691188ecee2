package httpclient

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/goccy/go-json"
)

// MockTransport is an http.RoundTripper for tests. Stubs are matched in the
// order they were added; a stub registered with Once is consumed by its
// first match.
type MockTransport struct {
	mu       sync.Mutex
	stubs    []*stub
	fallback *stub
	requests []RecordedRequest
}

type stub struct {
	matcher    func(*http.Request) bool
	statusCode int
	header     http.Header
	body       []byte
	err        error
	once       bool
}

// RecordedRequest is a request seen by MockTransport with its body read.
type RecordedRequest struct {
	Method string
	Path   string
	Query  string
	Header http.Header
	Body   []byte
}

// Form parses a form-encoded body, or the query for bodiless requests.
func (r RecordedRequest) Form() map[string][]string {
	raw := r.Query
	if len(r.Body) > 0 {
		raw = string(r.Body)
	}
	values, err := url.ParseQuery(raw)
	if err != nil {
		return nil
	}
	return values
}

// NewMockTransport creates an empty MockTransport. With no stubs, every
// request fails.
func NewMockTransport() *MockTransport {
	return &MockTransport{}
}

// Stub answers method+path requests with body.
func (m *MockTransport) Stub(method, path string, statusCode int, body string) *MockTransport {
	return m.add(&stub{
		matcher:    methodPath(method, path),
		statusCode: statusCode,
		body:       []byte(body),
	})
}

// StubJSON answers method+path requests with v encoded as JSON.
func (m *MockTransport) StubJSON(method, path string, statusCode int, v any) *MockTransport {
	body, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("httpclient: cannot encode stub body: %v", err))
	}
	return m.add(&stub{
		matcher:    methodPath(method, path),
		statusCode: statusCode,
		header:     http.Header{"Content-Type": []string{"application/json"}},
		body:       body,
	})
}

// StubError fails method+path requests with err.
func (m *MockTransport) StubError(method, path string, err error) *MockTransport {
	return m.add(&stub{matcher: methodPath(method, path), err: err})
}

// StubFunc answers requests matching the predicate.
func (m *MockTransport) StubFunc(
	matcher func(*http.Request) bool,
	statusCode int,
	header http.Header,
	body string,
) *MockTransport {
	return m.add(&stub{
		matcher:    matcher,
		statusCode: statusCode,
		header:     header,
		body:       []byte(body),
	})
}

// Once marks the most recently added stub as single-use.
func (m *MockTransport) Once() *MockTransport {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n := len(m.stubs); n > 0 {
		m.stubs[n-1].once = true
	}
	return m
}

// Default answers every request no stub matches.
func (m *MockTransport) Default(statusCode int, body string) *MockTransport {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fallback = &stub{statusCode: statusCode, body: []byte(body)}
	return m
}

func (m *MockTransport) add(s *stub) *MockTransport {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stubs = append(m.stubs, s)
	return m
}

// RoundTrip implements http.RoundTripper.
func (m *MockTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	rec := RecordedRequest{
		Method: req.Method,
		Path:   req.URL.Path,
		Query:  req.URL.RawQuery,
		Header: req.Header.Clone(),
	}
	if req.Body != nil && req.Body != http.NoBody {
		body, err := io.ReadAll(req.Body)
		req.Body.Close()
		if err != nil {
			return nil, err
		}
		rec.Body = body
	}

	m.mu.Lock()
	m.requests = append(m.requests, rec)
	matched := m.match(req)
	m.mu.Unlock()

	if matched == nil {
		return nil, fmt.Errorf("httpclient: no stub for %s %s", req.Method, req.URL.Path)
	}
	if matched.err != nil {
		return nil, matched.err
	}
	return matched.response(req), nil
}

// match must be called with m.mu held.
func (m *MockTransport) match(req *http.Request) *stub {
	for i, s := range m.stubs {
		if !s.matcher(req) {
			continue
		}
		if s.once {
			m.stubs = append(m.stubs[:i:i], m.stubs[i+1:]...)
		}
		return s
	}
	return m.fallback
}

func (s *stub) response(req *http.Request) *http.Response {
	header := s.header.Clone()
	if header == nil {
		header = make(http.Header)
	}
	return &http.Response{
		Status:        strconv.Itoa(s.statusCode) + " " + http.StatusText(s.statusCode),
		StatusCode:    s.statusCode,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        header,
		Body:          io.NopCloser(bytes.NewReader(s.body)),
		ContentLength: int64(len(s.body)),
		Request:       req,
	}
}

// Requests returns every request seen so far, oldest first.
func (m *MockTransport) Requests() []RecordedRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]RecordedRequest(nil), m.requests...)
}

// RequestCount returns the number of requests made.
func (m *MockTransport) RequestCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

// LastRequest returns the most recent request.
func (m *MockTransport) LastRequest() (RecordedRequest, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.requests) == 0 {
		return RecordedRequest{}, false
	}
	return m.requests[len(m.requests)-1], true
}

// Reset clears recorded requests and stubs.
func (m *MockTransport) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = nil
	m.stubs = nil
	m.fallback = nil
}

func methodPath(method, path string) func(*http.Request) bool {
	method = strings.ToUpper(method)
	return func(req *http.Request) bool {
		return req.Method == method && req.URL.Path == path
	}
}
