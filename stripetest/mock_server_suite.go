package stripetest

import (
	"context"
	"net/http"
	"strings"
	"sync"

	"github.com/kroma-labs/stripe-sentinel/requestor"
	"github.com/kroma-labs/stripe-sentinel/stripe"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockServerRestoreAttributes are saved before and restored after each
// MockServerSuite test.
var MockServerRestoreAttributes = []stripe.Attribute{
	stripe.AttrAPIBase,
	stripe.AttrAPIKey,
	stripe.AttrClientID,
}

// Call is one request seen by MockServerSuite.
type Call struct {
	Requestor *requestor.APIRequestor
	Method    string
	URL       string
	Params    stripe.Params
	Headers   http.Header

	// Args holds the arguments as supplied: the requestor, method and url,
	// then params when params or headers were given, then headers when
	// headers were given.
	Args mock.Arguments
}

type stubKey struct {
	method string
	url    string
}

// MockServerSuite routes requestor calls to stripe-mock, except for
// (method, url) pairs stubbed with StubRequest.
//
//	type ChargeSuite struct{ stripetest.MockServerSuite }
//
//	func (s *ChargeSuite) TestRetrieve() {
//	    s.StubRequest("get", "/v1/charges/ch_123", map[string]any{"id": "ch_123"})
//	    _, err := resource.New("").Charges.Retrieve(context.Background(), "ch_123")
//	    s.Require().NoError(err)
//	    s.AssertRequested("get", "/v1/charges/ch_123")
//	}
type MockServerSuite struct {
	suite.Suite

	saved          *stripe.Saved
	restoreRequest func()

	mu    sync.Mutex
	stubs map[stubKey]any
	calls []Call
}

func (s *MockServerSuite) SetupTest() {
	s.saved = stripe.Snapshot(MockServerRestoreAttributes...)

	stripe.SetAPIBase(MockAPIBase())
	stripe.SetAPIKey(MockAPIKey)
	stripe.SetClientID(MockClientID)

	s.mu.Lock()
	s.stubs = make(map[stubKey]any)
	s.calls = nil
	s.mu.Unlock()

	s.restoreRequest = requestor.Intercept(s.intercept)
}

func (s *MockServerSuite) TearDownTest() {
	if s.restoreRequest != nil {
		s.restoreRequest()
		s.restoreRequest = nil
	}
	if s.saved != nil {
		s.saved.Restore()
		s.saved = nil
	}
}

func (s *MockServerSuite) intercept(next requestor.RequestFunc) requestor.RequestFunc {
	return func(
		ctx context.Context,
		r *requestor.APIRequestor,
		method, url string,
		params stripe.Params,
		headers http.Header,
	) (*requestor.Response, string, error) {
		key := stubKey{method: strings.ToUpper(method), url: url}

		s.mu.Lock()
		s.calls = append(s.calls, newCall(r, key.method, url, params, headers))
		body, stubbed := s.stubs[key]
		if stubbed {
			delete(s.stubs, key)
		}
		s.mu.Unlock()

		if stubbed {
			return toResponse(body), stripe.APIKey(), nil
		}
		return next(ctx, r, method, url, params, headers)
	}
}

func newCall(r *requestor.APIRequestor, method, url string, params stripe.Params, headers http.Header) Call {
	args := mock.Arguments{r, method, url}
	if params != nil || headers != nil {
		args = append(args, params)
	}
	if headers != nil {
		args = append(args, headers)
	}
	return Call{
		Requestor: r,
		Method:    method,
		URL:       url,
		Params:    params,
		Headers:   headers,
		Args:      args,
	}
}

// StubRequest answers the next (method, url) call with body instead of
// sending it. The stub is consumed by its first match. body defaults to an
// empty object; a *requestor.Response is returned as is.
func (s *MockServerSuite) StubRequest(method, url string, body ...any) {
	var b any
	if len(body) > 0 {
		b = body[0]
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.stubs[stubKey{method: strings.ToUpper(method), url: url}] = b
}

// Calls returns the calls seen so far, oldest first.
func (s *MockServerSuite) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// AssertRequested checks the most recent call. The optional arguments are
// the expected params and headers, defaulting to mock.Anything; a plain
// map[string]any is compared as stripe.Params. As mock.Anything cannot stand
// in for an argument that was never supplied, the call is compared against
// (ANY, method, url), then with params, then with params and headers. When
// none fit, the mismatch of the signature as long as the call is reported.
func (s *MockServerSuite) AssertRequested(method, url string, paramsAndHeaders ...any) bool {
	s.T().Helper()

	calls := s.Calls()
	if len(calls) == 0 {
		return s.Fail("no requests were made")
	}

	if mismatch, ok := matchRequested(calls[len(calls)-1], method, url, paramsAndHeaders...); !ok {
		return s.Fail("request does not match the most recent call", mismatch)
	}
	return true
}

// matchRequested reports whether call fits any accepted signature, and the
// most telling mismatch otherwise.
func matchRequested(call Call, method, url string, paramsAndHeaders ...any) (string, bool) {
	var params, headers any = mock.Anything, mock.Anything
	if len(paramsAndHeaders) > 0 {
		params = paramsAndHeaders[0]
	}
	if len(paramsAndHeaders) > 1 {
		headers = paramsAndHeaders[1]
	}
	if m, ok := params.(map[string]any); ok {
		params = stripe.Params(m)
	}

	method = strings.ToUpper(method)
	signatures := []mock.Arguments{
		{mock.Anything, method, url},
		{mock.Anything, method, url, params},
		{mock.Anything, method, url, params, headers},
	}

	var mismatch string
	for _, expected := range signatures {
		diff, n := expected.Diff(call.Args)
		if n == 0 {
			return "", true
		}
		if mismatch == "" || len(expected) == len(call.Args) {
			mismatch = diff
		}
	}
	return mismatch, false
}

// AssertNotRequested checks that no call to (method, url) was made.
func (s *MockServerSuite) AssertNotRequested(method, url string) bool {
	s.T().Helper()

	method = strings.ToUpper(method)
	for _, c := range s.Calls() {
		if c.Method == method && c.URL == url {
			return s.Failf("unexpected request", "%s %s was requested", method, url)
		}
	}
	return true
}

func toResponse(body any) *requestor.Response {
	if resp, ok := body.(*requestor.Response); ok {
		return resp
	}
	return requestor.NewResponse(body)
}
