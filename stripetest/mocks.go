package stripetest

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"sync"

	"github.com/kroma-labs/stripe-sentinel/httpclient"
	"github.com/kroma-labs/stripe-sentinel/requestor"
	"github.com/kroma-labs/stripe-sentinel/stripe"
	"github.com/stretchr/testify/mock"
)

var _ httpclient.Backend = (*InertBackend)(nil)

// InertBackend is an httpclient.Backend that never touches the network.
// Until an expectation for Do is set it answers every request with an empty
// JSON object and status 200; requests are recorded either way.
type InertBackend struct {
	mock.Mock

	mu       sync.Mutex
	requests []*http.Request
}

type InertBackend_Expecter struct {
	mock *mock.Mock
}

func (_m *InertBackend) EXPECT() *InertBackend_Expecter {
	return &InertBackend_Expecter{mock: &_m.Mock}
}

// Do records req, then answers from the expectations if any are set.
func (_m *InertBackend) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	_m.mu.Lock()
	_m.requests = append(_m.requests, req)
	_m.mu.Unlock()

	if !_m.expecting("Do") {
		return emptyResponse(req), nil
	}

	ret := _m.Called(ctx, req)

	if len(ret) == 0 {
		panic("no return value specified for Do")
	}

	var r0 *http.Response
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, *http.Request) (*http.Response, error)); ok {
		return rf(ctx, req)
	}
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*http.Response)
	}
	r1 = ret.Error(1)

	return r0, r1
}

// Requests returns the requests seen so far, oldest first.
func (_m *InertBackend) Requests() []*http.Request {
	_m.mu.Lock()
	defer _m.mu.Unlock()
	return append([]*http.Request(nil), _m.requests...)
}

func (_m *InertBackend) expecting(method string) bool {
	for _, c := range _m.ExpectedCalls {
		if c.Method == method {
			return true
		}
	}
	return false
}

func emptyResponse(req *http.Request) *http.Response {
	return &http.Response{
		Status:        "200 OK",
		StatusCode:    http.StatusOK,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        http.Header{"Content-Type": []string{"application/json"}},
		Body:          io.NopCloser(bytes.NewReader([]byte("{}"))),
		ContentLength: 2,
		Request:       req,
	}
}

// InertBackend_Do_Call is a *mock.Call with typed Run/Return for Do.
type InertBackend_Do_Call struct {
	*mock.Call
}

// Do is a helper method to define mock.On call
//   - ctx context.Context
//   - req *http.Request
func (_e *InertBackend_Expecter) Do(ctx interface{}, req interface{}) *InertBackend_Do_Call {
	return &InertBackend_Do_Call{Call: _e.mock.On("Do", ctx, req)}
}

func (_c *InertBackend_Do_Call) Run(run func(ctx context.Context, req *http.Request)) *InertBackend_Do_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(*http.Request))
	})
	return _c
}

func (_c *InertBackend_Do_Call) Return(_a0 *http.Response, _a1 error) *InertBackend_Do_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

func (_c *InertBackend_Do_Call) RunAndReturn(run func(context.Context, *http.Request) (*http.Response, error)) *InertBackend_Do_Call {
	_c.Call.Return(run)
	return _c
}

// FactoryMock stands in for requestor.New. Options are recorded as the
// requestor.Settings they produce, since funcs cannot be compared.
type FactoryMock struct {
	mock.Mock
}

type FactoryMock_Expecter struct {
	mock *mock.Mock
}

func (_m *FactoryMock) EXPECT() *FactoryMock_Expecter {
	return &FactoryMock_Expecter{mock: &_m.Mock}
}

// New has the signature of requestor.Factory.
func (_m *FactoryMock) New(apiKey string, opts ...requestor.Option) requestor.Requestor {
	settings := requestor.Apply(opts...)
	ret := _m.Called(apiKey, settings)

	if len(ret) == 0 {
		panic("no return value specified for New")
	}

	if rf, ok := ret.Get(0).(func(string, requestor.Settings) requestor.Requestor); ok {
		return rf(apiKey, settings)
	}
	if ret.Get(0) == nil {
		return nil
	}
	return ret.Get(0).(requestor.Requestor)
}

type FactoryMock_New_Call struct {
	*mock.Call
}

// New is a helper method to define mock.On call
//   - apiKey string
//   - settings requestor.Settings
func (_e *FactoryMock_Expecter) New(apiKey interface{}, settings interface{}) *FactoryMock_New_Call {
	return &FactoryMock_New_Call{Call: _e.mock.On("New", apiKey, settings)}
}

func (_c *FactoryMock_New_Call) Return(_a0 requestor.Requestor) *FactoryMock_New_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *FactoryMock_New_Call) RunAndReturn(run func(string, requestor.Settings) requestor.Requestor) *FactoryMock_New_Call {
	_c.Call.Return(run)
	return _c
}

var _ requestor.Requestor = (*RequestorMock)(nil)

// RequestorMock is a mock type for the requestor.Requestor type
type RequestorMock struct {
	mock.Mock
}

type RequestorMock_Expecter struct {
	mock *mock.Mock
}

func (_m *RequestorMock) EXPECT() *RequestorMock_Expecter {
	return &RequestorMock_Expecter{mock: &_m.Mock}
}

// Request provides a mock function with given fields: ctx, method, url, params, headers
func (_m *RequestorMock) Request(
	ctx context.Context,
	method, url string,
	params stripe.Params,
	headers http.Header,
) (*requestor.Response, string, error) {
	ret := _m.Called(ctx, method, url, params, headers)

	if len(ret) == 0 {
		panic("no return value specified for Request")
	}

	type requestFn = func(context.Context, string, string, stripe.Params, http.Header) (*requestor.Response, string, error)
	if rf, ok := ret.Get(0).(requestFn); ok {
		return rf(ctx, method, url, params, headers)
	}

	var r0 *requestor.Response
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*requestor.Response)
	}
	return r0, ret.String(1), ret.Error(2)
}

type RequestorMock_Request_Call struct {
	*mock.Call
}

// Request is a helper method to define mock.On call
//   - ctx context.Context
//   - method string
//   - url string
//   - params stripe.Params
//   - headers http.Header
func (_e *RequestorMock_Expecter) Request(
	ctx interface{},
	method interface{},
	url interface{},
	params interface{},
	headers interface{},
) *RequestorMock_Request_Call {
	return &RequestorMock_Request_Call{Call: _e.mock.On("Request", ctx, method, url, params, headers)}
}

func (_c *RequestorMock_Request_Call) Return(_a0 *requestor.Response, _a1 string, _a2 error) *RequestorMock_Request_Call {
	_c.Call.Return(_a0, _a1, _a2)
	return _c
}

func (_c *RequestorMock_Request_Call) RunAndReturn(
	run func(context.Context, string, string, stripe.Params, http.Header) (*requestor.Response, string, error),
) *RequestorMock_Request_Call {
	_c.Call.Return(run)
	return _c
}
