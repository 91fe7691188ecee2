package requestor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/kroma-labs/stripe-sentinel/httpclient"
	"github.com/kroma-labs/stripe-sentinel/stripe"
)

// Requestor sends one API call. It returns the response together with the
// API key the call was made with.
type Requestor interface {
	Request(
		ctx context.Context,
		method, url string,
		params stripe.Params,
		headers http.Header,
	) (*Response, string, error)
}

// Factory builds a Requestor for an API key.
type Factory func(apiKey string, opts ...Option) Requestor

// RequestFunc is the function every APIRequestor sends through.
type RequestFunc func(
	ctx context.Context,
	r *APIRequestor,
	method, url string,
	params stripe.Params,
	headers http.Header,
) (*Response, string, error)

var seams = struct {
	mu      sync.RWMutex
	factory Factory
	request RequestFunc
}{
	factory: NewAPIRequestor,
	request: send,
}

// New returns a Requestor from the current factory.
func New(apiKey string, opts ...Option) Requestor {
	seams.mu.RLock()
	f := seams.factory
	seams.mu.RUnlock()
	return f(apiKey, opts...)
}

// SetFactory replaces the factory used by New and returns a func that
// reinstates the previous one.
func SetFactory(f Factory) (restore func()) {
	seams.mu.Lock()
	prev := seams.factory
	seams.factory = f
	seams.mu.Unlock()

	return func() {
		seams.mu.Lock()
		seams.factory = prev
		seams.mu.Unlock()
	}
}

// Intercept replaces the request function with wrap(current) and returns a
// func that reinstates the current one.
//
//	restore := requestor.Intercept(func(next requestor.RequestFunc) requestor.RequestFunc {
//	    return func(ctx context.Context, r *requestor.APIRequestor, method, url string,
//	        params stripe.Params, headers http.Header) (*requestor.Response, string, error) {
//	        log.Println(method, url)
//	        return next(ctx, r, method, url, params, headers)
//	    }
//	})
//	defer restore()
func Intercept(wrap func(next RequestFunc) RequestFunc) (restore func()) {
	seams.mu.Lock()
	prev := seams.request
	seams.request = wrap(prev)
	seams.mu.Unlock()

	return func() {
		seams.mu.Lock()
		seams.request = prev
		seams.mu.Unlock()
	}
}

func current() RequestFunc {
	seams.mu.RLock()
	defer seams.mu.RUnlock()
	return seams.request
}

// APIRequestor is the Requestor that talks HTTP.
type APIRequestor struct {
	apiKey   string
	settings Settings
}

// NewAPIRequestor is the default Factory.
func NewAPIRequestor(apiKey string, opts ...Option) Requestor {
	return &APIRequestor{apiKey: apiKey, settings: Apply(opts...)}
}

// APIKey returns the explicit key, or "" when the global key is used.
func (r *APIRequestor) APIKey() string {
	return r.apiKey
}

// Settings returns the requestor's overrides.
func (r *APIRequestor) Settings() Settings {
	return r.settings
}

// Request implements Requestor through the current RequestFunc.
func (r *APIRequestor) Request(
	ctx context.Context,
	method, url string,
	params stripe.Params,
	headers http.Header,
) (*Response, string, error) {
	return current()(ctx, r, method, url, params, headers)
}

// send is the RequestFunc that performs the HTTP exchange.
func send(
	ctx context.Context,
	r *APIRequestor,
	method, path string,
	params stripe.Params,
	headers http.Header,
) (*Response, string, error) {
	key := r.apiKey
	if key == "" {
		key = stripe.APIKey()
	}
	if key == "" {
		return nil, "", &stripe.Error{
			Type: stripe.ErrorTypeAuthentication,
			Message: "No API key provided. Set your API key with stripe.SetAPIKey " +
				"or pass it to requestor.New. You can generate API keys from the Dashboard.",
		}
	}

	backendName := r.settings.Backend
	if backendName == "" {
		backendName = stripe.DefaultBackend()
	}
	backend, err := httpclient.Lookup(backendName)
	if err != nil {
		return nil, key, fmt.Errorf("requestor: %w", err)
	}

	req, err := r.buildRequest(ctx, key, method, path, params, headers)
	if err != nil {
		return nil, key, err
	}

	logger := stripe.Logger()
	logger.Debug().
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Str("backend", backendName).
		Msg("API request")

	start := time.Now()
	httpResp, err := backend.Do(ctx, req)
	if err != nil {
		return nil, key, &stripe.Error{
			Type: stripe.ErrorTypeAPIConnection,
			Message: fmt.Sprintf("Unexpected error communicating with Stripe. "+
				"If this problem persists, let us know at support@stripe.com. (%v)", err),
			Err: err,
		}
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, key, &stripe.Error{
			Type:    stripe.ErrorTypeAPIConnection,
			Message: "Error reading response body.",
			Err:     err,
		}
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header,
		Body:       body,
		RequestID:  httpResp.Header.Get(httpclient.HeaderRequestID),
	}

	logger.Debug().
		Int("status", resp.StatusCode).
		Str("request_id", resp.RequestID).
		Dur("duration", time.Since(start)).
		Msg("API response")

	if err := interpret(resp); err != nil {
		return nil, key, err
	}
	return resp, key, nil
}

func (r *APIRequestor) buildRequest(
	ctx context.Context,
	key, method, path string,
	params stripe.Params,
	headers http.Header,
) (*http.Request, error) {
	method = strings.ToUpper(method)

	base := r.settings.APIBase
	if base == "" {
		base = stripe.APIBase()
	}
	target := strings.TrimSuffix(base, "/") + path

	var body io.Reader
	encoded := params.Encode().Encode()

	switch method {
	case http.MethodGet, http.MethodDelete:
		if encoded != "" {
			sep := "?"
			if strings.Contains(target, "?") {
				sep = "&"
			}
			target += sep + encoded
		}
	case http.MethodPost:
		body = bytes.NewBufferString(encoded)
	default:
		return nil, &stripe.Error{
			Type: stripe.ErrorTypeAPIConnection,
			Message: fmt.Sprintf("Unrecognized HTTP method %q. This may indicate a bug in the "+
				"bindings. Please contact support@stripe.com for assistance.", method),
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, &stripe.Error{Type: stripe.ErrorTypeAPIConnection, Message: err.Error(), Err: err}
	}

	req.Header.Set("Authorization", "Bearer "+key)
	req.Header.Set("User-Agent", "Stripe/v1 GoSentinel/"+stripe.BindingsVersion)
	req.Header.Set("X-Stripe-Client-User-Agent", clientUserAgent())
	if v := stripe.APIVersion(); v != "" {
		req.Header.Set("Stripe-Version", v)
	}
	if r.settings.Account != "" {
		req.Header.Set("Stripe-Account", r.settings.Account)
	}
	if method == http.MethodPost {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set(httpclient.HeaderIdempotencyKey, uuid.NewString())
	}

	for k, vs := range headers {
		req.Header[http.CanonicalHeaderKey(k)] = vs
	}

	return req, nil
}

var clientUserAgent = sync.OnceValue(func() string {
	ua, _ := json.Marshal(map[string]string{
		"bindings_version": stripe.BindingsVersion,
		"lang":             "go",
		"lang_version":     runtime.Version(),
		"publisher":        "stripe",
		"uname":            runtime.GOOS + " " + runtime.GOARCH,
	})
	return string(ua)
})

// errorBody is the envelope of every API error response.
type errorBody struct {
	Error *stripe.Error `json:"error"`
}

// interpret maps error statuses and undecodable bodies to *stripe.Error.
func interpret(resp *Response) error {
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var eb errorBody
		if err := json.Unmarshal(resp.Body, &eb); err != nil || eb.Error == nil {
			return &stripe.Error{
				Type: stripe.ErrorTypeAPI,
				Message: fmt.Sprintf("Invalid response object from API: %q (HTTP response code was %d)",
					string(resp.Body), resp.StatusCode),
				HTTPStatusCode: resp.StatusCode,
				RequestID:      resp.RequestID,
				HTTPBody:       string(resp.Body),
			}
		}

		apiErr := eb.Error
		if apiErr.Type == "" {
			apiErr.Type = stripe.ErrorTypeForStatus(resp.StatusCode)
		}
		apiErr.HTTPStatusCode = resp.StatusCode
		apiErr.RequestID = resp.RequestID
		apiErr.HTTPBody = string(resp.Body)
		return apiErr
	}

	if !json.Valid(resp.Body) {
		return &stripe.Error{
			Type: stripe.ErrorTypeAPI,
			Message: fmt.Sprintf("Invalid response body from API: %q (HTTP response code was %d)",
				string(resp.Body), resp.StatusCode),
			HTTPStatusCode: resp.StatusCode,
			RequestID:      resp.RequestID,
			HTTPBody:       string(resp.Body),
		}
	}
	return nil
}
