package httpclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_DefaultBackends(t *testing.T) {
	names := Names()

	for _, name := range []string{BackendFastHTTP, BackendNetHTTP, BackendRetryableHTTP, BackendSentinel} {
		assert.Contains(t, names, name)

		b, err := Lookup(name)
		require.NoError(t, err)
		assert.NotNil(t, b)
	}
}

func TestLookup_Unknown(t *testing.T) {
	_, err := Lookup("urllib2")

	var unknown *UnknownBackendError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "urllib2", unknown.Name)
}

func TestSwap(t *testing.T) {
	original, err := Lookup(BackendNetHTTP)
	require.NoError(t, err)

	fake := BackendFunc(func(context.Context, *http.Request) (*http.Response, error) {
		return nil, nil
	})

	t.Run("given existing name, then restore reinstates the original", func(t *testing.T) {
		restore := Swap(BackendNetHTTP, fake)

		got, err := Lookup(BackendNetHTTP)
		require.NoError(t, err)
		assert.NotEqual(t, original, got)

		restore()

		got, err = Lookup(BackendNetHTTP)
		require.NoError(t, err)
		assert.Equal(t, original, got)
	})

	t.Run("given new name, then restore removes it", func(t *testing.T) {
		restore := Swap("pycurl", fake)
		assert.Contains(t, Names(), "pycurl")

		restore()

		assert.NotContains(t, Names(), "pycurl")
	})
}

func TestNetHTTPBackend_Do(t *testing.T) {
	transport := httpmock.NewMockTransport()
	transport.RegisterResponder(http.MethodGet, "https://api.stripe.com/v1/charges/ch_1",
		httpmock.NewStringResponder(http.StatusOK, `{"id":"ch_1","object":"charge"}`))
	transport.RegisterResponder(http.MethodPost, "https://api.stripe.com/v1/charges",
		func(req *http.Request) (*http.Response, error) {
			if err := req.ParseForm(); err != nil {
				return httpmock.NewStringResponse(http.StatusBadRequest, ""), nil
			}
			return httpmock.NewStringResponse(http.StatusOK, `{"amount":`+req.PostForm.Get("amount")+`}`), nil
		})

	b := NewNetHTTPBackend(&http.Client{Transport: transport})

	t.Run("given GET, then returns body", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "https://api.stripe.com/v1/charges/ch_1", nil)
		resp, err := b.Do(t.Context(), req)
		require.NoError(t, err)
		defer resp.Body.Close()

		body, _ := io.ReadAll(resp.Body)
		assert.JSONEq(t, `{"id":"ch_1","object":"charge"}`, string(body))
	})

	t.Run("given form POST, then server sees the form", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodPost, "https://api.stripe.com/v1/charges", strings.NewReader("amount=100"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		resp, err := b.Do(t.Context(), req)
		require.NoError(t, err)
		defer resp.Body.Close()

		body, _ := io.ReadAll(resp.Body)
		assert.JSONEq(t, `{"amount":100}`, string(body))
	})

	assert.Equal(t, 2, transport.GetTotalCallCount())
	assert.Same(t, transport, b.Client().Transport)
}

func TestRetryableHTTPBackend_Do(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		body, _ := io.ReadAll(r.Body)
		w.Header().Set("Request-Id", "req_1")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write(body)
	}))
	defer server.Close()

	b := NewRetryableHTTPBackend(nil)

	req, _ := http.NewRequest(http.MethodPost, server.URL+"/v1/charges", strings.NewReader("amount=100"))
	resp, err := b.Do(t.Context(), req)
	require.NoError(t, err, "error statuses are passed through")
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "amount=100", string(body))
	assert.Equal(t, "req_1", resp.Header.Get("Request-Id"))
	assert.Equal(t, int32(1), calls.Load(), "backend must not retry on its own")
}

func TestRetryableHTTPBackend_CustomClient(t *testing.T) {
	client := retryablehttp.NewClient()
	b := NewRetryableHTTPBackend(client)

	assert.Same(t, client, b.Client())
}

func TestFastHTTPBackend_Do(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Request-Id", "req_"+r.Method)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"auth":"` + r.Header.Get("Authorization") + `","body":"` + string(body) + `"}`))
	}))
	defer server.Close()

	b := NewFastHTTPBackend(nil)

	req, _ := http.NewRequest(http.MethodPost, server.URL+"/v1/customers", strings.NewReader("email=a%40b.c"))
	req.Header.Set("Authorization", "Bearer sk_test_123")

	ctx, cancel := context.WithTimeout(t.Context(), 5*time.Second)
	defer cancel()

	resp, err := b.Do(ctx, req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "req_POST", resp.Header.Get("Request-Id"))
	assert.JSONEq(t, `{"auth":"Bearer sk_test_123","body":"email=a%40b.c"}`, string(body))
}

func TestFastHTTPBackend_CanceledContext(t *testing.T) {
	b := NewFastHTTPBackend(nil)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	req, _ := http.NewRequest(http.MethodGet, "http://127.0.0.1:1/v1/charges", nil)
	_, err := b.Do(ctx, req)

	assert.ErrorIs(t, err, context.Canceled)
}
