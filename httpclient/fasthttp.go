package httpclient

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/valyala/fasthttp"
)

// FastHTTPBackend sends requests with valyala/fasthttp and converts the
// result back into a *http.Response.
type FastHTTPBackend struct {
	client *fasthttp.Client
}

// NewFastHTTPBackend wraps client. A nil client uses DefaultConfig's timeouts.
func NewFastHTTPBackend(client *fasthttp.Client) *FastHTTPBackend {
	if client == nil {
		cfg := DefaultConfig()
		client = &fasthttp.Client{
			ReadTimeout:         cfg.Timeout,
			WriteTimeout:        cfg.Timeout,
			MaxIdleConnDuration: cfg.IdleConnTimeout,
			MaxConnsPerHost:     cfg.MaxConnsPerHost,
		}
	}
	return &FastHTTPBackend{client: client}
}

// Do implements Backend. The context deadline, if any, bounds the exchange.
func (b *FastHTTPBackend) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	freq := fasthttp.AcquireRequest()
	fresp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(freq)
	defer fasthttp.ReleaseResponse(fresp)

	freq.Header.SetMethod(req.Method)
	freq.SetRequestURI(req.URL.String())
	for k, vs := range req.Header {
		for _, v := range vs {
			freq.Header.Add(k, v)
		}
	}
	if req.Body != nil && req.Body != http.NoBody {
		body, err := io.ReadAll(req.Body)
		if err != nil {
			return nil, err
		}
		_ = req.Body.Close()
		freq.SetBody(body)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var err error
	if deadline, ok := ctx.Deadline(); ok {
		err = b.client.DoDeadline(freq, fresp, deadline)
	} else {
		err = b.client.Do(freq, fresp)
	}
	if err != nil {
		return nil, err
	}

	return toHTTPResponse(req, fresp), nil
}

func toHTTPResponse(req *http.Request, fresp *fasthttp.Response) *http.Response {
	body := append([]byte(nil), fresp.Body()...)

	header := make(http.Header)
	fresp.Header.VisitAll(func(k, v []byte) {
		header.Add(string(k), string(v))
	})

	status := fresp.StatusCode()
	return &http.Response{
		Status:        strconv.Itoa(status) + " " + http.StatusText(status),
		StatusCode:    status,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        header,
		Body:          io.NopCloser(bytes.NewReader(body)),
		ContentLength: int64(len(body)),
		Request:       req,
	}
}
