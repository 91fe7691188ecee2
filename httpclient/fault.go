package httpclient

import (
	"errors"
	"io"
	"math/rand/v2"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// ErrFaultInjected is the cause of connection errors made up by the fault
// transport.
var ErrFaultInjected = errors.New("fault: simulated connection error")

// FaultConfig injects failures below the retry layer, so retries, the
// circuit breaker and error mapping can be exercised without a flaky
// upstream. Rates are probabilities in [0, 1].
//
//	client := httpclient.New(
//	    httpclient.WithFaults(httpclient.FaultConfig{
//	        StatusRate: 0.2,
//	        Status:     http.StatusTooManyRequests,
//	    }),
//	)
type FaultConfig struct {
	// Latency is added to every request, plus up to Jitter.
	Latency time.Duration
	Jitter  time.Duration

	// ErrorRate fails the request with a dial error.
	ErrorRate float64

	// TimeoutRate blocks the request until its context is done.
	TimeoutRate float64

	// StatusRate answers with Status (default 503) and an API error body
	// instead of sending the request.
	StatusRate float64
	Status     int

	// ShouldRetry, when set, is sent as the Stripe-Should-Retry header on
	// injected status responses.
	ShouldRetry *bool
}

// delay returns Latency plus a random share of Jitter.
func (c FaultConfig) delay() time.Duration {
	d := c.Latency
	if c.Jitter > 0 {
		d += rand.N(c.Jitter) //nolint:gosec
	}
	return d
}

func roll(rate float64) bool {
	if rate <= 0 {
		return false
	}
	return rand.Float64() < rate //nolint:gosec
}

type faultTransport struct {
	next http.RoundTripper
	cfg  FaultConfig
}

func newFaultTransport(next http.RoundTripper, cfg *FaultConfig) http.RoundTripper {
	if cfg == nil {
		return next
	}
	c := *cfg
	if c.Status == 0 {
		c.Status = http.StatusServiceUnavailable
	}
	return &faultTransport{next: next, cfg: c}
}

func (t *faultTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	if roll(t.cfg.TimeoutRate) {
		<-ctx.Done()
		return nil, ctx.Err()
	}

	if roll(t.cfg.ErrorRate) {
		return nil, &net.OpError{Op: "dial", Net: "tcp", Err: ErrFaultInjected}
	}

	if d := t.cfg.delay(); d > 0 {
		timer := time.NewTimer(d)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		}
	}

	if roll(t.cfg.StatusRate) {
		return t.statusResponse(req), nil
	}

	return t.next.RoundTrip(req)
}

func (t *faultTransport) statusResponse(req *http.Request) *http.Response {
	errType := "api_error"
	if t.cfg.Status == http.StatusTooManyRequests {
		errType = "rate_limit_error"
	}
	body := `{"error":{"type":"` + errType + `","message":"Injected fault."}}`

	header := http.Header{"Content-Type": []string{"application/json"}}
	if t.cfg.ShouldRetry != nil {
		header.Set(HeaderShouldRetry, strconv.FormatBool(*t.cfg.ShouldRetry))
	}

	return &http.Response{
		Status:        strconv.Itoa(t.cfg.Status) + " " + http.StatusText(t.cfg.Status),
		StatusCode:    t.cfg.Status,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        header,
		Body:          io.NopCloser(strings.NewReader(body)),
		ContentLength: int64(len(body)),
		Request:       req,
	}
}
