package mockserver

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// metrics counts served requests by route pattern and status.
type metrics struct {
	requests *prometheus.CounterVec
	handler  http.Handler
}

func newMetrics(reg prometheus.Registerer, gatherer prometheus.Gatherer) (*metrics, error) {
	if reg == nil {
		r := prometheus.NewRegistry()
		reg, gatherer = r, r
	}

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "stripe_mock",
		Name:      "requests_total",
		Help:      "Requests served, by method, route and status code.",
	}, []string{"method", "route", "status"})
	if err := reg.Register(requests); err != nil {
		return nil, err
	}

	return &metrics{
		requests: requests,
		handler:  promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}),
	}, nil
}

func (m *metrics) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		wrapped := wrapResponseWriter(w)
		next.ServeHTTP(wrapped, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		m.requests.WithLabelValues(r.Method, route, strconv.Itoa(wrapped.Status())).Inc()
	})
}
