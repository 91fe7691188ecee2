package mockserver

import (
	"context"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Header names set or read by the server.
const (
	HeaderMockVersion = "Stripe-Mock-Version"
	HeaderRequestID   = "Request-Id"
)

// Middleware wraps an http.Handler.
type Middleware func(http.Handler) http.Handler

// Chain composes middleware; the first one is outermost.
func Chain(middlewares ...Middleware) Middleware {
	return func(next http.Handler) http.Handler {
		for i := len(middlewares) - 1; i >= 0; i-- {
			next = middlewares[i](next)
		}
		return next
	}
}

// MockVersion stamps every response, including errors, with version.
func MockVersion(version string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(HeaderMockVersion, version)
			next.ServeHTTP(w, r)
		})
	}
}

type requestIDKey struct{}

// RequestID assigns each request a "req_" id, sets it on the response and
// stores it in the request context.
func RequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := newRequestID()
			w.Header().Set(HeaderRequestID, id)

			ctx := context.WithValue(r.Context(), requestIDKey{}, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func newRequestID() string {
	return "req_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:14]
}

// RequestIDFromContext returns the id set by RequestID, or "".
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}

// Recovery turns a handler panic into a 500 api_error.
func Recovery(logger zerolog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error().
						Interface("panic", rec).
						Str("method", r.Method).
						Str("path", r.URL.Path).
						Str("stack", string(debug.Stack())).
						Msg("panic recovered")

					writeError(w, http.StatusInternalServerError, "api_error",
						"An unexpected error occurred.")
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// Logger logs one line per request, at warn for 4xx and error for 5xx.
func Logger(logger zerolog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := wrapResponseWriter(w)

			next.ServeHTTP(wrapped, r)

			event := logger.Info()
			if wrapped.Status() >= 400 {
				event = logger.Warn()
			}
			if wrapped.Status() >= 500 {
				event = logger.Error()
			}

			event.
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", wrapped.Status()).
				Dur("duration", time.Since(start)).
				Int("bytes", wrapped.BytesWritten()).
				Str("request_id", RequestIDFromContext(r.Context())).
				Msg("request completed")
		})
	}
}

// RequireTestKey rejects requests without a "Bearer sk_test_..." key.
func RequireTestKey() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			key, ok := strings.CutPrefix(auth, "Bearer ")
			switch {
			case auth == "" || !ok || key == "":
				writeError(w, http.StatusUnauthorized, "invalid_request_error",
					"You did not provide an API key. You need to provide your API key in the Authorization header, using Bearer auth (e.g. 'Authorization: Bearer YOUR_SECRET_KEY').")
				return
			case !strings.HasPrefix(key, "sk_test_"):
				writeError(w, http.StatusUnauthorized, "invalid_request_error",
					"Invalid API Key provided. stripe-mock only accepts test mode keys starting with sk_test_.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
