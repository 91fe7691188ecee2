package httpclient

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// redactedHeaders never appear in debug output.
var redactedHeaders = map[string]bool{
	"Authorization": true,
	"Cookie":        true,
}

// generateCurlCommand returns a cURL command that reproduces req.
// Credentials are masked.
//
// Example output:
//
//	curl -X POST 'https://api.stripe.com/v1/charges' -H 'Authorization: ***' -d 'amount=100&currency=usd'
func generateCurlCommand(req *http.Request, body []byte) string {
	parts := []string{"curl"}

	if req.Method != http.MethodGet {
		parts = append(parts, "-X", req.Method)
	}
	parts = append(parts, fmt.Sprintf("'%s'", req.URL.String()))

	keys := make([]string, 0, len(req.Header))
	for k := range req.Header {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		for _, v := range req.Header[k] {
			if redactedHeaders[http.CanonicalHeaderKey(k)] {
				v = "***"
			}
			parts = append(parts, "-H", fmt.Sprintf("'%s: %s'", k, v))
		}
	}

	if len(body) > 0 {
		escaped := strings.ReplaceAll(string(body), "'", "'\\''")
		parts = append(parts, "-d", fmt.Sprintf("'%s'", escaped))
	}

	return strings.Join(parts, " ")
}

// peekBody reads the request body and puts an identical reader back.
func peekBody(req *http.Request) []byte {
	if req.Body == nil || req.Body == http.NoBody {
		return nil
	}
	body, err := io.ReadAll(req.Body)
	req.Body.Close()
	req.Body = io.NopCloser(bytes.NewReader(body))
	if err != nil {
		return nil
	}
	return body
}

func logRequest(logger zerolog.Logger, req *http.Request) {
	logger.Debug().
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Str("curl", generateCurlCommand(req, peekBody(req))).
		Msg("HTTP request")
}

func logResponse(logger zerolog.Logger, resp *http.Response, duration time.Duration) {
	logger.Debug().
		Int("status", resp.StatusCode).
		Str("request_id", resp.Header.Get(HeaderRequestID)).
		Dur("duration", duration).
		Int64("content_length", resp.ContentLength).
		Msg("HTTP response")
}
