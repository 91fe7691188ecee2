package requestor

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/goccy/go-json"
)

// ErrNoResponse is returned when decoding a nil *Response.
var ErrNoResponse = errors.New("requestor: no response")

// Response is a fully read API response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte

	// RequestID is the Request-Id header, quoted in support requests.
	RequestID string
}

// NewResponse builds a 200 Response around body. Strings and byte slices are
// used verbatim; anything else is encoded as JSON.
//
//	resp := requestor.NewResponse(map[string]any{"id": "ch_123", "object": "charge"})
func NewResponse(body any) *Response {
	var raw []byte
	switch b := body.(type) {
	case nil:
		raw = []byte("{}")
	case []byte:
		raw = b
	case string:
		raw = []byte(b)
	default:
		var err error
		raw, err = json.Marshal(b)
		if err != nil {
			panic(fmt.Sprintf("requestor: cannot encode canned response: %v", err))
		}
	}

	return &Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       raw,
	}
}

// Decode unmarshals the body into v.
func (r *Response) Decode(v any) error {
	if r == nil {
		return ErrNoResponse
	}
	return json.Unmarshal(r.Body, v)
}

// JSON returns the body as a generic object, or nil if it is not one.
func (r *Response) JSON() map[string]any {
	var m map[string]any
	if r == nil || json.Unmarshal(r.Body, &m) != nil {
		return nil
	}
	return m
}
