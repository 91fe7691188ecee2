// Package resource exposes the charges, customers and plans endpoints on top
// of package requestor.
package resource

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/kroma-labs/stripe-sentinel/requestor"
	"github.com/kroma-labs/stripe-sentinel/stripe"
)

// Client groups the endpoint services. Every call builds its requestor
// through requestor.New, with the key and options given here.
//
//	c := resource.New("sk_test_123")
//	charge, err := c.Charges.Create(ctx, stripe.Params{"amount": 100, "currency": "usd", "source": "tok_visa"})
type Client struct {
	Charges   *ChargeService
	Customers *CustomerService
	Plans     *PlanService
}

// New returns a Client. An empty apiKey uses the global key.
func New(apiKey string, opts ...requestor.Option) *Client {
	b := backend{apiKey: apiKey, opts: opts}
	return &Client{
		Charges:   &ChargeService{b},
		Customers: &CustomerService{b},
		Plans:     &PlanService{b},
	}
}

// List is one page of a list endpoint.
type List[T any] struct {
	Object  string `json:"object"`
	URL     string `json:"url"`
	HasMore bool   `json:"has_more"`
	Data    []T    `json:"data"`
}

// Deleted is the body returned by delete endpoints.
type Deleted struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Deleted bool   `json:"deleted"`
}

type backend struct {
	apiKey string
	opts   []requestor.Option
}

func call[T any](ctx context.Context, b backend, method, path string, params stripe.Params) (*T, error) {
	resp, _, err := requestor.New(b.apiKey, b.opts...).Request(ctx, method, path, params, nil)
	if err != nil {
		return nil, err
	}

	var v T
	if err := resp.Decode(&v); err != nil {
		decodeErr := &stripe.Error{
			Type:    stripe.ErrorTypeAPI,
			Message: fmt.Sprintf("cannot decode %s %s response", method, path),
			Err:     err,
		}
		if resp != nil {
			decodeErr.HTTPStatusCode = resp.StatusCode
			decodeErr.RequestID = resp.RequestID
			decodeErr.HTTPBody = string(resp.Body)
		}
		return nil, decodeErr
	}
	return &v, nil
}

// instancePath returns collection/id, rejecting an empty id before any
// request is made.
func instancePath(collection, id string) (string, error) {
	if id == "" {
		return "", &stripe.Error{
			Type:    stripe.ErrorTypeInvalidRequest,
			Message: fmt.Sprintf("Could not determine which URL to request: %s instance has invalid ID: %q", collection, id),
			Param:   "id",
		}
	}
	return collection + "/" + url.PathEscape(id), nil
}

func retrieve[T any](ctx context.Context, b backend, collection, id string, params stripe.Params) (*T, error) {
	path, err := instancePath(collection, id)
	if err != nil {
		return nil, err
	}
	return call[T](ctx, b, http.MethodGet, path, params)
}

func update[T any](ctx context.Context, b backend, collection, id string, params stripe.Params) (*T, error) {
	path, err := instancePath(collection, id)
	if err != nil {
		return nil, err
	}
	return call[T](ctx, b, http.MethodPost, path, params)
}

func remove(ctx context.Context, b backend, collection, id string) (*Deleted, error) {
	path, err := instancePath(collection, id)
	if err != nil {
		return nil, err
	}
	return call[Deleted](ctx, b, http.MethodDelete, path, nil)
}
