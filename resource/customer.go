package resource

import (
	"context"
	"net/http"

	"github.com/kroma-labs/stripe-sentinel/stripe"
)

const customersPath = "/v1/customers"

type Customer struct {
	ID          string            `json:"id"`
	Object      string            `json:"object"`
	Email       string            `json:"email,omitempty"`
	Description string            `json:"description,omitempty"`
	Balance     int64             `json:"account_balance"`
	Currency    string            `json:"currency,omitempty"`
	Delinquent  bool              `json:"delinquent"`
	Livemode    bool              `json:"livemode"`
	Created     int64             `json:"created"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// CustomerService calls the /v1/customers endpoints.
type CustomerService struct {
	b backend
}

// Create creates a customer.
func (s *CustomerService) Create(ctx context.Context, params stripe.Params) (*Customer, error) {
	return call[Customer](ctx, s.b, http.MethodPost, customersPath, params)
}

// Retrieve fetches a customer by id.
func (s *CustomerService) Retrieve(ctx context.Context, id string) (*Customer, error) {
	return retrieve[Customer](ctx, s.b, customersPath, id, nil)
}

// Update sets the given fields on a customer.
func (s *CustomerService) Update(ctx context.Context, id string, params stripe.Params) (*Customer, error) {
	return update[Customer](ctx, s.b, customersPath, id, params)
}

// Delete removes a customer.
func (s *CustomerService) Delete(ctx context.Context, id string) (*Deleted, error) {
	return remove(ctx, s.b, customersPath, id)
}

// List returns a page of customers.
func (s *CustomerService) List(ctx context.Context, params stripe.Params) (*List[Customer], error) {
	return call[List[Customer]](ctx, s.b, http.MethodGet, customersPath, params)
}
