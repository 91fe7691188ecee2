package resource

import (
	"context"
	"net/http"

	"github.com/kroma-labs/stripe-sentinel/stripe"
)

const chargesPath = "/v1/charges"

// Charge is a payment attempt against a card or other source.
type Charge struct {
	ID             string            `json:"id"`
	Object         string            `json:"object"`
	Amount         int64             `json:"amount"`
	AmountRefunded int64             `json:"amount_refunded"`
	Currency       string            `json:"currency"`
	Captured       bool              `json:"captured"`
	Paid           bool              `json:"paid"`
	Refunded       bool              `json:"refunded"`
	Status         string            `json:"status"`
	Customer       string            `json:"customer,omitempty"`
	Description    string            `json:"description,omitempty"`
	Livemode       bool              `json:"livemode"`
	Created        int64             `json:"created"`
	Metadata       map[string]string `json:"metadata,omitempty"`
}

// ChargeService calls the /v1/charges endpoints.
type ChargeService struct {
	b backend
}

// Create charges a source.
func (s *ChargeService) Create(ctx context.Context, params stripe.Params) (*Charge, error) {
	return call[Charge](ctx, s.b, http.MethodPost, chargesPath, params)
}

// Retrieve fetches a charge by id.
func (s *ChargeService) Retrieve(ctx context.Context, id string) (*Charge, error) {
	return retrieve[Charge](ctx, s.b, chargesPath, id, nil)
}

// Update sets the given fields on a charge.
func (s *ChargeService) Update(ctx context.Context, id string, params stripe.Params) (*Charge, error) {
	return update[Charge](ctx, s.b, chargesPath, id, params)
}

// Capture captures an uncaptured charge. params may set amount for a
// partial capture.
func (s *ChargeService) Capture(ctx context.Context, id string, params stripe.Params) (*Charge, error) {
	path, err := instancePath(chargesPath, id)
	if err != nil {
		return nil, err
	}
	return call[Charge](ctx, s.b, http.MethodPost, path+"/capture", params)
}

// List returns a page of charges, newest first.
func (s *ChargeService) List(ctx context.Context, params stripe.Params) (*List[Charge], error) {
	return call[List[Charge]](ctx, s.b, http.MethodGet, chargesPath, params)
}
