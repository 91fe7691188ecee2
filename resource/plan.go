package resource

import (
	"context"
	"net/http"

	"github.com/kroma-labs/stripe-sentinel/stripe"
)

const plansPath = "/v1/plans"

// Plan is a recurring price for subscriptions.
type Plan struct {
	ID              string            `json:"id"`
	Object          string            `json:"object"`
	Amount          int64             `json:"amount"`
	Currency        string            `json:"currency"`
	Interval        string            `json:"interval"`
	IntervalCount   int64             `json:"interval_count"`
	Name            string            `json:"name"`
	TrialPeriodDays int64             `json:"trial_period_days,omitempty"`
	Livemode        bool              `json:"livemode"`
	Created         int64             `json:"created"`
	Metadata        map[string]string `json:"metadata,omitempty"`
}

// PlanService calls the /v1/plans endpoints. Plans are created with a
// caller-chosen id.
type PlanService struct {
	b backend
}

// Create creates a plan. params must carry the id.
func (s *PlanService) Create(ctx context.Context, params stripe.Params) (*Plan, error) {
	return call[Plan](ctx, s.b, http.MethodPost, plansPath, params)
}

// Retrieve fetches a plan by id.
func (s *PlanService) Retrieve(ctx context.Context, id string) (*Plan, error) {
	return retrieve[Plan](ctx, s.b, plansPath, id, nil)
}

// Update sets the given fields on a plan.
func (s *PlanService) Update(ctx context.Context, id string, params stripe.Params) (*Plan, error) {
	return update[Plan](ctx, s.b, plansPath, id, params)
}

// Delete removes a plan.
func (s *PlanService) Delete(ctx context.Context, id string) (*Deleted, error) {
	return remove(ctx, s.b, plansPath, id)
}

// List returns a page of plans.
func (s *PlanService) List(ctx context.Context, params stripe.Params) (*List[Plan], error) {
	return call[List[Plan]](ctx, s.b, http.MethodGet, plansPath, params)
}
