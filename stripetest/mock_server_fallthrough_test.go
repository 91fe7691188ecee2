package stripetest

import (
	"context"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/kroma-labs/stripe-sentinel/mockserver"
	"github.com/kroma-labs/stripe-sentinel/resource"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type fallthroughSuite struct {
	MockServerSuite
}

func (s *fallthroughSuite) TestChargeCreateAndList() {
	ctx := context.Background()
	c := resource.New("")

	charge, err := c.Charges.Create(ctx, DummyCharge)
	s.Require().NoError(err)
	s.Equal("ch_1BeRQp2eZvKYlo2C0tPYEGFA", charge.ID)
	s.Equal(int64(100), charge.Amount)
	s.Equal("usd", charge.Currency)
	s.AssertRequested("post", "/v1/charges", map[string]any(DummyCharge))

	list, err := c.Charges.List(ctx, nil)
	s.Require().NoError(err)
	s.Len(list.Data, 1)
	s.AssertRequested("get", "/v1/charges")

	s.Len(s.Calls(), 2)
}

func (s *fallthroughSuite) TestPlanCreateAndDelete() {
	ctx := context.Background()
	c := resource.New("")
	params := DummyPlan()
	id := params["id"].(string)

	plan, err := c.Plans.Create(ctx, params)
	s.Require().NoError(err)
	s.Equal(id, plan.ID)

	deleted, err := c.Plans.Delete(ctx, id)
	s.Require().NoError(err)
	s.True(deleted.Deleted)
	s.Equal(id, deleted.ID)

	s.AssertRequested("delete", "/v1/plans/"+id)
	s.AssertNotRequested("get", "/v1/plans/"+id)
}

func (s *fallthroughSuite) TestStubShadowsServerOnce() {
	ctx := context.Background()
	c := resource.New("")
	s.StubRequest("get", "/v1/customers/cus_1", map[string]any{"id": "cus_1", "email": "stub@example.com"})

	first, err := c.Customers.Retrieve(ctx, "cus_1")
	s.Require().NoError(err)
	s.Equal("stub@example.com", first.Email)

	second, err := c.Customers.Retrieve(ctx, "cus_1")
	s.Require().NoError(err)
	s.Equal("cus_1", second.ID)
	s.NotEqual("stub@example.com", second.Email)
}

func TestMockServerSuite_FallsThroughToMockServer(t *testing.T) {
	srv, err := mockserver.New()
	require.NoError(t, err)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	u, err := url.Parse(ts.URL)
	require.NoError(t, err)
	t.Setenv(EnvMockPort, u.Port())

	buf, code := swapExit(t)
	RequireMockServer()
	require.Equal(t, -1, *code, buf.String())

	suite.Run(t, new(fallthroughSuite))
}
