package stripetest

import (
	"context"
	"testing"

	"github.com/kroma-labs/stripe-sentinel/requestor"
	"github.com/kroma-labs/stripe-sentinel/resource"
	"github.com/kroma-labs/stripe-sentinel/stripe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type apiSuiteTest struct {
	APISuite
}

func (s *apiSuiteTest) TestMockResponse() {
	s.MockResponse(map[string]any{"id": "ch_123", "object": "charge", "amount": 100})

	resp, key, err := requestor.New("sk_test_api", requestor.WithAccount("acct_1")).
		Request(context.Background(), "GET", "/v1/charges/ch_123", nil, nil)
	s.Require().NoError(err)

	s.Equal(MockResponseKey, key)
	s.Equal("ch_123", resp.JSON()["id"])
	s.FactoryMock.AssertCalled(s.T(), "New", "sk_test_api", requestor.Settings{Account: "acct_1"})
}

func (s *apiSuiteTest) TestMockResponseReplacesEarlierOne() {
	s.MockResponse(map[string]any{"id": "first"})
	s.MockResponse(map[string]any{"id": "second"})

	charge, err := resource.New("").Charges.Retrieve(context.Background(), "ch_1")
	s.Require().NoError(err)
	s.Equal("second", charge.ID)

	s.RequestorMock.AssertNumberOfCalls(s.T(), "Request", 1)
	s.RequestorMock.AssertCalled(s.T(), "Request",
		mock.Anything, "GET", "/v1/charges/ch_1", mock.Anything, mock.Anything)
}

func (s *apiSuiteTest) TestResourceParamsReachRequestor() {
	s.MockResponse(`{"id":"cus_1","object":"customer"}`)

	_, err := resource.New("").Customers.Create(context.Background(), stripe.Params{"email": "a@example.com"})
	s.Require().NoError(err)

	s.RequestorMock.AssertCalled(s.T(), "Request",
		mock.Anything, "POST", "/v1/customers", stripe.Params{"email": "a@example.com"}, mock.Anything)
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(apiSuiteTest))

	_, isMock := requestor.New("").(*RequestorMock)
	assert.False(t, isMock)
}

type resourceSuiteTest struct {
	ResourceSuite
}

func (s *resourceSuiteTest) TestEmptyResponseByDefault() {
	plan, err := resource.New("").Plans.Retrieve(context.Background(), "gold")
	s.Require().NoError(err)
	s.Empty(plan.ID)
}

func TestResourceSuite(t *testing.T) {
	suite.Run(t, new(resourceSuiteTest))
}
