package stripetest

import (
	"github.com/kroma-labs/stripe-sentinel/requestor"
	"github.com/stretchr/testify/mock"
)

// MockResponseKey is the API key RequestorMock reports after MockResponse.
const MockResponseKey = "reskey"

// APISuite is a LiveSuite in which requestor.New returns RequestorMock.
// FactoryMock records the key and settings of every construction:
//
//	s.MockResponse(map[string]any{"id": "ch_123", "object": "charge"})
//	charge, _ := resource.New("sk_test_x").Charges.Retrieve(ctx, "ch_123")
//	s.FactoryMock.AssertCalled(s.T(), "New", "sk_test_x", requestor.Settings{})
//	s.RequestorMock.AssertCalled(s.T(), "Request", mock.Anything, "GET", "/v1/charges/ch_123", mock.Anything, mock.Anything)
type APISuite struct {
	LiveSuite

	FactoryMock   *FactoryMock
	RequestorMock *RequestorMock

	restoreFactory func()
}

func (s *APISuite) SetupTest() {
	s.LiveSuite.SetupTest()

	s.RequestorMock = &RequestorMock{}
	s.RequestorMock.Test(s.T())

	s.FactoryMock = &FactoryMock{}
	s.FactoryMock.Test(s.T())
	s.FactoryMock.EXPECT().New(mock.Anything, mock.Anything).Return(s.RequestorMock)

	s.restoreFactory = requestor.SetFactory(s.FactoryMock.New)
}

func (s *APISuite) TearDownTest() {
	if s.restoreFactory != nil {
		s.restoreFactory()
		s.restoreFactory = nil
	}
	s.LiveSuite.TearDownTest()
}

// MockResponse makes every RequestorMock.Request return (res, "reskey",
// nil), discarding earlier expectations and recorded calls. res is wrapped
// with requestor.NewResponse unless it already is a *requestor.Response.
func (s *APISuite) MockResponse(res any) {
	s.RequestorMock.ExpectedCalls = nil
	s.RequestorMock.Calls = nil
	s.RequestorMock.EXPECT().
		Request(mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(toResponse(res), MockResponseKey, nil)
}

// ResourceSuite is an APISuite whose requestor answers "{}" until the test
// calls MockResponse.
type ResourceSuite struct {
	APISuite
}

func (s *ResourceSuite) SetupTest() {
	s.APISuite.SetupTest()
	s.MockResponse(map[string]any{})
}
