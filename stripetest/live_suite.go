package stripetest

import (
	"github.com/kroma-labs/stripe-sentinel/httpclient"
	"github.com/kroma-labs/stripe-sentinel/internal/envutil"
	"github.com/kroma-labs/stripe-sentinel/stripe"
	"github.com/stretchr/testify/suite"
)

// LiveRestoreAttributes are saved before and restored after each LiveSuite
// test. api_base is included because STRIPE_API_BASE may override it.
var LiveRestoreAttributes = []stripe.Attribute{
	stripe.AttrAPIBase,
	stripe.AttrAPIKey,
	stripe.AttrAPIVersion,
	stripe.AttrClientID,
}

// LiveSuite configures the globals from STRIPE_API_BASE, STRIPE_API_KEY
// and STRIPE_API_VERSION for each test.
type LiveSuite struct {
	suite.Suite

	saved *stripe.Saved
}

func (s *LiveSuite) SetupTest() {
	s.saved = stripe.Snapshot(LiveRestoreAttributes...)

	if base, ok := envutil.LookupStringEnv(stripe.EnvAPIBase); ok {
		stripe.SetAPIBase(base)
	}
	stripe.SetAPIKey(envutil.GetStringEnv(stripe.EnvAPIKey, DefaultLiveAPIKey))
	stripe.SetAPIVersion(envutil.GetStringEnv(stripe.EnvAPIVersion, DefaultAPIVersion))
}

func (s *LiveSuite) TearDownTest() {
	if s.saved != nil {
		s.saved.Restore()
		s.saved = nil
	}
}

// RequestLibraries are the backend names UnitSuite replaces.
var RequestLibraries = []string{
	httpclient.BackendNetHTTP,
	httpclient.BackendRetryableHTTP,
	httpclient.BackendFastHTTP,
	httpclient.BackendSentinel,
}

// UnitSuite is a LiveSuite whose HTTP backends are all InertBackends, one
// per entry of RequestLibraries, reachable through RequestMocks.
type UnitSuite struct {
	LiveSuite

	RequestMocks map[string]*InertBackend

	restores []func()
}

func (s *UnitSuite) SetupTest() {
	s.LiveSuite.SetupTest()

	s.RequestMocks = make(map[string]*InertBackend, len(RequestLibraries))
	s.restores = s.restores[:0]
	for _, lib := range RequestLibraries {
		m := &InertBackend{}
		m.Test(s.T())
		s.RequestMocks[lib] = m
		s.restores = append(s.restores, httpclient.Swap(lib, m))
	}
}

func (s *UnitSuite) TearDownTest() {
	for i := len(s.restores) - 1; i >= 0; i-- {
		s.restores[i]()
	}
	s.restores = nil

	s.LiveSuite.TearDownTest()
}
