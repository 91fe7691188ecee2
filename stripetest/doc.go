// Package stripetest holds testify suites and helpers for tests of the
// stripe-sentinel packages.
//
// Four suites cover the usual layers:
//
//   - MockServerSuite points the globals at a local stripe-mock and lets a
//     test stub individual (method, url) calls or assert on the calls made.
//   - LiveSuite overrides api_base, api_key and api_version from the
//     STRIPE_* environment for the duration of each test.
//   - UnitSuite additionally replaces every registered HTTP backend with an
//     InertBackend, so nothing reaches the network.
//   - APISuite replaces requestor construction with FactoryMock, which
//     hands out RequestorMock; ResourceSuite preloads an empty response.
//
// Packages that talk to stripe-mock gate on it once from TestMain:
//
//	func TestMain(m *testing.M) {
//	    stripetest.RequireMockServer()
//	    os.Exit(m.Run())
//	}
//
// The suites mutate process-wide state, so their tests must not call
// t.Parallel.
package stripetest
