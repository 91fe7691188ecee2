// Package mockserver is a small, stateless stand-in for stripe-mock.
//
// It answers the charges, customers and plans endpoints from fixtures,
// echoing back any fixture field supplied in the request parameters, and
// stamps every response with a Stripe-Mock-Version header so the test
// harness can gate on it:
//
//	srv := mockserver.New(mockserver.WithAddr(":12111"))
//	if err := srv.ListenAndServe(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// Check probes a running server (this one or the real stripe-mock) and
// reports whether it is reachable and recent enough:
//
//	err := mockserver.Check(ctx, "http://localhost:12111", mockserver.MinimumVersion)
//
// Requests under /v1 must carry a "Bearer sk_test_..." Authorization
// header. Nothing is persisted between requests.
package mockserver
