// Package stripe holds the process-wide configuration of the API client and
// the types shared by the requestor, resources and test harness.
//
// # Global Configuration
//
// The client reads its base URL, API key, API version and Connect client ID
// from package-level settings. They are safe for concurrent reads and can be
// changed at any time:
//
//	stripe.SetAPIKey("sk_test_123")
//	stripe.SetAPIVersion("2017-04-06")
//
// Settings can also be loaded from the environment:
//
//	stripe.LoadFromEnv() // STRIPE_API_BASE, STRIPE_API_KEY, STRIPE_API_VERSION, STRIPE_CLIENT_ID
//
// # Snapshots
//
// Tests that mutate the globals capture them first and restore them afterwards:
//
//	snap := stripe.Snapshot(stripe.AttrAPIKey, stripe.AttrAPIBase)
//	defer snap.Restore()
//
//	stripe.SetAPIBase("http://localhost:12111")
//
// # Errors
//
// API failures are returned as *Error values. Use errors.As to inspect them:
//
//	var stripeErr *stripe.Error
//	if errors.As(err, &stripeErr) && stripeErr.Type == stripe.ErrorTypeCard {
//	    fmt.Println(stripeErr.Code)
//	}
package stripe
