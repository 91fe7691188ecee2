package stripetest

import (
	"testing"

	"github.com/kroma-labs/stripe-sentinel/internal/envutil"
	"github.com/kroma-labs/stripe-sentinel/stripe"
)

const (
	// EnvMockPort names the port stripe-mock listens on.
	EnvMockPort = "STRIPE_MOCK_PORT"
	// DefaultMockPort is used when EnvMockPort is unset.
	DefaultMockPort = "12111"

	// DefaultLiveAPIKey is the public test-mode key used when STRIPE_API_KEY
	// is unset.
	DefaultLiveAPIKey = "tGN0bIwXnHdwOa85VABjPdSn8nWY7G7I"
	DefaultAPIVersion = "2017-04-06"

	// Values MockServerSuite installs.
	MockAPIKey   = "sk_test_123"
	MockClientID = "ca_123"
)

// MockPort returns STRIPE_MOCK_PORT, or 12111.
func MockPort() string {
	return envutil.GetStringEnv(EnvMockPort, DefaultMockPort)
}

// MockAPIBase returns the stripe-mock base URL on MockPort.
func MockAPIBase() string {
	return "http://localhost:" + MockPort()
}

// OverrideConfig sets each attribute for the rest of the test and restores
// the previous values on cleanup, whatever the outcome.
//
//	stripetest.OverrideConfig(t, map[stripe.Attribute]string{
//	    stripe.AttrAPIKey: "sk_test_other",
//	})
func OverrideConfig(t testing.TB, values map[stripe.Attribute]string) {
	t.Helper()

	attrs := make([]stripe.Attribute, 0, len(values))
	for attr := range values {
		attrs = append(attrs, attr)
	}
	saved := stripe.Snapshot(attrs...)
	t.Cleanup(saved.Restore)

	for attr, v := range values {
		if err := stripe.Set(attr, v); err != nil {
			t.Fatalf("stripetest: %v", err)
		}
	}
}
