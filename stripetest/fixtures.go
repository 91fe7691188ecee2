package stripetest

import (
	"math/rand/v2"
	"time"

	"github.com/kroma-labs/stripe-sentinel/stripe"
)

// Now is fixed when the test binary starts.
var Now = time.Now()

// DummyCharge is a minimal valid charge. Clone it before adding fields.
var DummyCharge = stripe.Params{
	"amount":   100,
	"currency": "usd",
	"source":   "tok_visa",
}

// DummyPlan returns a monthly plan with a fresh random id, so repeated runs
// against a live account do not collide.
func DummyPlan() stripe.Params {
	return stripe.Params{
		"amount":   2000,
		"interval": "month",
		"name":     "Amazing Gold Plan",
		"currency": "usd",
		"id":       "stripe-test-gold-" + randomLower(10),
	}
}

func randomLower(n int) string {
	const letters = "abcdefghijklmnopqrstuvwxyz"
	b := make([]byte, n)
	for i := range b {
		b[i] = letters[rand.IntN(len(letters))]
	}
	return string(b)
}
