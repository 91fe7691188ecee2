package stripetest

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/kroma-labs/stripe-sentinel/mockserver"
	"github.com/kroma-labs/stripe-sentinel/stripe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockPort(t *testing.T) {
	t.Setenv(EnvMockPort, "")
	assert.Equal(t, "12111", MockPort())
	assert.Equal(t, "http://localhost:12111", MockAPIBase())

	t.Setenv(EnvMockPort, "9999")
	assert.Equal(t, "9999", MockPort())
}

func TestOverrideConfig(t *testing.T) {
	stripe.SetAPIKey("sk_test_before")
	t.Cleanup(func() { stripe.SetAPIKey("") })

	t.Run("override", func(t *testing.T) {
		OverrideConfig(t, map[stripe.Attribute]string{
			stripe.AttrAPIKey:     "sk_test_during",
			stripe.AttrAPIVersion: "2020-08-27",
		})
		assert.Equal(t, "sk_test_during", stripe.APIKey())
		assert.Equal(t, "2020-08-27", stripe.APIVersion())
	})

	assert.Equal(t, "sk_test_before", stripe.APIKey())
	assert.Empty(t, stripe.APIVersion())
}

// swapExit captures what requireMockServer writes and the status it exits
// with.
func swapExit(t *testing.T) (*bytes.Buffer, *int) {
	t.Helper()

	var buf bytes.Buffer
	code := -1
	prevExit, prevStderr := exit, stderr
	exit = func(c int) { code = c }
	stderr = &buf
	t.Cleanup(func() { exit, stderr = prevExit, prevStderr })
	return &buf, &code
}

func TestRequireMockServer(t *testing.T) {
	versioned := func(version string) *httptest.Server {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set(mockserver.HeaderMockVersion, version)
			w.WriteHeader(http.StatusNotFound)
		}))
		t.Cleanup(ts.Close)
		return ts
	}

	t.Run("given recent server, then continues", func(t *testing.T) {
		buf, code := swapExit(t)
		assert.True(t, requireMockServer(context.Background(), versioned("0.4.0").URL))
		assert.Equal(t, -1, *code)
		assert.Empty(t, buf.String())
	})

	t.Run("given old server, then exits with version message", func(t *testing.T) {
		buf, code := swapExit(t)
		assert.False(t, requireMockServer(context.Background(), versioned("0.3.0").URL))
		assert.Equal(t, 1, *code)
		assert.Equal(t,
			"Your version of stripe-mock (0.3.0) is too old. The minimum version to run this test suite is 0.4.0. Please see its repository for upgrade instructions.\n",
			buf.String())
	})

	t.Run("given no server, then exits with reach message", func(t *testing.T) {
		ts := httptest.NewServer(http.NotFoundHandler())
		url := ts.URL
		ts.Close()

		buf, code := swapExit(t)
		assert.False(t, requireMockServer(context.Background(), url))
		assert.Equal(t, 1, *code)
		assert.Contains(t, buf.String(), "Couldn't reach stripe-mock at `127.0.0.1:")
		assert.Contains(t, buf.String(), "Is it running? Please see README for setup instructions.")
	})
}

func TestDummyPlan(t *testing.T) {
	a, b := DummyPlan(), DummyPlan()

	require.Regexp(t, regexp.MustCompile(`^stripe-test-gold-[a-z]{10}$`), a["id"])
	assert.NotEqual(t, a["id"], b["id"])
	assert.Equal(t, 2000, a["amount"])
	assert.Equal(t, "Amazing Gold Plan", a["name"])
}

func TestDummyCharge(t *testing.T) {
	assert.Equal(t, "amount=100&currency=usd&source=tok_visa", DummyCharge.Encode().Encode())
	assert.False(t, Now.IsZero())
}
