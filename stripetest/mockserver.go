package stripetest

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/kroma-labs/stripe-sentinel/mockserver"
)

// Swapped by tests.
var (
	exit             = os.Exit
	stderr io.Writer = os.Stderr
)

var mockServerOnce sync.Once

// RequireMockServer probes stripe-mock on MockPort once per process. When
// it is unreachable or older than mockserver.MinimumVersion the reason is
// printed to stderr and the process exits with status 1.
func RequireMockServer() {
	mockServerOnce.Do(func() {
		requireMockServer(context.Background(), MockAPIBase())
	})
}

func requireMockServer(ctx context.Context, baseURL string) bool {
	err := mockserver.Check(ctx, baseURL, mockserver.MinimumVersion)
	if err == nil {
		return true
	}
	fmt.Fprintln(stderr, err)
	exit(1)
	return false
}
