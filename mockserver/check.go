package mockserver

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/kroma-labs/stripe-sentinel/httpclient"
	"golang.org/x/mod/semver"
	"golang.org/x/sync/singleflight"
)

// MinimumVersion is the oldest stripe-mock the test suite runs against.
const MinimumVersion = "0.4.0"

// versionMaster is the version reported by builds from the main branch.
const versionMaster = "master"

// UnreachableError means the probe got no HTTP response at all.
type UnreachableError struct {
	Host string
	Err  error
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf(
		"Couldn't reach stripe-mock at `%s`. Is it running? Please see README for setup instructions.",
		e.Host,
	)
}

func (e *UnreachableError) Unwrap() error {
	return e.Err
}

// VersionError means the server answered with a version below Minimum.
type VersionError struct {
	Version string
	Minimum string
}

func (e *VersionError) Error() string {
	return fmt.Sprintf(
		"Your version of stripe-mock (%s) is too old. The minimum version to run this test suite is %s. Please see its repository for upgrade instructions.",
		e.Version, e.Minimum,
	)
}

var (
	probes singleflight.Group

	probeClient = httpclient.New(
		httpclient.WithServiceName("stripe-mock-probe"),
		httpclient.WithRetryConfig(httpclient.NoRetryConfig()),
		httpclient.WithConfig(probeConfig()),
	)
)

func probeConfig() httpclient.Config {
	cfg := httpclient.DefaultConfig()
	cfg.Timeout = 5 * time.Second
	return cfg
}

// Check fetches baseURL's root and validates its Stripe-Mock-Version header.
// Any status counts as reachable, since the root answers 404. "master"
// always passes; anything else must be semver >= minVersion.
//
// Concurrent calls for the same baseURL and minVersion share one probe.
func Check(ctx context.Context, baseURL, minVersion string) error {
	_, err, _ := probes.Do(baseURL+"|"+minVersion, func() (any, error) {
		return nil, check(ctx, baseURL, minVersion)
	})
	return err
}

func check(ctx context.Context, baseURL, minVersion string) error {
	u, err := url.Parse(baseURL)
	if err != nil {
		return fmt.Errorf("mockserver: parse base url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.JoinPath("/").String(), nil)
	if err != nil {
		return fmt.Errorf("mockserver: build probe: %w", err)
	}

	resp, err := probeClient.Do(ctx, req)
	if err != nil {
		return &UnreachableError{Host: u.Host, Err: err}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	version := resp.Header.Get(HeaderMockVersion)
	if !versionAtLeast(version, minVersion) {
		return &VersionError{Version: version, Minimum: minVersion}
	}
	return nil
}

func versionAtLeast(version, minimum string) bool {
	if version == versionMaster {
		return true
	}
	v, m := canonical(version), canonical(minimum)
	if !semver.IsValid(v) || !semver.IsValid(m) {
		return false
	}
	return semver.Compare(v, m) >= 0
}

func canonical(v string) string {
	if v == "" || v[0] == 'v' {
		return v
	}
	return "v" + v
}
