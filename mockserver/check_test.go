package mockserver

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func versionServer(t *testing.T, version string, hits *atomic.Int32) *httptest.Server {
	t.Helper()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if hits != nil {
			hits.Add(1)
		}
		if version != "" {
			w.Header().Set(HeaderMockVersion, version)
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestCheck(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		version     string
		wantVersion bool
	}{
		{name: "given master, then passes", version: "master"},
		{name: "given minimum, then passes", version: "0.4.0"},
		{name: "given newer, then passes", version: "0.10.2"},
		{name: "given v-prefixed newer, then passes", version: "v1.0.0"},
		{name: "given older, then version error", version: "0.3.9", wantVersion: true},
		{name: "given garbage, then version error", version: "latest", wantVersion: true},
		{name: "given no header, then version error", version: "", wantVersion: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ts := versionServer(t, tt.version, nil)
			err := Check(context.Background(), ts.URL, MinimumVersion)

			if !tt.wantVersion {
				assert.NoError(t, err)
				return
			}

			var verr *VersionError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.version, verr.Version)
			assert.Equal(t, MinimumVersion, verr.Minimum)
		})
	}
}

func TestCheck_Unreachable(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.NotFoundHandler())
	addr := ts.URL
	host := ts.Listener.Addr().String()
	ts.Close()

	err := Check(context.Background(), addr, MinimumVersion)

	var uerr *UnreachableError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, host, uerr.Host)
	assert.True(t, strings.HasPrefix(err.Error(), "Couldn't reach stripe-mock at `"+host+"`."))
	assert.Error(t, errors.Unwrap(err))
}

func TestCheck_SharesConcurrentProbes(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		<-release
		w.Header().Set(HeaderMockVersion, "master")
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(ts.Close)

	const callers = 5
	var wg sync.WaitGroup
	var started sync.WaitGroup
	errs := make([]error, callers)
	started.Add(callers)
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			started.Done()
			errs[i] = Check(context.Background(), ts.URL, MinimumVersion)
		}()
	}
	started.Wait()

	require.Eventually(t, func() bool { return hits.Load() >= 1 }, time.Second, 10*time.Millisecond)
	close(release)
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
	assert.LessOrEqual(t, hits.Load(), int32(callers))
}

func TestVersionError_Message(t *testing.T) {
	t.Parallel()

	err := &VersionError{Version: "0.1.0", Minimum: "0.4.0"}
	assert.Equal(t,
		"Your version of stripe-mock (0.1.0) is too old. The minimum version to run this test suite is 0.4.0. Please see its repository for upgrade instructions.",
		err.Error())
}
