package cli

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/kroma-labs/stripe-sentinel/internal/envutil"
	"github.com/kroma-labs/stripe-sentinel/mockserver"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRoot(t *testing.T) (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	prev := envutil.Logger
	t.Cleanup(func() { envutil.Logger = prev })

	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	return root, &out, &errOut
}

func TestCheckCmd(t *testing.T) {
	tests := []struct {
		name       string
		version    string
		wantErr    bool
		wantOutput string
	}{
		{name: "given recent server, then ready", version: "0.5.0", wantOutput: "is ready"},
		{name: "given master, then ready", version: "master", wantOutput: "is ready"},
		{name: "given old server, then fails", version: "0.1.0", wantErr: true, wantOutput: "too old"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set(mockserver.HeaderMockVersion, tt.version)
				w.WriteHeader(http.StatusNotFound)
			}))
			defer ts.Close()

			root, out, errOut := newRoot(t)
			root.SetArgs([]string{"check", "--url", ts.URL})
			err := root.Execute()

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, errOut.String(), tt.wantOutput)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, out.String(), tt.wantOutput)
		})
	}
}

func TestServeCmd(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())

	root, _, _ := newRoot(t)
	// Request logs are written from handler goroutines.
	root.SetErr(io.Discard)
	root.SetArgs([]string{"serve", "--port", strconv.Itoa(port), "--version", "master"})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- root.ExecuteContext(ctx) }()

	url := "http://127.0.0.1:" + strconv.Itoa(port)
	require.Eventually(t, func() bool {
		resp, err := http.Get(url + "/")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.Header.Get(mockserver.HeaderMockVersion) == "master"
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("serve did not stop")
	}
}

func TestDefaultPort(t *testing.T) {
	t.Setenv(envMockPort, "")
	assert.Equal(t, 12111, defaultPort())

	t.Setenv(envMockPort, "4242")
	assert.Equal(t, 4242, defaultPort())
}

func TestCheckCmd_ErrorPrintedOnce(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(mockserver.HeaderMockVersion, "0.1.0")
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	root, _, errOut := newRoot(t)
	root.SetArgs([]string{"check", "--url", ts.URL})
	require.Error(t, root.Execute())

	assert.Equal(t, 1, strings.Count(errOut.String(), "is too old"))
	assert.NotContains(t, errOut.String(), "Error:")
}

func TestLogger(t *testing.T) {
	newCmd := func(t *testing.T) (*cobra.Command, *bytes.Buffer) {
		prev := envutil.Logger
		t.Cleanup(func() { envutil.Logger = prev })

		cmd := &cobra.Command{Use: "x"}
		cmd.Flags().Bool("debug", false, "")
		var buf bytes.Buffer
		cmd.SetErr(&buf)
		return cmd, &buf
	}

	t.Run("given no flag or env, then info level", func(t *testing.T) {
		t.Setenv(envMockDebug, "")
		cmd, _ := newCmd(t)
		assert.Equal(t, zerolog.InfoLevel, logger(cmd).GetLevel())
	})

	t.Run("given STRIPE_MOCK_DEBUG, then debug level", func(t *testing.T) {
		t.Setenv(envMockDebug, "true")
		cmd, _ := newCmd(t)
		assert.Equal(t, zerolog.DebugLevel, logger(cmd).GetLevel())
	})

	t.Run("given explicit flag, then env is ignored", func(t *testing.T) {
		t.Setenv(envMockDebug, "1")
		cmd, _ := newCmd(t)
		require.NoError(t, cmd.Flags().Set("debug", "false"))
		assert.Equal(t, zerolog.InfoLevel, logger(cmd).GetLevel())
	})

	t.Run("given malformed env values, then warnings reach stderr", func(t *testing.T) {
		t.Setenv(envMockDebug, "maybe")
		t.Setenv(envMockPort, "abc")
		cmd, buf := newCmd(t)

		assert.Equal(t, zerolog.InfoLevel, logger(cmd).GetLevel())
		assert.Equal(t, 12111, defaultPort())

		assert.Contains(t, buf.String(), "invalid boolean value for environment variable")
		assert.Contains(t, buf.String(), "invalid integer value for environment variable")
	})
}
