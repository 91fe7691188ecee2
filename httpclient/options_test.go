package httpclient

import (
	"crypto/tls"
	"net/http"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 80*time.Second, cfg.Timeout)
	assert.Equal(t, 100, cfg.MaxIdleConns)
	assert.Equal(t, 50, cfg.MaxIdleConnsPerHost)
	assert.Equal(t, 100, cfg.MaxConnsPerHost)
	assert.Equal(t, 90*time.Second, cfg.IdleConnTimeout)
	assert.Equal(t, 10*time.Second, cfg.TLSHandshakeTimeout)
	assert.Equal(t, 30*time.Second, cfg.DialTimeout)
	assert.Equal(t, 30*time.Second, cfg.KeepAlive)
}

func TestNewConfig_Options(t *testing.T) {
	tlsCfg := &tls.Config{MinVersion: tls.VersionTLS12}
	bo := backoff.NewConstantBackOff(time.Millisecond)
	mt := NewMockTransport()

	cfg := newConfig(
		WithServiceName("stripe"),
		WithRetryConfig(NoRetryConfig()),
		WithRetryClassifier(NeverRetryClassifier()),
		WithRetryBackOff(bo),
		WithBreakerConfig(DefaultBreakerConfig()),
		WithRateLimit(TestModeRateLimitConfig()),
		WithLogger(zerolog.Nop()),
		WithDebug(true),
		WithTLSConfig(tlsCfg),
		WithMockTransport(mt),
	)

	assert.Equal(t, "stripe", cfg.ServiceName)
	assert.False(t, cfg.RetryConfig.IsEnabled())
	assert.NotNil(t, cfg.RetryClassifier)
	assert.Equal(t, bo, cfg.RetryBackOff)
	require.NotNil(t, cfg.BreakerConfig)
	require.NotNil(t, cfg.RateLimitConfig)
	assert.True(t, cfg.Debug)
	assert.Same(t, tlsCfg, cfg.TLSConfig)
	assert.NotNil(t, cfg.Tracer)
	assert.NotNil(t, cfg.Meter)
	assert.NotNil(t, cfg.Metrics)
	assert.Same(t, http.RoundTripper(mt), cfg.buildTransport())
}

func TestBuildTransport_Pooled(t *testing.T) {
	c := DefaultConfig()
	c.MaxConnsPerHost = 7
	cfg := newConfig(WithConfig(c))

	tr, ok := cfg.buildTransport().(*http.Transport)
	require.True(t, ok)
	assert.Equal(t, 7, tr.MaxConnsPerHost)
	assert.True(t, tr.ForceAttemptHTTP2)
}

func TestBaseAttributes(t *testing.T) {
	assert.Empty(t, newConfig().baseAttributes())

	attrs := newConfig(WithServiceName("stripe")).baseAttributes()
	require.Len(t, attrs, 1)
	assert.Equal(t, "stripe", attrs[0].Value.AsString())
}
