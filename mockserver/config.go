package mockserver

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// Version is reported in the Stripe-Mock-Version header unless overridden.
const Version = "0.5.0"

// Config holds the server configuration.
type Config struct {
	// Addr is the TCP address to listen on (default: ":12111").
	Addr string

	// Version is the value of the Stripe-Mock-Version header.
	Version string

	// ReadHeaderTimeout bounds reading request headers (default: 5s).
	ReadHeaderTimeout time.Duration

	// ShutdownTimeout bounds graceful shutdown (default: 5s).
	ShutdownTimeout time.Duration

	// Logger receives lifecycle and request logs. Disabled by default.
	Logger zerolog.Logger

	// Registerer receives the request counter. A private registry is used
	// when nil, so several servers can live in one process.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// DefaultConfig returns the configuration used by New.
func DefaultConfig() Config {
	return Config{
		Addr:              ":12111",
		Version:           Version,
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   5 * time.Second,
		Logger:            zerolog.Nop(),
	}
}

// Option configures the server.
type Option func(*Config)

// WithConfig replaces the whole configuration.
func WithConfig(cfg Config) Option {
	return func(c *Config) {
		*c = cfg
	}
}

// WithAddr sets the listen address.
func WithAddr(addr string) Option {
	return func(c *Config) {
		c.Addr = addr
	}
}

// WithVersion sets the advertised stripe-mock version, e.g. "0.3.0" to
// exercise the harness's too-old path or "master".
func WithVersion(v string) Option {
	return func(c *Config) {
		c.Version = v
	}
}

// WithLogger sets the lifecycle and request logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}

// WithShutdownTimeout bounds graceful shutdown.
func WithShutdownTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.ShutdownTimeout = d
	}
}

// WithRegistry exposes the request counter through reg on /metrics.
//
//	reg := prometheus.NewRegistry()
//	srv := mockserver.New(mockserver.WithRegistry(reg))
func WithRegistry(reg *prometheus.Registry) Option {
	return func(c *Config) {
		c.Registerer = reg
		c.Gatherer = reg
	}
}
