package stripe

import (
	"fmt"
	"sync"

	"github.com/kroma-labs/stripe-sentinel/internal/envutil"
)

const (
	// DefaultAPIBase is the production API endpoint.
	DefaultAPIBase = "https://api.stripe.com"

	// DefaultBackendName is the httpclient backend used when none is configured.
	DefaultBackendName = "sentinel"

	// BindingsVersion is reported in the User-Agent of every request.
	BindingsVersion = "0.4.0"
)

// Environment variables read by LoadFromEnv.
const (
	EnvAPIBase    = "STRIPE_API_BASE"
	EnvAPIKey     = "STRIPE_API_KEY"
	EnvAPIVersion = "STRIPE_API_VERSION"
	EnvClientID   = "STRIPE_CLIENT_ID"
)

// Attribute names one of the process-wide configuration settings.
type Attribute string

// Known attributes.
const (
	AttrAPIBase    Attribute = "api_base"
	AttrAPIKey     Attribute = "api_key"
	AttrAPIVersion Attribute = "api_version"
	AttrClientID   Attribute = "client_id"
)

// Attributes lists every known attribute in a stable order.
var Attributes = []Attribute{AttrAPIBase, AttrAPIKey, AttrAPIVersion, AttrClientID}

var (
	mu sync.RWMutex

	settings = map[Attribute]string{
		AttrAPIBase: DefaultAPIBase,
	}

	defaultBackend = DefaultBackendName
)

// UnknownAttributeError is returned by Get and Set for names outside Attributes.
type UnknownAttributeError struct {
	Name Attribute
}

func (e *UnknownAttributeError) Error() string {
	return fmt.Sprintf("stripe: unknown configuration attribute %q", string(e.Name))
}

func known(attr Attribute) bool {
	switch attr {
	case AttrAPIBase, AttrAPIKey, AttrAPIVersion, AttrClientID:
		return true
	default:
		return false
	}
}

// Get returns the current value of attr.
func Get(attr Attribute) (string, error) {
	if !known(attr) {
		return "", &UnknownAttributeError{Name: attr}
	}
	mu.RLock()
	defer mu.RUnlock()
	return settings[attr], nil
}

// Set replaces the value of attr.
func Set(attr Attribute, value string) error {
	if !known(attr) {
		return &UnknownAttributeError{Name: attr}
	}
	mu.Lock()
	defer mu.Unlock()
	settings[attr] = value
	return nil
}

func get(attr Attribute) string {
	mu.RLock()
	defer mu.RUnlock()
	return settings[attr]
}

func set(attr Attribute, value string) {
	mu.Lock()
	defer mu.Unlock()
	settings[attr] = value
}

// APIBase returns the base URL requests are sent to.
func APIBase() string { return get(AttrAPIBase) }

// SetAPIBase sets the base URL requests are sent to.
func SetAPIBase(v string) { set(AttrAPIBase, v) }

// APIKey returns the secret key used when a request does not carry its own.
func APIKey() string { return get(AttrAPIKey) }

// SetAPIKey sets the default secret key.
func SetAPIKey(v string) { set(AttrAPIKey, v) }

// APIVersion returns the pinned API version, or "" for the account default.
func APIVersion() string { return get(AttrAPIVersion) }

// SetAPIVersion pins the API version sent in the Stripe-Version header.
func SetAPIVersion(v string) { set(AttrAPIVersion, v) }

// ClientID returns the Connect platform client ID.
func ClientID() string { return get(AttrClientID) }

// SetClientID sets the Connect platform client ID.
func SetClientID(v string) { set(AttrClientID, v) }

// DefaultBackend returns the name of the httpclient backend used by requestors.
func DefaultBackend() string {
	mu.RLock()
	defer mu.RUnlock()
	return defaultBackend
}

// SetDefaultBackend selects the httpclient backend used by requestors.
func SetDefaultBackend(name string) {
	mu.Lock()
	defer mu.Unlock()
	defaultBackend = name
}

// LoadFromEnv overrides settings from STRIPE_* environment variables.
// Variables that are unset or empty leave the current value untouched.
func LoadFromEnv() {
	envs := map[Attribute]string{
		AttrAPIBase:    EnvAPIBase,
		AttrAPIKey:     EnvAPIKey,
		AttrAPIVersion: EnvAPIVersion,
		AttrClientID:   EnvClientID,
	}
	for _, attr := range Attributes {
		if v, ok := envutil.LookupStringEnv(envs[attr]); ok {
			set(attr, v)
		}
	}
}
