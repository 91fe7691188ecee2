package requestor

// Settings are the per-requestor overrides of the process-wide configuration.
// Zero fields fall back to the globals in package stripe.
type Settings struct {
	// APIBase replaces stripe.APIBase() for this requestor.
	APIBase string

	// Account is sent as Stripe-Account to act on behalf of a connected account.
	Account string

	// Backend names the httpclient backend. Empty uses stripe.DefaultBackend().
	Backend string
}

// Option configures a Requestor.
type Option func(*Settings)

// WithAPIBase sends requests to base instead of the global API base.
func WithAPIBase(base string) Option {
	return func(s *Settings) {
		s.APIBase = base
	}
}

// WithAccount sets the Stripe-Account header.
func WithAccount(account string) Option {
	return func(s *Settings) {
		s.Account = account
	}
}

// WithBackend selects a registered httpclient backend by name.
func WithBackend(name string) Option {
	return func(s *Settings) {
		s.Backend = name
	}
}

// Apply returns the Settings produced by opts.
func Apply(opts ...Option) Settings {
	var s Settings
	for _, opt := range opts {
		opt(&s)
	}
	return s
}
