package stripe

import (
	"sync/atomic"

	"github.com/rs/zerolog"
)

var logger atomic.Pointer[zerolog.Logger]

func init() {
	nop := zerolog.Nop()
	logger.Store(&nop)
}

// Logger returns the library logger. It discards everything until SetLogger
// is called.
func Logger() zerolog.Logger {
	return *logger.Load()
}

// SetLogger replaces the library logger.
//
// Example:
//
//	stripe.SetLogger(zerolog.New(os.Stderr).Level(zerolog.DebugLevel))
func SetLogger(l zerolog.Logger) {
	logger.Store(&l)
}
