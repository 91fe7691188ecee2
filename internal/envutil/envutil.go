// Package envutil reads typed values from environment variables with defaults.
package envutil

import (
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// Logger receives warnings about malformed values. It is silent by default.
var Logger = zerolog.Nop()

// GetStringEnv reads a string environment variable with a default fallback.
func GetStringEnv(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultValue
}

// LookupStringEnv reports the value of key and whether it was set to a
// non-empty string.
func LookupStringEnv(key string) (string, bool) {
	val := os.Getenv(key)
	return val, val != ""
}

// GetIntEnv reads an integer environment variable with a default fallback.
// Logs a warning if the value is invalid.
func GetIntEnv(key string, defaultValue int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultValue
	}

	intVal, err := strconv.Atoi(val)
	if err != nil {
		Logger.Warn().
			Str("key", key).
			Str("value", val).
			Int("default", defaultValue).
			Msg("invalid integer value for environment variable")
		return defaultValue
	}

	return intVal
}

// GetBoolEnv reads a boolean environment variable with a default fallback.
// Accepts "true", "1", "false" and "0", case-insensitive.
func GetBoolEnv(key string, defaultValue bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return defaultValue
	}

	switch strings.ToLower(val) {
	case "true", "1":
		return true
	case "false", "0":
		return false
	default:
		Logger.Warn().
			Str("key", key).
			Str("value", val).
			Bool("default", defaultValue).
			Msg("invalid boolean value for environment variable")
		return defaultValue
	}
}
