package logging

import (
	"os"
)

// DebugEnv enables debug logging when set to any non-empty value.
const DebugEnv = "FF_DEBUG"

// DebugEnabled returns true if debug mode is enabled via the FF_DEBUG environment variable
func DebugEnabled() bool {
	return os.Getenv(DebugEnv) != ""
}

// EffectiveLevel returns "debug" when FF_DEBUG is set or verbose is requested,
// otherwise the configured level.
func EffectiveLevel(configured string, verbose bool) string {
	if verbose || DebugEnabled() {
		return "debug"
	}
	if configured == "" {
		return "info"
	}
	return configured
}
