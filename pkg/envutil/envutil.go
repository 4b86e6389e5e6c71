// Package envutil reads tuning knobs from environment variables.
package envutil

import (
	"fmt"
	"os"
	"strconv"

	"github.com/agentsync/agentsync/pkg/console"
	"github.com/agentsync/agentsync/pkg/logger"
)

// GetIntFromEnv reads an integer from the named environment variable,
// bounded by [minValue, maxValue]. An unset variable yields defaultValue
// silently; an unparseable or out-of-bounds value yields defaultValue with a
// warning on stderr, so a typo in a tuning knob never aborts a run. A nil
// log is allowed.
func GetIntFromEnv(envVar string, defaultValue, minValue, maxValue int, log *logger.Logger) int {
	raw := os.Getenv(envVar)
	if raw == "" {
		return defaultValue
	}

	val, err := strconv.Atoi(raw)
	if err != nil {
		fmt.Fprintln(os.Stderr, console.FormatWarningMessage(
			fmt.Sprintf("Invalid %s value %q (must be a number), using default %d", envVar, raw, defaultValue),
		))
		return defaultValue
	}
	if val < minValue || val > maxValue {
		fmt.Fprintln(os.Stderr, console.FormatWarningMessage(
			fmt.Sprintf("%s value %d is out of bounds (must be %d-%d), using default %d", envVar, val, minValue, maxValue, defaultValue),
		))
		return defaultValue
	}

	if log != nil {
		log.Printf("Using %s=%d", envVar, val)
	}
	return val
}
