package util

import (
	"log/slog"
	"os"
	"strings"
)

// ParseBoolEnv reads a boolean switch from the environment (GEO_OFFLINE is
// the main user). Recognized spellings are true/1/yes/on and false/0/no/off,
// case-insensitive; an unset or unrecognized value yields the fallback.
func ParseBoolEnv(key string, fallback bool) bool {
	raw := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	switch raw {
	case "":
		return fallback
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	default:
		slog.Warn("ParseBoolEnv ignoring unrecognized value", "key", key, "value", raw, "fallback", fallback)
		return fallback
	}
}
