package config

import (
	"sort"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/zoro11031/filelab/internal/transform"
)

// Configuration key constants to prevent typos and enable autocomplete
const (
	// Retry behaviour for reads
	KeyRetryMaxAttempts = "RETRY_MAX_ATTEMPTS"
	KeyRetryDelayMS     = "RETRY_DELAY_MS"

	// Inspector
	KeyAllowedPatterns = "ALLOWED_PATTERNS" // comma separated glob patterns
	KeyPreviewLimit    = "PREVIEW_LIMIT"    // characters shown in a content preview

	// Transformer
	KeyDefaultMode = "DEFAULT_MODE"

	// Logging
	KeyLogLevel = "LOG_LEVEL"
)

// Default values for configuration keys
var Defaults = map[string]string{
	KeyRetryMaxAttempts: "3",
	KeyRetryDelayMS:     "1000",
	KeyAllowedPatterns:  "*.txt,*.md,*.csv,*.log,*.json,*.yaml,*.yml,*.ini,*.conf",
	KeyPreviewLimit:     "500",
	KeyDefaultMode:      "UPPER",
	KeyLogLevel:         "warn",
}

// Keys returns the known configuration keys in sorted order
func Keys() []string {
	keys := make([]string, 0, len(Defaults))
	for k := range Defaults {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// IsKnown reports whether key is one of the known configuration keys
func IsKnown(key string) bool {
	_, ok := Defaults[key]
	return ok
}

// ValidateValue checks value against the rules for a known key
func ValidateValue(key, value string) error {
	value = strings.TrimSpace(value)

	switch key {
	case KeyRetryMaxAttempts:
		return validateInt(key, value, 1)
	case KeyRetryDelayMS, KeyPreviewLimit:
		return validateInt(key, value, 0)
	case KeyAllowedPatterns:
		for _, pattern := range SplitList(value) {
			if !doublestar.ValidatePattern(pattern) {
				return errors.Errorf("%s: invalid pattern %q", key, pattern)
			}
		}
		return nil
	case KeyDefaultMode:
		if _, err := transform.ParseMode(value); err != nil {
			return errors.Errorf("%s: %w", key, err)
		}
		return nil
	case KeyLogLevel:
		if _, err := zerolog.ParseLevel(strings.ToLower(value)); err != nil {
			return errors.Errorf("%s: %w", key, err)
		}
		return nil
	default:
		return errors.Errorf("unknown config key: %s", key)
	}
}

func validateInt(key, value string, minimum int) error {
	n, err := strconv.Atoi(value)
	if err != nil {
		return errors.Errorf("%s must be an integer, got %q", key, value)
	}
	if n < minimum {
		return errors.Errorf("%s must be at least %d, got %d", key, minimum, n)
	}
	return nil
}
