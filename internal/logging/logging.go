// Package logging builds the zerolog logger that travels in the context of
// every filelab operation. User-facing output goes through internal/ui; the
// logger is for diagnostics on stderr.
package logging

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// DefaultLevel is used when no level is configured
const DefaultLevel = zerolog.WarnLevel

// ParseLevel parses a level name case-insensitively. An empty name is DefaultLevel.
func ParseLevel(name string) (zerolog.Level, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return DefaultLevel, nil
	}
	level, err := zerolog.ParseLevel(name)
	if err != nil {
		return DefaultLevel, errors.Errorf("invalid log level %q: %w", name, err)
	}
	return level, nil
}

// New creates a console logger writing to w. debug forces the debug level
// regardless of level.
func New(w io.Writer, level string, debug bool) (zerolog.Logger, error) {
	lvl, err := ParseLevel(level)
	if debug {
		lvl = zerolog.DebugLevel
	}

	console := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.Kitchen,
		NoColor:    !isTerminal(w),
	}
	logger := zerolog.New(console).Level(lvl).With().Timestamp().Logger()
	if err != nil {
		// The logger is still usable at the default level
		return logger, err
	}
	return logger, nil
}
