// Package transform holds the pure text modifications offered by the
// transformer workflow.
package transform

import (
	"strconv"
	"strings"

	"gitlab.com/tozd/go/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Mode is a text modification
type Mode int

const (
	ModeUpper Mode = iota + 1
	ModeLower
	ModeCapitalize
	ModeReverseLines
)

var modeNames = map[Mode]string{
	ModeUpper:        "UPPER",
	ModeLower:        "LOWER",
	ModeCapitalize:   "CAPITALIZE",
	ModeReverseLines: "REVERSE_LINES",
}

var modeDescriptions = map[Mode]string{
	ModeUpper:        "Convert to uppercase",
	ModeLower:        "Convert to lowercase",
	ModeCapitalize:   "Capitalize each word",
	ModeReverseLines: "Reverse line order",
}

var modeAliases = map[string]Mode{
	"upper":         ModeUpper,
	"lower":         ModeLower,
	"capitalize":    ModeCapitalize,
	"title":         ModeCapitalize,
	"reverse":       ModeReverseLines,
	"reverse_lines": ModeReverseLines,
	"reverse-lines": ModeReverseLines,
}

// ErrUnknownMode is returned by ParseMode for unrecognised input
var ErrUnknownMode = errors.Base("unknown modification mode")

// Modes returns every mode in menu order
func Modes() []Mode {
	return []Mode{ModeUpper, ModeLower, ModeCapitalize, ModeReverseLines}
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return "Mode(" + strconv.Itoa(int(m)) + ")"
}

// Description is the menu label for the mode
func (m Mode) Description() string {
	return modeDescriptions[m]
}

// Valid reports whether m is one of the known modes
func (m Mode) Valid() bool {
	_, ok := modeNames[m]
	return ok
}

// ParseMode accepts a mode name, a short alias or a menu number (1-4),
// case-insensitively
func ParseMode(s string) (Mode, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "" {
		return 0, errors.Errorf("%w: empty input", ErrUnknownMode)
	}

	if mode, ok := modeAliases[key]; ok {
		return mode, nil
	}

	if n, err := strconv.Atoi(key); err == nil {
		if mode := Mode(n); mode.Valid() {
			return mode, nil
		}
	}

	return 0, errors.Errorf("%w: %q", ErrUnknownMode, s)
}

// Apply returns text modified according to mode.
// An unknown mode returns text unchanged.
func Apply(text string, mode Mode) string {
	switch mode {
	case ModeUpper:
		return strings.ToUpper(text)
	case ModeLower:
		return strings.ToLower(text)
	case ModeCapitalize:
		return cases.Title(language.Und).String(text)
	case ModeReverseLines:
		return reverseLines(text)
	default:
		return text
	}
}

func reverseLines(text string) string {
	if text == "" {
		return ""
	}
	lines := strings.Split(text, "\n")
	for i, j := 0, len(lines)-1; i < j; i, j = i+1, j-1 {
		lines[i], lines[j] = lines[j], lines[i]
	}
	return strings.Join(lines, "\n")
}

// Request is a single transformation job
type Request struct {
	Source      string
	Destination string
	Mode        Mode
}

// Validate checks that the request is complete
func (r Request) Validate() error {
	if strings.TrimSpace(r.Source) == "" {
		return errors.New("source path is required")
	}
	if strings.TrimSpace(r.Destination) == "" {
		return errors.New("destination path is required")
	}
	if !r.Mode.Valid() {
		return errors.Errorf("invalid mode %d", int(r.Mode))
	}
	return nil
}
