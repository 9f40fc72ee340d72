// Package steps implements the interactive file workflows: the transformer
// (read, modify, guarded write) and the inspector (validate, check access,
// read with retry, report).
package steps

import (
	"strings"

	"github.com/kballard/go-shellquote"
)

// ParsePathInput turns what the user typed into a path. Shell quoting is
// honoured, so 'my notes.txt' and my\ notes.txt both work; anything that is
// not a single shell word is used as typed.
func ParsePathInput(raw string) string {
	trimmed := strings.TrimSpace(raw)
	words, err := shellquote.Split(trimmed)
	if err == nil && len(words) == 1 {
		return words[0]
	}
	return trimmed
}
