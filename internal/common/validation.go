// Package common holds the validation rules and the error taxonomy shared by
// the transformer and inspector workflows.
package common

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"
)

// MaxFilenameLength is the longest filename accepted by ValidateFilename
const MaxFilenameLength = 255

// InvalidFilenameChars are rejected on every platform
var InvalidFilenameChars = []rune{'<', '>', ':', '"', '/', '\\', '|', '?', '*'}

// ValidateNotEmpty validates that a string is not empty
func ValidateNotEmpty(value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("value cannot be empty")
	}
	return nil
}

func invalidFilename(name, reason string) error {
	return &FileError{Kind: KindInvalidFormat, Op: "validate", Path: name, Reason: reason}
}

// ValidateFilename checks a bare filename against the naming rules.
// patterns are glob patterns (e.g. "*.txt") the name must match, compared
// case-insensitively; an empty list accepts any extension.
func ValidateFilename(name string, patterns []string) error {
	if strings.TrimSpace(name) == "" {
		return invalidFilename(name, "filename cannot be empty")
	}

	for _, c := range name {
		for _, bad := range InvalidFilenameChars {
			if c == bad {
				return invalidFilename(name, fmt.Sprintf("filename contains invalid character '%c'", c))
			}
		}
		if unicode.IsControl(c) {
			return invalidFilename(name, "filename contains a control character")
		}
	}

	if name == "." || name == ".." {
		return invalidFilename(name, "filename cannot be '.' or '..'")
	}

	if len(name) > MaxFilenameLength {
		return invalidFilename(name, fmt.Sprintf("filename too long (max %d characters)", MaxFilenameLength))
	}

	ext := filepath.Ext(name)
	if ext == "" || ext == "." {
		return invalidFilename(name, "filename must have an extension")
	}
	if strings.TrimSpace(strings.TrimSuffix(name, ext)) == "" {
		return invalidFilename(name, "filename must have a base name before the extension")
	}

	if len(patterns) == 0 {
		return nil
	}

	lower := strings.ToLower(name)
	for _, pattern := range patterns {
		matched, err := doublestar.Match(strings.ToLower(pattern), lower)
		if err != nil {
			return errors.Errorf("invalid filename pattern %q: %w", pattern, err)
		}
		if matched {
			return nil
		}
	}

	return invalidFilename(name, fmt.Sprintf("extension %s is not allowed (allowed: %s)", ext, strings.Join(patterns, ", ")))
}
