package fileio

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"

	"github.com/zoro11031/filelab/internal/common"
	"github.com/zoro11031/filelab/internal/system"
)

// FileReport describes a file at the time it was read
type FileReport struct {
	Path         string
	AbsPath      string
	Name         string
	SizeBytes    int64
	ModifiedAt   time.Time
	LineCount    int
	WordCount    int
	CharCount    int
	MimeType     string
	ReadDuration time.Duration
	Attempts     int
}

// HumanSize formats size with two decimals in the largest fitting unit (e.g. "1.50 KB")
func (r *FileReport) HumanSize() string {
	return HumanSize(r.SizeBytes)
}

// Count returns line, word and character counts for text.
// Lines are newline terminated segments plus a trailing unterminated one,
// words are whitespace separated tokens, characters are Unicode code points.
func Count(text string) (lines, words, chars int) {
	if text == "" {
		return 0, 0, 0
	}

	lines = strings.Count(text, "\n")
	if !strings.HasSuffix(text, "\n") {
		lines++
	}
	words = len(strings.Fields(text))
	chars = utf8.RuneCountInString(text)
	return lines, words, chars
}

// Inspect reads path once (with retry) and builds its report.
// The content is returned alongside so callers can preview it without a
// second read.
func Inspect(ctx context.Context, fs system.FileSystemManager, path string, policy RetryPolicy) (*FileReport, string, error) {
	start := time.Now()
	content, attempts, err := ReadWithRetry(ctx, fs, path, policy)
	if err != nil {
		return nil, "", err
	}
	elapsed := time.Since(start)

	info, err := fs.Stat(path)
	if err != nil {
		return nil, "", common.Classify("stat", path, err)
	}

	abs, err := fs.Abs(path)
	if err != nil {
		return nil, "", common.Classify("stat", path, err)
	}

	lines, words, chars := Count(content)

	return &FileReport{
		Path:         path,
		AbsPath:      abs,
		Name:         filepath.Base(abs),
		SizeBytes:    info.Size(),
		ModifiedAt:   info.ModTime(),
		LineCount:    lines,
		WordCount:    words,
		CharCount:    chars,
		MimeType:     mimetype.Detect([]byte(content)).String(),
		ReadDuration: elapsed,
		Attempts:     attempts,
	}, content, nil
}

// Summarize returns the report for path using a single read pass
func Summarize(ctx context.Context, fs system.FileSystemManager, path string, policy RetryPolicy) (*FileReport, error) {
	report, _, err := Inspect(ctx, fs, path, policy)
	return report, err
}

var sizeUnits = []string{"B", "KB", "MB", "GB", "TB"}

// HumanSize formats a byte count with two decimals, dividing by 1024 while the
// value is above 1024
func HumanSize(size int64) string {
	value := float64(size)
	unit := 0
	for value > 1024 && unit < len(sizeUnits)-1 {
		value /= 1024
		unit++
	}
	return fmt.Sprintf("%.2f %s", value, sizeUnits[unit])
}

// Preview returns at most limit characters of text and whether it was cut.
// A limit of zero or less disables truncation.
func Preview(text string, limit int) (string, bool) {
	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return text, false
	}
	runes := []rune(text)
	return string(runes[:limit]), true
}
