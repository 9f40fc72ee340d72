package fileio

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zoro11031/filelab/internal/system"
)

func TestCount(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		lines int
		words int
		chars int
	}{
		{"empty", "", 0, 0, 0},
		{"terminated", "a b\nc\n", 2, 3, 6},
		{"unterminated last line", "a b\nc", 2, 3, 5},
		{"single newline", "\n", 1, 0, 1},
		{"blank lines", "\n\n\n", 3, 0, 3},
		{"multibyte", "héllo wörld", 1, 2, 11},
		{"tabs and spaces", "one\ttwo   three", 1, 3, 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines, words, chars := Count(tt.text)
			assert.Equal(t, tt.lines, lines, "lines")
			assert.Equal(t, tt.words, words, "words")
			assert.Equal(t, tt.chars, chars, "chars")
		})
	}
}

func TestSummarizeMemory(t *testing.T) {
	mem := memfs.New()
	require.NoError(t, util.WriteFile(mem, "/notes/sample.txt", []byte("a b\nc\n"), 0o644))

	report, err := Summarize(context.Background(), system.NewFileSystemWith(mem), "/notes/sample.txt", quickPolicy(3))
	require.NoError(t, err)

	assert.Equal(t, "/notes/sample.txt", report.Path)
	assert.Equal(t, "/notes/sample.txt", report.AbsPath)
	assert.Equal(t, "sample.txt", report.Name)
	assert.Equal(t, int64(6), report.SizeBytes)
	assert.Equal(t, 2, report.LineCount)
	assert.Equal(t, 3, report.WordCount)
	assert.Equal(t, 6, report.CharCount)
	assert.Equal(t, 1, report.Attempts)
	assert.True(t, strings.HasPrefix(report.MimeType, "text/plain"), report.MimeType)
	assert.Equal(t, "6.00 B", report.HumanSize())
}

func TestInspectReturnsContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.md")
	require.NoError(t, os.WriteFile(path, []byte("# Title\n\nbody text\n"), 0o644))

	report, content, err := Inspect(context.Background(), system.NewFileSystem(), path, quickPolicy(3))
	require.NoError(t, err)
	assert.Equal(t, "# Title\n\nbody text\n", content)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(report.ModifiedAt))
	assert.Equal(t, info.Size(), report.SizeBytes)
	assert.Equal(t, 3, report.LineCount)
	assert.Equal(t, 4, report.WordCount)
}

func TestSummarizeMissing(t *testing.T) {
	_, err := Summarize(context.Background(), system.NewFileSystemWith(memfs.New()), "/missing.txt", quickPolicy(3))
	require.Error(t, err)
}

func TestHumanSize(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{0, "0.00 B"},
		{512, "512.00 B"},
		{1024, "1024.00 B"},
		{1536, "1.50 KB"},
		{1048577, "1.00 MB"},
		{5 * 1024 * 1024 * 1024, "5.00 GB"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, HumanSize(tt.size), "size %d", tt.size)
	}
}

func TestPreview(t *testing.T) {
	text, cut := Preview("hello world", 5)
	assert.Equal(t, "hello", text)
	assert.True(t, cut)

	text, cut = Preview("short", 500)
	assert.Equal(t, "short", text)
	assert.False(t, cut)

	text, cut = Preview("ééééé", 2)
	assert.Equal(t, "éé", text)
	assert.True(t, cut)

	text, cut = Preview("unlimited", 0)
	assert.Equal(t, "unlimited", text)
	assert.False(t, cut)
}
