// Package fileio implements the guarded, classified file operations used by
// the transformer and inspector: reading text, guarded writes, access checks,
// bounded retry and file reports.
package fileio

import (
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"

	"github.com/zoro11031/filelab/internal/common"
	"github.com/zoro11031/filelab/internal/system"
)

// ReadText reads path and returns its content as UTF-8 text.
// Content that is not valid UTF-8 fails with an Encoding error naming the
// detected content type.
func ReadText(fs system.FileSystemManager, path string) (string, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return "", common.Classify("read", path, err)
	}

	if !utf8.Valid(data) {
		return "", &common.FileError{
			Kind:   common.KindEncoding,
			Op:     "read",
			Path:   path,
			Reason: "detected " + mimetype.Detect(data).String(),
		}
	}

	return string(data), nil
}
