package fileio

import (
	"os"
	"path/filepath"

	"github.com/zoro11031/filelab/internal/common"
	"github.com/zoro11031/filelab/internal/system"
)

// CheckAccess verifies that path can be opened in the given mode.
//
// For reads the file must exist, be a regular file and be readable. For writes
// an existing file must be writable; a new file needs an existing, writable
// parent directory.
func CheckAccess(fs system.FileSystemManager, path string, mode system.AccessMode) error {
	op := mode.String()

	info, err := fs.Stat(path)
	switch {
	case err == nil:
		if info.IsDir() {
			return &common.FileError{Kind: common.KindIsDirectory, Op: op, Path: path}
		}
		if err := fs.Access(path, mode); err != nil {
			return common.Classify(op, path, err)
		}
		return nil

	case os.IsNotExist(err) && mode == system.AccessWrite:
		return checkParentWritable(fs, path)

	default:
		return common.Classify(op, path, err)
	}
}

func checkParentWritable(fs system.FileSystemManager, path string) error {
	abs, err := fs.Abs(path)
	if err != nil {
		return common.Classify("write", path, err)
	}
	dir := filepath.Dir(abs)

	info, err := fs.Stat(dir)
	if err != nil {
		return common.Classify("write", dir, err)
	}
	if !info.IsDir() {
		return &common.FileError{
			Kind:   common.KindNotFound,
			Op:     "write",
			Path:   dir,
			Reason: "parent is not a directory",
		}
	}

	if err := fs.Access(dir, system.AccessWrite); err != nil {
		return common.Classify("write", dir, err)
	}
	return nil
}
