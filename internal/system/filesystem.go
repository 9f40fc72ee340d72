// Package system wraps the host filesystem behind go-billy so that the file
// workflows can run against the real disk or an in-memory filesystem.
package system

import (
	"io"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"golang.org/x/sys/unix"
)

// AccessMode selects the permission checked by Access
type AccessMode int

const (
	AccessRead AccessMode = iota
	AccessWrite
)

func (m AccessMode) String() string {
	if m == AccessWrite {
		return "write"
	}
	return "read"
}

// FileSystem handles file system operations.
// Errors are returned as produced by the underlying filesystem so callers can
// classify them.
type FileSystem struct {
	fs     billy.Filesystem
	native bool
}

// NewFileSystem creates a FileSystem backed by the host OS
func NewFileSystem() *FileSystem {
	return &FileSystem{
		fs:     osfs.New("/"),
		native: true,
	}
}

// NewFileSystemWith creates a FileSystem on top of any billy filesystem
// (memfs in tests). Access checks fall back to the stored permission bits.
func NewFileSystemWith(fs billy.Filesystem) *FileSystem {
	return &FileSystem{fs: fs}
}

// Abs resolves path against the working directory
func (f *FileSystem) Abs(path string) (string, error) {
	return filepath.Abs(path)
}

// Exists checks if a file or directory exists
func (f *FileSystem) Exists(path string) (bool, error) {
	_, err := f.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// Stat returns file metadata
func (f *FileSystem) Stat(path string) (os.FileInfo, error) {
	abs, err := f.Abs(path)
	if err != nil {
		return nil, err
	}
	return f.fs.Stat(abs)
}

// ReadFile opens path, reads it fully and closes it on every exit path
func (f *FileSystem) ReadFile(path string) (data []byte, err error) {
	abs, err := f.Abs(path)
	if err != nil {
		return nil, err
	}

	file, err := f.fs.Open(abs)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return io.ReadAll(file)
}

// WriteFile creates or truncates path and writes content to it.
// A close error is reported when the write itself succeeded.
func (f *FileSystem) WriteFile(path string, content []byte, perms os.FileMode) (err error) {
	abs, err := f.Abs(path)
	if err != nil {
		return err
	}

	file, err := f.fs.OpenFile(abs, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perms)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	_, err = file.Write(content)
	return err
}

// Access checks whether the current user may read or write path
func (f *FileSystem) Access(path string, mode AccessMode) error {
	abs, err := f.Abs(path)
	if err != nil {
		return err
	}

	if f.native {
		bit := uint32(unix.R_OK)
		if mode == AccessWrite {
			bit = unix.W_OK
		}
		if err := unix.Access(abs, bit); err != nil {
			return &os.PathError{Op: "access", Path: abs, Err: err}
		}
		return nil
	}

	info, err := f.fs.Stat(abs)
	if err != nil {
		return err
	}
	want := os.FileMode(0o400)
	if mode == AccessWrite {
		want = 0o200
	}
	if info.Mode().Perm()&want == 0 {
		return &os.PathError{Op: "access", Path: abs, Err: os.ErrPermission}
	}
	return nil
}
