package system

import "os"

// FileSystemManager defines the interface for file system operations.
// This allows for swapping the file system in tests.
type FileSystemManager interface {
	Abs(path string) (string, error)
	Exists(path string) (bool, error)
	Stat(path string) (os.FileInfo, error)
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, content []byte, perms os.FileMode) error
	Access(path string, mode AccessMode) error
}
