package system

import (
	"os"
	"sync"

	"github.com/go-git/go-billy/v5"
)

// FaultyFS decorates a billy filesystem and fails Open with a fixed error.
// It is used to exercise retry behaviour without real flaky storage.
type FaultyFS struct {
	billy.Filesystem
	mu       sync.Mutex
	err      error
	failures int // number of Open calls to fail; negative fails forever
	opens    int
}

// NewFaultyFS wraps base so that the first failures calls to Open return err
func NewFaultyFS(base billy.Filesystem, err error, failures int) *FaultyFS {
	return &FaultyFS{
		Filesystem: base,
		err:        err,
		failures:   failures,
	}
}

// Open counts the attempt and fails while failures remain
func (f *FaultyFS) Open(filename string) (billy.File, error) {
	f.mu.Lock()
	f.opens++
	fail := f.failures < 0 || f.opens <= f.failures
	f.mu.Unlock()

	if fail {
		return nil, &os.PathError{Op: "open", Path: filename, Err: f.err}
	}
	return f.Filesystem.Open(filename)
}

// Opens returns how many times Open was called
func (f *FaultyFS) Opens() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.opens
}
