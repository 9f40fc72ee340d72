package fileio

import (
	"gitlab.com/tozd/go/errors"

	"github.com/zoro11031/filelab/internal/common"
	"github.com/zoro11031/filelab/internal/system"
)

// Outcome is the result of a guarded write
type Outcome int

const (
	Written Outcome = iota + 1
	Aborted
)

func (o Outcome) String() string {
	switch o {
	case Written:
		return "written"
	case Aborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// ConfirmFunc asks whether an existing path may be overwritten
type ConfirmFunc func(path string) (bool, error)

// DefaultFileMode is used for newly written files
const DefaultFileMode = 0o644

// WriteWithGuard writes text to path. If path already exists, confirm is asked
// first; a refusal (or a nil confirm) returns Aborted and leaves the file untouched.
func WriteWithGuard(fs system.FileSystemManager, path, text string, confirm ConfirmFunc) (Outcome, error) {
	exists, err := fs.Exists(path)
	if err != nil {
		return 0, common.Classify("stat", path, err)
	}

	if exists {
		if confirm == nil {
			return Aborted, nil
		}
		ok, err := confirm(path)
		if err != nil {
			return 0, errors.Errorf("confirming overwrite of %s: %w", path, err)
		}
		if !ok {
			return Aborted, nil
		}
	}

	if err := fs.WriteFile(path, []byte(text), DefaultFileMode); err != nil {
		return 0, common.Classify("write", path, err)
	}

	return Written, nil
}
