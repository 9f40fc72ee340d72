package common

import (
	"fmt"
	"os"

	"gitlab.com/tozd/go/errors"
	"golang.org/x/sys/unix"
)

// Kind classifies a file operation failure
type Kind int

const (
	KindUnexpected Kind = iota
	KindInvalidFormat
	KindNotFound
	KindPermissionDenied
	KindTransientIO
	KindExhausted
	KindEncoding
	KindIsDirectory
)

var kindNames = map[Kind]string{
	KindUnexpected:       "unexpected error",
	KindInvalidFormat:    "invalid format",
	KindNotFound:         "not found",
	KindPermissionDenied: "permission denied",
	KindTransientIO:      "transient I/O error",
	KindExhausted:        "retries exhausted",
	KindEncoding:         "encoding error",
	KindIsDirectory:      "is a directory",
}

// String returns a short name for the kind
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// FileError is the error type returned by every file operation in filelab.
// Kind drives how the failure is reported to the user and whether it is retried.
type FileError struct {
	Kind     Kind
	Op       string
	Path     string
	Attempts int    // only set for KindExhausted
	Reason   string // human readable detail, used by InvalidFormat and Encoding
	Err      error
}

// Sentinels for errors.Is comparisons against a kind
var (
	ErrInvalidFormat    = &FileError{Kind: KindInvalidFormat}
	ErrNotFound         = &FileError{Kind: KindNotFound}
	ErrPermissionDenied = &FileError{Kind: KindPermissionDenied}
	ErrTransientIO      = &FileError{Kind: KindTransientIO}
	ErrExhausted        = &FileError{Kind: KindExhausted}
	ErrEncoding         = &FileError{Kind: KindEncoding}
	ErrIsDirectory      = &FileError{Kind: KindIsDirectory}
)

func (e *FileError) Error() string {
	msg := e.Kind.String()
	if e.Reason != "" {
		msg = e.Reason
	}
	if e.Kind == KindExhausted {
		msg = fmt.Sprintf("gave up after %d attempts", e.Attempts)
	}
	if e.Path != "" {
		msg = fmt.Sprintf("%s %s: %s", e.Op, e.Path, msg)
	} else if e.Op != "" {
		msg = fmt.Sprintf("%s: %s", e.Op, msg)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// Is matches the kind sentinels (a FileError with no Op and no Path)
func (e *FileError) Is(target error) bool {
	t, ok := target.(*FileError)
	if !ok {
		return false
	}
	return t.Op == "" && t.Path == "" && t.Kind == e.Kind
}

// transientErrnos are the OS error codes worth retrying: resource contention,
// interrupted calls and flaky storage. A missing file is never in this list.
var transientErrnos = []unix.Errno{
	unix.EAGAIN,
	unix.EINTR,
	unix.EBUSY,
	unix.EIO,
	unix.ETIMEDOUT,
	unix.ENFILE,
	unix.EMFILE,
	unix.ESTALE,
	unix.ETXTBSY,
	unix.ENOLCK,
}

func isTransientErrno(err error) bool {
	for _, errno := range transientErrnos {
		if errors.Is(err, errno) {
			return true
		}
	}
	return false
}

// IsTransient reports whether err is expected to possibly succeed on retry
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	var fe *FileError
	if errors.As(err, &fe) {
		return fe.Kind == KindTransientIO
	}
	return isTransientErrno(err)
}

// Classify converts an OS level error into a *FileError.
// Errors that are already classified are returned unchanged.
func Classify(op, path string, err error) error {
	if err == nil {
		return nil
	}

	var fe *FileError
	if errors.As(err, &fe) {
		return err
	}

	kind := KindUnexpected
	switch {
	case errors.Is(err, os.ErrNotExist):
		kind = KindNotFound
	case errors.Is(err, os.ErrPermission):
		kind = KindPermissionDenied
	case errors.Is(err, unix.EISDIR):
		kind = KindIsDirectory
	case isTransientErrno(err):
		kind = KindTransientIO
	}

	return &FileError{Kind: kind, Op: op, Path: path, Err: err}
}

// KindOf returns the kind of err, or KindUnexpected if it is not a FileError
func KindOf(err error) Kind {
	var fe *FileError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindUnexpected
}

// Message returns a one-line, actionable message for err suitable for the user
func Message(err error) string {
	if err == nil {
		return ""
	}

	var fe *FileError
	if !errors.As(err, &fe) {
		return fmt.Sprintf("Unexpected error: %v", err)
	}

	switch fe.Kind {
	case KindInvalidFormat:
		return fmt.Sprintf("Invalid filename: %s.", fe.Reason)
	case KindNotFound:
		return fmt.Sprintf("The file '%s' was not found.", fe.Path)
	case KindPermissionDenied:
		verb := fe.Op
		if verb == "" {
			verb = "access"
		}
		return fmt.Sprintf("You don't have permission to %s '%s'.", verb, fe.Path)
	case KindIsDirectory:
		return fmt.Sprintf("'%s' is a directory, not a file.", fe.Path)
	case KindEncoding:
		return fmt.Sprintf("The file '%s' contains characters that cannot be decoded as UTF-8 (%s). Try a different encoding.", fe.Path, fe.Reason)
	case KindTransientIO:
		return fmt.Sprintf("Temporary I/O error on '%s': %v. Try again in a moment.", fe.Path, fe.Err)
	case KindExhausted:
		return fmt.Sprintf("Failed to read '%s' after %d attempts. Last error: %v", fe.Path, fe.Attempts, fe.Err)
	default:
		return fmt.Sprintf("Unexpected error on '%s': %v", fe.Path, fe.Err)
	}
}
