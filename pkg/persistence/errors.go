package persistence

import (
	"errors"
	"fmt"
)

// Error kinds. Every *Error carries exactly one of these as its Kind, so
// callers can test for a kind with errors.Is.
var (
	ErrDirectoryResolve = errors.New("failed to resolve app directory")
	ErrDirectoryCreate  = errors.New("failed to create app directory")
	ErrSerialization    = errors.New("failed to serialize JSON")
	ErrWrite            = errors.New("failed to write file")
	ErrFileNotFound     = errors.New("file does not exist")
	ErrRead             = errors.New("failed to read file")
	ErrParse            = errors.New("failed to parse JSON")
	ErrInvalidFilename  = errors.New("invalid filename")
)

// Error is returned by every Store operation that fails.
type Error struct {
	Kind     error
	Filename string
	Err      error
}

func newError(kind error, filename string, err error) *Error {
	return &Error{Kind: kind, Filename: filename, Err: err}
}

func (e *Error) Error() string {
	switch {
	case e.Kind == ErrFileNotFound:
		return fmt.Sprintf("%s: %s", e.Kind, e.Filename)
	case e.Kind == ErrInvalidFilename:
		return fmt.Sprintf("%s %q: %v", e.Kind, e.Filename, e.Err)
	case e.Err == nil:
		return e.Kind.Error()
	default:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool { return target == e.Kind }
