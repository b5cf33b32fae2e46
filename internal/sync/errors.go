package sync

import (
	"errors"
	"fmt"
)

var (
	// ErrNoVersionControlDirectory is returned when the project has no .git directory.
	ErrNoVersionControlDirectory = errors.New("no version control directory")

	// ErrNoHooksSourceDirectory is returned when the staging directory is
	// missing, not a directory, or unreadable.
	ErrNoHooksSourceDirectory = errors.New("hooks source directory unavailable")

	// ErrHookConflict marks a staged hook whose installed counterpart differs.
	ErrHookConflict = errors.New("hook conflict")

	// ErrFileUnreadable is returned by diff computation when either side
	// cannot be read.
	ErrFileUnreadable = errors.New("file unreadable")
)

// DirectoryError reports a failed precondition on one of the project
// directories. Kind is ErrNoVersionControlDirectory or
// ErrNoHooksSourceDirectory.
type DirectoryError struct {
	Kind error
	Path string
	// Missing is true when the path does not exist, false when it exists but
	// is not a readable directory.
	Missing bool
	Err     error
}

func (e *DirectoryError) Error() string {
	switch {
	case errors.Is(e.Kind, ErrNoVersionControlDirectory):
		return fmt.Sprintf("no .git directory was found within %s", e.Path)
	case e.Missing:
		return fmt.Sprintf("the git hooks directory at %s does not exist", e.Path)
	default:
		return fmt.Sprintf("the git hooks directory at %s is inaccessible", e.Path)
	}
}

// Unwrap exposes both the kind sentinel and the underlying cause.
func (e *DirectoryError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// ConflictError carries the name of a hook that already exists at the
// destination with different content.
type ConflictError struct {
	Hook string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("a %s hook already exists for this repository", e.Hook)
}

// Is reports whether target is ErrHookConflict.
func (e *ConflictError) Is(target error) bool {
	return target == ErrHookConflict
}

// DiffError reports a side of a diff that could not be read.
type DiffError struct {
	Hook string
	Path string
	Err  error
}

func (e *DiffError) Error() string {
	return fmt.Sprintf("cannot diff %s hook: failed to read %s: %v", e.Hook, e.Path, e.Err)
}

// Unwrap returns ErrFileUnreadable and the read error.
func (e *DiffError) Unwrap() []error {
	return []error{ErrFileUnreadable, e.Err}
}
