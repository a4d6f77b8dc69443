package common

import (
	"errors"
	"fmt"
)

var (
	// Argument and usage errors.
	ErrValidation = errors.New("validation error")

	// Missing file, directory, package or user.
	ErrNotFound = errors.New("not found")

	// A non-admin identity attempted an admin-only action.
	ErrPermissionDenied = errors.New("permission denied")

	// Bad credentials or user selection.
	ErrAuthFailure = errors.New("authentication failed")

	// Durable storage could not be read or written.
	ErrIOFailure = errors.New("i/o failure")

	// Package lifecycle errors.
	ErrNotInstalled      = errors.New("package is not installed")
	ErrMissingEntryPoint = errors.New("entry point not found in package")
	ErrRuntimeFailure    = errors.New("runtime failure")
)

// UsageError reports a command invoked with bad arguments. It unwraps to
// ErrValidation.
type UsageError struct {
	Usage string
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("usage: %s", e.Usage)
}

func (e *UsageError) Unwrap() error {
	return ErrValidation
}

// Usage is a shorthand for &UsageError{Usage: usage}.
func Usage(usage string) error {
	return &UsageError{Usage: usage}
}

// Error is a user-facing failure of a known kind. Its message is shown as
// is; errors.Is matches both the kind and any error wrapped by the message.
type Error struct {
	Kind error
	msg  string
	err  error
}

// Errorf formats a message of the given kind. A %w verb in format keeps the
// wrapped error reachable through errors.Is and errors.As.
func Errorf(kind error, format string, args ...any) error {
	inner := fmt.Errorf(format, args...)
	return &Error{Kind: kind, msg: inner.Error(), err: inner}
}

func (e *Error) Error() string {
	return e.msg
}

func (e *Error) Unwrap() []error {
	return []error{e.Kind, e.err}
}
