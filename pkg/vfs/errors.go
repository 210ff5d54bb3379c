package vfs

import (
	"errors"
	"syscall"
)

// Error represents a domain error from VFS operations.
//
// These are structured errors (invalid name, destination exists, broken
// launcher file, ...) as opposed to plain wrapped I/O failures. Interactive
// layers switch on Code to render an appropriate message ("name already in
// use" vs "permission denied").
type Error struct {
	// Code is the error category
	Code ErrorCode

	// Message is a human-readable error description
	Message string

	// Path is the filesystem path related to the error (if applicable)
	Path string

	// Errno is the originating OS error code for ErrIO errors, 0 otherwise
	Errno syscall.Errno
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Path != "" {
		return e.Message + ": " + e.Path
	}
	return e.Message
}

// Unwrap exposes the underlying OS error code for errors.Is checks
// (e.g. errors.Is(err, syscall.EACCES)).
func (e *Error) Unwrap() error {
	if e.Errno != 0 {
		return e.Errno
	}
	return nil
}

// ErrorCode represents the category of a VFS error.
type ErrorCode int

const (
	// ErrIO indicates a stat, open, read, write or rename syscall failure.
	// The originating OS error code is carried in Error.Errno.
	ErrIO ErrorCode = iota

	// ErrInvalidName indicates a rename target name that is empty or
	// contains a path separator
	ErrInvalidName

	// ErrEncoding indicates a name that cannot be represented in the
	// filesystem encoding (embedded NUL or invalid UTF-8 bytes)
	ErrEncoding

	// ErrAlreadyExists indicates the rename destination is occupied
	ErrAlreadyExists

	// ErrInvalidFormat indicates a launcher file without the required
	// "Desktop Entry" group
	ErrInvalidFormat

	// ErrMissingExecField indicates a launcher file without a usable
	// Exec field
	ErrMissingExecField

	// ErrUnreadableLauncher indicates a launcher file that cannot be
	// opened or parsed when building an execution request
	ErrUnreadableLauncher

	// ErrParse indicates an execution-template expansion failure
	ErrParse
)

// CodeOf extracts the ErrorCode from err. The boolean is false when err is
// not a *vfs.Error (or does not wrap one).
func CodeOf(err error) (ErrorCode, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Code, true
	}
	return 0, false
}

// newIOError builds an ErrIO error from an OS error, digging the errno out
// of wrapped syscall errors where present.
func newIOError(message, path string, err error) *Error {
	var errno syscall.Errno
	errors.As(err, &errno)
	return &Error{Code: ErrIO, Message: message, Path: path, Errno: errno}
}
