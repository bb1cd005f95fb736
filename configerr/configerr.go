// Package configerr holds the error class shared by every component that
// validates cipher parameters, so a bad width is the same error whether the
// engine or the constant deriver rejects it.
package configerr

import "github.com/pkg/errors"

var ErrUnsupportedWidth = errors.New("unsupported word size")

// Error is returned when a component cannot be built from its parameters.
// It is not retryable.
type Error struct {
	cause error
}

// New wraps err with a formatted message as an *Error.
func New(err error, format string, args ...interface{}) *Error {
	return &Error{cause: errors.Wrapf(err, format, args...)}
}

func (e *Error) Error() string {
	return "rc5: configuration error: " + e.cause.Error()
}

func (e *Error) Cause() error {
	return e.cause
}

func (e *Error) Unwrap() error {
	return e.cause
}
