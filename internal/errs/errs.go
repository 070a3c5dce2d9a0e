package errs

import (
	"errors"
)

// Code is a harness error code.
type Code string

const (
	// ElementNotFound means no selector candidate in a chain resolved to a
	// visible element.
	ElementNotFound Code = "element_not_found"
	// InteractionBlocked means the element was found but both the natural
	// interaction and the force fallback failed.
	InteractionBlocked Code = "interaction_blocked"
	// Timeout means a wait exceeded its bound.
	Timeout Code = "timeout"
	// Navigation means an expected redirect or page load did not happen.
	Navigation Code = "navigation"

	InvalidArgument Code = "invalid_argument"
	Internal        Code = "internal"
)

// Error is a coded harness error.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Code)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a coded error with message.
func New(code Code, message string) error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a coded error with message and cause.
func Wrap(code Code, message string, cause error) error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     cause,
	}
}

// CodeOf returns the error code, defaulting to internal.
func CodeOf(err error) Code {
	if err == nil {
		return Internal
	}
	var coded *Error
	if errors.As(err, &coded) {
		if coded.Code == "" {
			return Internal
		}
		return coded.Code
	}
	return Internal
}

// MessageOf returns a presentable error message. Untyped errors collapse to
// "internal error" so raw driver output does not leak into run reports.
func MessageOf(err error) string {
	if err == nil {
		return string(Internal)
	}
	var coded *Error
	if errors.As(err, &coded) && coded.Message != "" {
		return coded.Message
	}
	return "internal error"
}

// Fatal reports whether an error code should abort the running test case.
// Recoverable absence (element_not_found) is left to the caller: optional
// steps branch on booleans instead of errors, so any coded error that does
// surface here is fatal unless it is a plain not-found.
func Fatal(code Code) bool {
	return code != ElementNotFound
}
