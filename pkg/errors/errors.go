// Package errors provides coded errors for instantview.
//
// Every failure a caller can act on carries a [Code]. The CLI prints the
// message, and the HTTP service maps the code to a status:
//   - INVALID_*: the document, an option or a path was rejected
//   - NOT_FOUND, FILE_NOT_FOUND: a named resource does not exist
//   - BACKEND_ERROR, TIMEOUT: the cache or a deadline failed
//   - INTERNAL_ERROR, UNSUPPORTED: a bug, or a missing external tool
//
// The layout engine itself never fails. Errors come from reading documents,
// validating options, rendering and caching.
//
//	err := errors.New(errors.ErrCodeInvalidWidth, "width must be positive, got %v", w)
//	if errors.Is(err, errors.ErrCodeInvalidWidth) {
//	    ...
//	}
//
//	err = errors.Wrap(errors.ErrCodeInvalidDocument, cause, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code is a machine-readable error code.
type Code string

const (
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidDocument Code = "INVALID_DOCUMENT"
	ErrCodeInvalidWidth    Code = "INVALID_WIDTH"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidMetrics  Code = "INVALID_METRICS"
	ErrCodeInvalidTheme    Code = "INVALID_THEME"
	ErrCodeInvalidPath     Code = "INVALID_PATH"

	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	ErrCodeBackend Code = "BACKEND_ERROR"
	ErrCodeTimeout Code = "TIMEOUT"

	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Invalid reports whether c is one of the INVALID_* codes.
func (c Code) Invalid() bool {
	return strings.HasPrefix(string(c), "INVALID_")
}

// Error is an error with a code, a message and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the cause.
func (e *Error) Unwrap() error { return e.Cause }

// New creates an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether the outermost *Error in err's chain has the given code.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// GetCode returns the code of the outermost *Error in err's chain, or "".
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsInvalid reports whether err carries one of the INVALID_* codes.
func IsInvalid(err error) bool {
	return GetCode(err).Invalid()
}

// UserMessage returns err's message without codes. The messages of wrapped
// causes are appended, so "block 3: missing type" survives the wrapping.
func UserMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	if e.Cause != nil {
		return e.Message + ": " + UserMessage(e.Cause)
	}
	return e.Message
}
