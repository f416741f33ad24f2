package imaging

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so callers can react without parsing messages.
type Kind string

const (
	KindEngineNotInstalled    Kind = "engine_not_installed"
	KindInputNotFound         Kind = "input_not_found"
	KindUnsupportedFormat     Kind = "unsupported_format"
	KindEngineExecutionFailed Kind = "engine_execution_failed"
	KindDirectoryNotFound     Kind = "directory_not_found"
	KindInvalidArgument       Kind = "invalid_argument"
	KindPublishFailed         Kind = "publish_failed"
)

// Error is the typed failure returned by every operation in this package.
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates an error without an underlying cause.
func New(kind Kind, op, message string) *Error {
	return &Error{Kind: kind, Op: op, Message: message}
}

// Wrap attaches kind and context to cause.
func Wrap(kind Kind, op, message string, cause error) *Error {
	return &Error{Kind: kind, Op: op, Message: message, Cause: cause}
}

// IsKind reports whether any error in err's chain has the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	for err != nil {
		if !errors.As(err, &e) {
			return false
		}
		if e.Kind == kind {
			return true
		}
		err = e.Cause
	}
	return false
}

// KindOf returns the kind of the outermost typed error, or "" if there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// withOp wraps an operation failure with "failed to <action>" context while
// preserving the kind of the underlying error.
func withOp(op, action string, err error) error {
	if err == nil {
		return nil
	}
	kind := KindOf(err)
	if kind == "" {
		kind = KindEngineExecutionFailed
	}
	return Wrap(kind, op, "failed to "+action, err)
}

const msgEngineNotInstalled = "ImageMagick is not installed or not in PATH. Please install ImageMagick first."
