// Package apperr defines the error taxonomy shared by every usecase.
//
// Each error carries a Kind (what went wrong, used for mapping to transport
// codes) and a human-readable Message. Lower-level failures are kept as the
// wrapped cause so errors.Is / errors.As keep working across layers.
package apperr

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindValidation        Kind = "validation"
	KindNotFound          Kind = "not_found"
	KindConflict          Kind = "conflict"
	KindInvalidTransition Kind = "invalid_transition"
	KindTransaction       Kind = "transaction"
	KindRender            Kind = "render"
	KindInternal          Kind = "internal"
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// New returns a leaf error, typically used for package-level sentinels.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Newf is New with formatting.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches kind and message to cause. A nil cause yields nil.
func Wrap(kind Kind, msg string, cause error) error {
	if cause == nil {
		return nil
	}
	return &Error{Kind: kind, Message: msg, Err: cause}
}

// KindOf reports the Kind of the outermost *Error in the chain, or
// KindInternal for foreign errors.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// Message returns the human-readable part of err without internal causes.
func Message(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Message
	}
	if err == nil {
		return ""
	}
	return "internal error"
}

// IsKind is shorthand for KindOf(err) == kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Ensure returns err unchanged when it already carries a Kind, and wraps it
// with kind and msg otherwise. A nil err yields nil.
func Ensure(kind Kind, msg string, err error) error {
	var ae *Error
	if err == nil || errors.As(err, &ae) {
		return err
	}
	return &Error{Kind: kind, Message: msg, Err: err}
}
