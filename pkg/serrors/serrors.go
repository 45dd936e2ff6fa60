// Package serrors attaches a semantic kind to errors so transports can map
// failures to status codes without inspecting messages.
package serrors

import (
	"errors"
	"fmt"
)

// Kind names a category of failure. Only values returned by NewKind satisfy it.
type Kind interface {
	error
	isKind()
}

type kind struct{ name string }

func (k kind) Error() string { return k.name }
func (kind) isKind()         {}

// NewKind returns a comparable sentinel for a new category.
func NewKind(name string) Kind { return kind{name: name} }

// Kinds understood by the HTTP layer.
var (
	ErrNotFound     = NewKind("NOT_FOUND")
	ErrUnauthorized = NewKind("UNAUTHORIZED")
	// ErrForbidden means the caller is known but may not touch the resource.
	ErrForbidden  = NewKind("FORBIDDEN")
	ErrBadRequest = NewKind("BAD_REQUEST")
	// ErrConflict covers rejected state transitions and duplicates.
	ErrConflict    = NewKind("CONFLICT")
	ErrInternal    = NewKind("INTERNAL")
	ErrTimeout     = NewKind("TIMEOUT")
	ErrUnavailable = NewKind("UNAVAILABLE")
	ErrRateLimited = NewKind("RATE_LIMITED")
	// ErrPaymentRequired means the account balance does not cover the cost.
	ErrPaymentRequired = NewKind("PAYMENT_REQUIRED")
)

// Error couples a Kind with an optional message and an optional cause.
// errors.Is and errors.As match against both the kind and the cause.
//
// The text is "msg: cause" when both are set, otherwise whichever is set,
// falling back to the kind name.
type Error struct {
	kind  Kind
	cause error
	msg   string
}

// With returns an error of kind k with a formatted message and no cause.
func With(k Kind, format string, args ...any) *Error {
	return &Error{kind: k, msg: fmt.Sprintf(format, args...)}
}

// Wrap returns an error of kind k around cause with a formatted message.
func Wrap(k Kind, cause error, format string, args ...any) *Error {
	return &Error{kind: k, cause: cause, msg: fmt.Sprintf(format, args...)}
}

// KindOnly returns a bare error of kind k.
func KindOnly(k Kind) *Error { return &Error{kind: k} }

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}

	switch {
	case e.msg != "" && e.cause != nil:
		return fmt.Sprintf("%s: %v", e.msg, e.cause)
	case e.msg != "":
		return e.msg
	case e.cause != nil:
		return e.cause.Error()
	case e.kind != nil:
		return e.kind.Error()
	}

	return "unknown error"
}

func (e *Error) Unwrap() error { return e.cause }

// Is reports whether target is the error's kind or matches its cause.
func (e *Error) Is(target error) bool {
	if e == nil || target == nil {
		return e == nil && target == nil
	}

	return (e.kind != nil && errors.Is(e.kind, target)) ||
		(e.cause != nil && errors.Is(e.cause, target))
}

// As tries the kind first, then the cause.
func (e *Error) As(target any) bool {
	if e == nil || target == nil {
		return false
	}

	return (e.kind != nil && errors.As(e.kind, target)) ||
		(e.cause != nil && errors.As(e.cause, target))
}

func (e *Error) Kind() Kind { return e.kind }

func (e *Error) Message() string { return e.msg }

func (e *Error) Cause() error { return e.cause }

// knownKinds is walked by KindOf for error types that match a kind through
// their own Is method.
var knownKinds = []Kind{ //nolint: gochecknoglobals
	ErrNotFound, ErrUnauthorized, ErrForbidden, ErrBadRequest, ErrConflict,
	ErrInternal, ErrTimeout, ErrUnavailable, ErrRateLimited, ErrPaymentRequired,
}

// KindOf returns the first kind found in err's chain, or ErrInternal.
func KindOf(err error) Kind {
	var k Kind
	if errors.As(err, &k) {
		return k
	}
	for _, known := range knownKinds {
		if errors.Is(err, known) {
			return known
		}
	}

	return ErrInternal
}
