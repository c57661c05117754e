// Package apperr defines the error kinds shared by all bounded contexts.
//
// Domain packages declare their sentinel errors with New so that transport
// adapters can branch on the kind (errors.Is(err, apperr.Conflict)) while the
// sentinel itself still carries the client-facing message.
package apperr

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Kind classifies an error for the HTTP boundary.
type Kind struct{ name string }

func (k *Kind) Error() string { return k.name }

// Error kinds. Compare with errors.Is.
var (
	Validation      = &Kind{"validation"}
	NotFound        = &Kind{"not found"}
	Conflict        = &Kind{"conflict"}
	Forbidden       = &Kind{"forbidden"}
	Unauthenticated = &Kind{"unauthenticated"}
	Upstream        = &Kind{"upstream"}
)

// Error is a domain error with a kind and a message safe to show to clients.
type Error struct {
	kind    *Kind
	message string
}

// New returns a sentinel of the given kind.
func New(kind *Kind, message string) *Error {
	return &Error{kind: kind, message: message}
}

func (e *Error) Error() string { return e.message }

// Is reports true for the error's own kind so that errors.Is(err, apperr.NotFound)
// matches any not-found sentinel, however deeply wrapped.
func (e *Error) Is(target error) bool {
	k, ok := target.(*Kind)
	return ok && k == e.kind
}

// Kind returns the kind of the error.
func (e *Error) Kind() *Kind { return e.kind }

// KindOf returns the kind of the first *Error in err's chain, or nil.
func KindOf(err error) *Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.kind
	}
	return nil
}

// Message returns the client message of the first *Error in err's chain.
// ok is false when err carries no domain error.
func Message(err error) (msg string, ok bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.message, true
	}
	return "", false
}

// Fields carries per-field validation messages next to a Validation sentinel.
type Fields map[string]string

func (f Fields) Error() string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + f[k]
	}
	return strings.Join(parts, "; ")
}

// WithFields wraps sentinel with field details. errors.Is still matches the
// sentinel and FieldsOf recovers the map.
func WithFields(sentinel error, fields Fields) error {
	return fmt.Errorf("%w: %w", sentinel, fields)
}

// FieldsOf returns the field details attached with WithFields, if any.
func FieldsOf(err error) Fields {
	var f Fields
	if errors.As(err, &f) {
		return f
	}
	return nil
}
