// Package errors provides error handling for peergen.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - PII-safe error formatting
//
// Usage:
//
//	// Create new error
//	err := errors.New("something went wrong")
//
//	// Wrap with context
//	if err := doSomething(); err != nil {
//	    return errors.Wrap(err, "failed to do something")
//	}
//
//	// Add hints for users
//	return errors.WithHint(err, "check the mixin name against the structures list")
//
//	// Check errors
//	if errors.Is(err, errors.ErrUnresolvedReference) {
//	    // handle unresolved name
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is             = crdb.Is
	IsAny          = crdb.IsAny
	As             = crdb.As
	Unwrap         = crdb.Unwrap
	UnwrapOnce     = crdb.UnwrapOnce
	UnwrapAll      = crdb.UnwrapAll
	GetAllHints    = crdb.GetAllHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
)

// Assertions
var (
	AssertionFailedf = crdb.AssertionFailedf
)

// Sentinel errors for the compilation pipeline.
// Use these with errors.Is() for type-safe error checking.
// Wrap these with errors.Wrap() to add context while preserving the type.
var (
	// ErrUnresolvedReference indicates a mixin or extends reference that
	// names no defined structure in the metamodel
	ErrUnresolvedReference = New("unresolved type reference")

	// ErrUnsupportedKind indicates a type node whose kind tag is not part
	// of the closed union the compiler dispatches on
	ErrUnsupportedKind = New("unsupported type kind")

	// ErrUnknownMethod indicates a dispatch table miss or a conflicting
	// registration for an already-bound wire method
	ErrUnknownMethod = New("unknown wire method")

	// ErrUnsupportedDefault indicates default-value synthesis was asked
	// for a type shape it cannot produce a value for
	ErrUnsupportedDefault = New("unsupported type for default value")
)

// IsUnresolvedReference checks if an error is or wraps ErrUnresolvedReference
func IsUnresolvedReference(err error) bool {
	return err != nil && Is(err, ErrUnresolvedReference)
}

// IsUnsupportedKind checks if an error is or wraps ErrUnsupportedKind
func IsUnsupportedKind(err error) bool {
	return err != nil && Is(err, ErrUnsupportedKind)
}

// IsUnknownMethod checks if an error is or wraps ErrUnknownMethod
func IsUnknownMethod(err error) bool {
	return err != nil && Is(err, ErrUnknownMethod)
}

// IsUnsupportedDefault checks if an error is or wraps ErrUnsupportedDefault
func IsUnsupportedDefault(err error) bool {
	return err != nil && Is(err, ErrUnsupportedDefault)
}

// NewUnresolvedReference creates an unresolved-reference error naming the
// offending reference and where it was found
func NewUnresolvedReference(format string, args ...interface{}) error {
	return Wrap(ErrUnresolvedReference, Newf(format, args...).Error())
}

// NewUnsupportedKind creates an unsupported-kind error carrying the kind tag
func NewUnsupportedKind(kind string) error {
	return Wrapf(ErrUnsupportedKind, "kind %q", kind)
}
