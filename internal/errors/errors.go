// Package errors provides error handling for genny.
//
// It re-exports github.com/cockroachdb/errors so callers get stack traces,
// wrapping and user-facing hints from a single import, and defines the
// sentinel errors that make up genny's error taxonomy.
//
// Usage:
//
//	if err := extractor.ParseCode(path); err != nil {
//	    if errors.Is(err, errors.ErrNotFound) {
//	        // missing source file
//	    }
//	    return errors.Wrap(err, "failed to generate docs")
//	}
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
	Mark         = crdb.Mark
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
	UnwrapAll      = crdb.UnwrapAll
	GetAllHints    = crdb.GetAllHints
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
)

// Error taxonomy shared by the extractor, the template registry and the renderer.
// Wrap these with Wrapf to add context while keeping errors.Is working.
var (
	// ErrNotFound indicates a missing source file, template or template entry.
	ErrNotFound = New("not found")

	// ErrParseFailure indicates malformed source that could not be parsed.
	ErrParseFailure = New("parse failure")

	// ErrUnsupportedFormat indicates an export format outside json, markdown, html, yaml.
	ErrUnsupportedFormat = New("unsupported format")

	// ErrIOFailure indicates a read or write error during export or persistence.
	ErrIOFailure = New("i/o failure")

	// ErrSerialization indicates content that could not be serialized.
	ErrSerialization = New("serialization failure")
)

// IsNotFound reports whether err is or wraps ErrNotFound.
func IsNotFound(err error) bool {
	return err != nil && Is(err, ErrNotFound)
}
