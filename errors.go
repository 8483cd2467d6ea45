// File: strataconf/strata/errors.go
package strata

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a dotted path does not resolve:
	// a segment is absent or navigates into an incompatible node.
	ErrNotFound = errors.New("strata: path not found")

	// ErrTypeMismatch is returned when a located value has a kind
	// incompatible with the requested type.
	ErrTypeMismatch = errors.New("strata: type mismatch")

	// ErrCannotConvert is returned when a coercion was attempted but
	// failed, such as a float with a fractional part requested as an
	// int or an unparsable string.
	ErrCannotConvert = errors.New("strata: cannot convert value")

	// ErrRootNotTable is returned at build time when a source's parsed
	// root, or the final merged root, is not a table.
	ErrRootNotTable = errors.New("strata: root is not a table")

	// ErrUnknownSource is returned by Save when no registered source
	// matches the requested identifier.
	ErrUnknownSource = errors.New("strata: unknown source")

	// ErrUnknownFormat is returned when a format tag has no registered
	// codec, or a file extension is not recognized.
	ErrUnknownFormat = errors.New("strata: unknown format")

	// ErrSaveUnsupported is returned by Save when the target source's
	// codec has no serialize capability.
	ErrSaveUnsupported = errors.New("strata: format does not support serialization")
)

// ParseError reports a source that failed to load or parse during
// Build or Reload. Source is the identifier the source was registered
// with; Err is the underlying cause.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("strata: parse source %q: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
