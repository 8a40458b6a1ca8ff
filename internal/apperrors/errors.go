// Package apperrors classifies the fatal conditions of a scaffolding run.
//
// Every error that ends a run carries one Kind so the CLI can report it
// with a single line and a nonzero exit status. Lower layers keep wrapping
// with fmt.Errorf and %w; the Kind survives the wrapping and is recovered
// with KindOf.
package apperrors

import (
	"errors"
	"fmt"
)

// Kind is a machine-readable error category.
type Kind string

const (
	// KindUnknown is reported for errors that carry no Kind.
	KindUnknown Kind = "unknown"

	// KindConfiguration covers malformed argument files, invalid inclusion
	// chains and unresolvable extension hooks.
	KindConfiguration Kind = "configuration"

	// KindOptions covers invalid or conflicting flags and option values.
	KindOptions Kind = "options"

	// KindExternalTool covers failures of external commands such as git.
	KindExternalTool Kind = "external_tool"

	// KindFileSystem covers I/O failures while materializing the project.
	KindFileSystem Kind = "filesystem"
)

// Error is a classified error.
type Error struct {
	Kind Kind
	// Op names the operation that failed (e.g. "expand argument file").
	Op  string
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Op != "" && e.Err != nil:
		return e.Op + ": " + e.Err.Error()
	case e.Err != nil:
		return e.Err.Error()
	default:
		return e.Op
	}
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error { return e.Err }

// New returns a classified error built from a format string.
func New(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}

// Wrap classifies err under kind, naming the failed operation.
// A nil err yields nil.
func Wrap(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf extracts the outermost Kind from an error chain.
// Returns KindUnknown if no classified error is present.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// Chain returns the message of every layer in err's wrap chain, outermost
// first. It backs the verbose diagnostic output.
func Chain(err error) []string {
	var out []string
	for err != nil {
		out = append(out, err.Error())
		err = errors.Unwrap(err)
	}
	return out
}
