// Package pdferr defines the domain-level error kinds surfaced at the
// session boundary: tape bounds/IO failures, parse failures, xref
// failures, and resolver failures. Callers distinguish kinds with
// errors.Is/errors.As rather than string matching.
package pdferr

import "fmt"

// Sentinel kinds usable with errors.Is. UnresolvedObject and TapeIOError
// also match their sentinel (ErrUnresolved, ErrTapeIO) through errors.Is;
// ParseError and XRefMalformed have no sentinel and are matched with
// errors.As.
var (
	ErrTapeBounds      = fmt.Errorf("tape: seek out of bounds")
	ErrTapeIO          = fmt.Errorf("tape: i/o error")
	ErrXRefNotFound    = fmt.Errorf("xref: startxref not found")
	ErrUnresolved      = fmt.Errorf("resolver: unresolved object")
	ErrResolverCycle   = fmt.Errorf("resolver: reference chain too long")
	ErrRootNotFound    = fmt.Errorf("nursery: root not found")
	ErrPagesNotFound   = fmt.Errorf("nursery: pages not found")
	ErrInvalidDocument = fmt.Errorf("nursery: invalid document")
)

// ParseError reports a failure at a named point in the lexer/parser
// ("header", "number", "name", "dict", "stream", "indirect-object", ...)
// together with the underlying reason.
type ParseError struct {
	Where  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %s: %s", e.Where, e.Reason)
}

// NewParseError constructs a *ParseError.
func NewParseError(where, reason string) *ParseError {
	return &ParseError{Where: where, Reason: reason}
}

// XRefMalformed reports a structurally broken xref table or trailer.
type XRefMalformed struct {
	Reason string
}

func (e *XRefMalformed) Error() string {
	return fmt.Sprintf("malformed xref: %s", e.Reason)
}

// NewXRefMalformed constructs an *XRefMalformed.
func NewXRefMalformed(reason string) *XRefMalformed {
	return &XRefMalformed{Reason: reason}
}

// UnresolvedObject reports a reference that cannot be resolved: either it
// is absent from the xref entries map, or its entry is marked free.
type UnresolvedObject struct {
	Index      uint32
	Generation uint32
}

func (e *UnresolvedObject) Error() string {
	return fmt.Sprintf("unresolved object %d %d R", e.Index, e.Generation)
}

// Is reports whether target is ErrUnresolved, so callers can use
// errors.Is(err, pdferr.ErrUnresolved) without caring about the index.
func (e *UnresolvedObject) Is(target error) bool {
	return target == ErrUnresolved
}

// NewUnresolvedObject constructs an *UnresolvedObject.
func NewUnresolvedObject(index, generation uint32) *UnresolvedObject {
	return &UnresolvedObject{Index: index, Generation: generation}
}

// TapeIOError wraps an underlying I/O failure from the backing source.
type TapeIOError struct {
	Err error
}

func (e *TapeIOError) Error() string {
	return fmt.Sprintf("tape: i/o error: %v", e.Err)
}

func (e *TapeIOError) Unwrap() error {
	return e.Err
}

func (e *TapeIOError) Is(target error) bool {
	return target == ErrTapeIO
}

// NewTapeIOError constructs a *TapeIOError.
func NewTapeIOError(err error) *TapeIOError {
	return &TapeIOError{Err: err}
}
