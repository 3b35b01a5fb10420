// Package diag implements KleenExp's compile-time diagnostics: the typed
// error taxonomy from spec §7, source spans, and the structured logger and
// colorized CLI renderer that sit on top of it.
package diag

import "fmt"

// Kind classifies a compile-time error (spec §7).
type Kind int

const (
	// SyntaxErrorKind covers malformed tokens, unmatched brackets/quotes,
	// empty input, and Ops/Either mixed at the same level.
	SyntaxErrorKind Kind = iota
	// UnknownMacroKind is a macro reference with no visible definition.
	UnknownMacroKind
	// CyclicMacroKind is a transitive self-reference among user Defs.
	CyclicMacroKind
	// DuplicateDefinitionKind is two Defs of the same name in one scope.
	DuplicateDefinitionKind
	// InvalidRangeKind is a RangeMacro with mismatched classes or
	// non-strictly-ordered endpoints.
	InvalidRangeKind
	// InvalidNegationKind is `not` applied to something that isn't a
	// single character or character class after lowering.
	InvalidNegationKind
	// UnsupportedOperatorKind is an operator that parses and lowers but
	// that the emitter cannot render in the requested flavor.
	UnsupportedOperatorKind
	// ExpansionDepthExceededKind is macro recursion past MaxExpansionDepth.
	ExpansionDepthExceededKind
)

// String returns the diagnostic's name as used in error messages and test
// expectations (e.g. "UnknownMacro").
func (k Kind) String() string {
	switch k {
	case SyntaxErrorKind:
		return "SyntaxError"
	case UnknownMacroKind:
		return "UnknownMacro"
	case CyclicMacroKind:
		return "CyclicMacro"
	case DuplicateDefinitionKind:
		return "DuplicateDefinition"
	case InvalidRangeKind:
		return "InvalidRange"
	case InvalidNegationKind:
		return "InvalidNegation"
	case UnsupportedOperatorKind:
		return "UnsupportedOperator"
	case ExpansionDepthExceededKind:
		return "ExpansionDepthExceeded"
	default:
		return "Error"
	}
}

// Span is a half-open byte offset range [Start, End) into the KE source
// string. End may equal Start for a zero-width point diagnostic.
type Span struct {
	Start int
	End   int
}

// Error is the single concrete error type for every compile-time failure.
// Callers distinguish cases with Kind rather than type-switching, mirroring
// encoding/json's SyntaxError shape and the original implementation's single
// CompileError class.
type Error struct {
	Kind    Kind
	Span    Span
	Message string
	// Source, if set, is the full KE source the Span indexes into. It is
	// only used for rendering (see Render); equality and Error() ignore it.
	Source string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at %d: %s", e.Kind, e.Span.Start, e.Message)
}

// New builds an *Error at a zero-width span.
func New(kind Kind, at int, format string, args ...any) *Error {
	return &Error{Kind: kind, Span: Span{Start: at, End: at}, Message: fmt.Sprintf(format, args...)}
}

// NewSpan builds an *Error covering [start, end).
func NewSpan(kind Kind, start, end int, format string, args ...any) *Error {
	return &Error{Kind: kind, Span: Span{Start: start, End: end}, Message: fmt.Sprintf(format, args...)}
}

// WithSource attaches the source string used for caret rendering and
// returns the receiver for chaining.
func (e *Error) WithSource(source string) *Error {
	e.Source = source
	return e
}
