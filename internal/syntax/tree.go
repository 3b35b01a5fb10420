// Package syntax implements the KleenExp lexer and recursive-descent parser
// (spec §4.1), producing the concrete parse tree defined in spec §3. The
// parser mirrors the teacher's own recursive-descent regex parsing style
// (see the grammar walk in the grep-go example this corpus also carries)
// generalized to KE's bracketed grammar.
package syntax

// Node is any element of the top-level KE sequence: an OuterLiteral or a
// Braces.
type Node interface {
	node()
	Span() Span
}

// Span is a half-open byte-offset range into the source.
type Span struct {
	Start int
	End   int
}

// OuterLiteral is a maximal run of source characters outside any Braces.
type OuterLiteral struct {
	Text string
	Sp   Span
}

func (*OuterLiteral) node()        {}
func (o *OuterLiteral) Span() Span { return o.Sp }

// InnerLiteral is the content of a single- or double-quoted string.
type InnerLiteral struct {
	Text string
	Sp   Span
}

func (*InnerLiteral) node()        {}
func (i *InnerLiteral) Span() Span { return i.Sp }
func (*InnerLiteral) match()       {}

// Braces is a bracketed `[...]` form. Exactly one of Empty, Seq, Either, or
// Ops is populated, matching the first-token classification in spec §4.1.
type Braces struct {
	Empty  bool
	Seq    *MatchesSeq
	Either *Either
	Ops    *OpsMatches
	Sp     Span
}

func (*Braces) node()        {}
func (b *Braces) Span() Span { return b.Sp }
func (*Braces) match()       {}

// Op is a single bareword operator, optionally carrying an argument after
// `:` (e.g. `capture:year`) or encoding a numeric quantifier form
// (`0-1`, `3`, `1+`).
type Op struct {
	Name   string
	Arg    string
	HasArg bool
	Sp     Span
}

// OpsMatches is one or more Ops followed by the MatchesSeq they apply to,
// outside-in (spec §4.2). An Op with nothing to apply to is a parse error
// (Matches is never nil here).
type OpsMatches struct {
	Ops     []*Op
	Matches *MatchesSeq
}

// Either is two or more pipe-separated MatchesSeq alternatives.
type Either struct {
	Branches []*MatchesSeq
}

// MatchesSeq is a whitespace-separated sequence of Matches.
type MatchesSeq struct {
	Matches []Match
	Sp      Span
}

// Match is any element legal inside a MatchesSeq: InnerLiteral, MacroRef,
// RangeMacro, Def, or a nested Braces.
type Match interface {
	match()
	Span() Span
}

// MacroRef is a `#name` reference.
type MacroRef struct {
	Name string
	Sp   Span
}

func (*MacroRef) match()       {}
func (m *MacroRef) Span() Span { return m.Sp }

// RangeMacro is `#a..b`: two same-class characters with a < b.
type RangeMacro struct {
	A, B rune
	Sp   Span
}

func (*RangeMacro) match()       {}
func (r *RangeMacro) Span() Span { return r.Sp }

// Def is a user macro definition `#name=[...]`, legal wherever a Match may
// appear.
type Def struct {
	Name string
	Body *Braces
	Sp   Span
}

func (*Def) match()       {}
func (d *Def) Span() Span { return d.Sp }
