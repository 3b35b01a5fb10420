package ast

import "github.com/kleenexp-go/kleenexp/internal/option"

// aliasGroup is one row of the builtin macro table (spec §4.3, supplement
// D): a long name, its short alias, and whether a #not_X/#nX negated pair
// should be derived from it. Building the table from these small lists,
// the way the original implementation derives its aliases programmatically
// (`'digit d'`, `'not_digit nd'`, ...) rather than hand-authoring every
// entry, is the supplement C.2 grounding.
type aliasGroup struct {
	Long       string
	Short      string
	Invertible bool
}

var builtinAliasGroups = []aliasGroup{
	{"any", "a", false},
	{"linefeed", "lf", true},
	{"carriage_return", "cr", true},
	{"windows_newline", "crlf", false},
	{"tab", "t", true},
	{"digit", "d", true},
	{"letter", "l", true},
	{"lowercase", "lc", true},
	{"uppercase", "uc", true},
	{"space", "s", true},
	{"token_character", "tc", true},
	{"start_string", "ss", false},
	{"end_string", "es", false},
	{"start_line", "sl", false},
	{"end_line", "el", false},
	{"word_boundary", "wb", true},
	{"quote", "q", false},
	{"double_quote", "dq", false},
	{"left_brace", "lb", false},
	{"right_brace", "rb", false},
}

// derivedMacro is a builtin macro defined as KE source rather than a direct
// AST node, lazily parsed and lowered through the same pipeline as a user
// Def the first time it's referenced (supplement C.1).
type derivedMacro struct {
	Long   string
	Short  string // "" if no short alias
	Source string
}

var derivedMacros = []derivedMacro{
	{"integer", "int", `[[0-1 '-'] [1+ #digit]]`},
	{"unsigned_integer", "uint", `[1+ #digit]`},
	{"real", "", `[#integer [0-1 '.' #unsigned_integer]]`},
	{"float", "", `[[0-1 '-'] [[#unsigned_integer '.' [0-1 #unsigned_integer] | '.' #unsigned_integer] [0-1 #exponent] | #integer #exponent] #exponent=[['e' | 'E'] [0-1 ['+' | '-']] #unsigned_integer]]`},
	// hex_digit corrected per spec §9: the tutorial's own definition is
	// flagged there as erroneous.
	{"hex_digit", "hd", `[#digit | #a..f | #A..F]`},
}

// builtinNames maps every accepted spelling (long or short, with or
// without the #not_/#n prefix) to its canonical long name.
var builtinNames = buildBuiltinNameTable()

func buildBuiltinNameTable() map[string]string {
	names := map[string]string{}
	for _, g := range builtinAliasGroups {
		names[g.Long] = g.Long
		names[g.Short] = g.Long
		if g.Invertible {
			notLong := "not_" + g.Long
			notShort := "n" + g.Short
			names[notLong] = notLong
			names[notShort] = notLong
		}
	}
	for _, d := range derivedMacros {
		names[d.Long] = d.Long
		if d.Short != "" {
			names[d.Short] = d.Long
		}
	}
	return names
}

// canonicalBuiltinName resolves a bare macro name (no leading '#') to its
// canonical long spelling, or reports it isn't a recognized builtin at all.
func canonicalBuiltinName(name string) (string, bool) {
	long, ok := builtinNames[name]
	return long, ok
}

// derivedSource returns the KE source for a derived builtin's canonical
// long name, if it is one.
func derivedSource(long string) (string, bool) {
	for _, d := range derivedMacros {
		if d.Long == long {
			return d.Source, true
		}
	}
	return "", false
}

// directBuiltin builds the AST for a non-derived canonical long name,
// taking Options into account for #letter/#lowercase/#uppercase (unicode)
// and #start_string/#end_string/#start_line/#end_line (handled by the
// emitter via AnchorKind, not here). Returns (nil, false) if long isn't a
// direct (non-derived, non-not_) builtin name.
//
// #digit, #space, #token_character and the ASCII forms of #letter/
// #lowercase/#uppercase are represented as CharClass rather than as a Raw
// `\d`/`\s`/`\w` fragment. This is what lets `[#digit | #a..f]` fold (spec
// example 6) into a single CharClass and emit the exact enumerated text
// `[0-9a-f]` rather than the inexpressible `[\da-f]`-with-distinct-shorthand
// mix. The emitter recovers the shorthand spelling for the common case by
// recognizing when a CharClass's items exactly match one of these canonical
// sets and printing `\d`/`\s`/`\w` instead of the bracket form — so standalone
// `[#digit]` still emits `\d` (spec example 2) even though it is the same
// AST shape a folded alternation would produce.
func directBuiltin(long string, opts option.Options) (Node, bool) {
	switch long {
	case "any":
		// The original always runs as if DOTALL were set, so #any means
		// "truly any byte," not "any byte but newline" (spec §8's
		// completeness table, supplemented in SPEC_FULL.md §C.5). PCRE
		// expresses that locally with a scoped inline-flag group rather
		// than a pattern-wide flag, so it composes with the rest of the
		// emitted text without disturbing anchors or other fragments;
		// ECMAScript has no inline-flag group syntax at all, so it uses
		// the idiomatic `[\s\S]` any-character class instead.
		if opts.Flavor == option.ECMAScript {
			return &Raw{Fragment: `[\s\S]`}, true
		}
		return &Raw{Fragment: "(?s:.)"}, true
	case "linefeed":
		return &Raw{Fragment: `\n`, Inverse: `[^\n]`, Foldable: true}, true
	case "carriage_return":
		return &Raw{Fragment: `\r`, Inverse: `[^\r]`, Foldable: true}, true
	case "windows_newline":
		return &Literal{Text: "\r\n"}, true
	case "tab":
		return &Raw{Fragment: `\t`, Inverse: `[^\t]`, Foldable: true}, true
	case "digit":
		return &CharClass{Items: []CharClassItem{{Range: true, Lo: '0', Hi: '9'}}}, true
	case "letter":
		if opts.Unicode {
			return &Raw{Fragment: `\p{L}`, Inverse: `\P{L}`}, true
		}
		return &CharClass{Items: []CharClassItem{
			{Range: true, Lo: 'a', Hi: 'z'},
			{Range: true, Lo: 'A', Hi: 'Z'},
		}}, true
	case "lowercase":
		if opts.Unicode {
			return &Raw{Fragment: `\p{Ll}`, Inverse: `\P{Ll}`}, true
		}
		return &CharClass{Items: []CharClassItem{{Range: true, Lo: 'a', Hi: 'z'}}}, true
	case "uppercase":
		if opts.Unicode {
			return &Raw{Fragment: `\p{Lu}`, Inverse: `\P{Lu}`}, true
		}
		return &CharClass{Items: []CharClassItem{{Range: true, Lo: 'A', Hi: 'Z'}}}, true
	case "space":
		return &CharClass{Items: []CharClassItem{
			{Char: ' '}, {Char: '\t'}, {Char: '\n'}, {Char: '\r'}, {Char: '\f'}, {Char: '\v'},
		}}, true
	case "token_character":
		return &CharClass{Items: []CharClassItem{
			{Range: true, Lo: '0', Hi: '9'},
			{Range: true, Lo: 'a', Hi: 'z'},
			{Range: true, Lo: 'A', Hi: 'Z'},
			{Char: '_'},
		}}, true
	case "word_boundary":
		return &Raw{Fragment: `\b`, Inverse: `\B`}, true
	case "start_string":
		return &Anchor{Kind: StartString}, true
	case "end_string":
		return &Anchor{Kind: EndString}, true
	case "start_line":
		return &Anchor{Kind: StartLine}, true
	case "end_line":
		return &Anchor{Kind: EndLine}, true
	case "quote":
		return &Literal{Text: "'"}, true
	case "double_quote":
		return &Literal{Text: `"`}, true
	case "left_brace":
		return &Literal{Text: "["}, true
	case "right_brace":
		return &Literal{Text: "]"}, true
	default:
		return nil, false
	}
}
