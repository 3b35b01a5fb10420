package syntax

import (
	"strings"

	"github.com/kleenexp-go/kleenexp/internal/diag"
)

// opTokenChars is the punctuation half of the Op bareword charset (spec
// §6); letters and digits are accepted in addition to these.
const opTokenChars = "!$%&()*+,./;<>?@\\^_`{}~-"

// Parse runs the recursive-descent parser over source and returns the
// top-level sequence of Nodes, or the first *diag.Error encountered.
//
// Whitespace between Matches and between a Braces' brackets and its body is
// always optional: quotes, `#`, and `[` self-delimit every Match kind, so
// the grammar's boundary-before-`[`/after-`]` clause for `ws` never needs
// special-casing here. Whitespace between chained Ops is
// still load-bearing: Op barewords are not self-delimiting, so two Ops
// written with no space between them lex as a single token and are
// rejected as an unknown operator by the lowering stage, which is the
// grammar's intended way of forcing the separator.
func Parse(source string) ([]Node, error) {
	if len(source) == 0 {
		return nil, diag.New(diag.SyntaxErrorKind, 0, "empty KleenExp source").WithSource(source)
	}
	p := &parser{src: []rune(source), source: source}
	nodes, err := p.parseTop()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.src) {
		return nil, p.errorf(diag.SyntaxErrorKind, p.pos, "unexpected %q", p.src[p.pos])
	}
	return nodes, nil
}

type parser struct {
	src    []rune
	source string
	pos    int
}

func (p *parser) errorf(kind diag.Kind, at int, format string, args ...any) *diag.Error {
	return diag.New(kind, at, format, args...).WithSource(p.source)
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) peek() rune {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) peekAt(off int) rune {
	if p.pos+off >= len(p.src) {
		return 0
	}
	return p.src[p.pos+off]
}

func (p *parser) skipWS() {
	for !p.eof() && isSpace(p.peek()) {
		p.pos++
	}
}

func isSpace(r rune) bool { return r == ' ' || r == '\t' || r == '\r' || r == '\n' }

func isTokenChar(r rune) bool {
	if r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
		return true
	}
	return strings.ContainsRune(opTokenChars, r)
}

func isNameChar(r rune) bool {
	return r == '_' || r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z' || r >= '0' && r <= '9'
}

// parseTop parses regex = (outer_literal / braces)*.
func (p *parser) parseTop() ([]Node, error) {
	var nodes []Node
	for !p.eof() {
		if p.peek() == ']' {
			return nil, p.errorf(diag.SyntaxErrorKind, p.pos, "unmatched ']'")
		}
		if p.peek() == '[' {
			b, err := p.parseBraces()
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, b)
			continue
		}
		nodes = append(nodes, p.parseOuterLiteral())
	}
	return nodes, nil
}

func (p *parser) parseOuterLiteral() *OuterLiteral {
	start := p.pos
	var b strings.Builder
	for !p.eof() && p.peek() != '[' && p.peek() != ']' {
		b.WriteRune(p.peek())
		p.pos++
	}
	return &OuterLiteral{Text: b.String(), Sp: Span{start, p.pos}}
}

// parseBraces parses braces = '[' ws? (ops_matches / either / matches)? ws? ']'.
func (p *parser) parseBraces() (*Braces, error) {
	start := p.pos
	p.pos++ // consume '['
	p.skipWS()

	if p.peek() == ']' {
		p.pos++
		return &Braces{Empty: true, Sp: Span{start, p.pos}}, nil
	}

	var body Braces
	if isTokenChar(p.peek()) {
		ops, err := p.parseOpsMatches()
		if err != nil {
			return nil, err
		}
		body.Ops = ops
		p.skipWS()
		if p.peek() == '|' {
			return nil, p.errorf(diag.SyntaxErrorKind, p.pos, "a Braces cannot mix operators and '|' alternation at the same level")
		}
	} else {
		first, err := p.parseMatchesSeq()
		if err != nil {
			return nil, err
		}
		p.skipWS()
		if p.peek() == '|' {
			branches := []*MatchesSeq{first}
			for p.peek() == '|' {
				p.pos++
				p.skipWS()
				next, err := p.parseMatchesSeq()
				if err != nil {
					return nil, err
				}
				branches = append(branches, next)
				p.skipWS()
			}
			body.Either = &Either{Branches: branches}
		} else {
			body.Seq = first
		}
	}

	p.skipWS()
	if p.eof() || p.peek() != ']' {
		return nil, p.errorf(diag.SyntaxErrorKind, start, "unmatched '['")
	}
	p.pos++
	body.Sp = Span{start, p.pos}
	return &body, nil
}

// parseOpsMatches parses ops_matches = op (ws op)* (ws matches)?.
func (p *parser) parseOpsMatches() (*OpsMatches, error) {
	var ops []*Op
	for {
		op, err := p.parseOp()
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
		p.skipWS()
		if isTokenChar(p.peek()) {
			continue
		}
		break
	}

	if p.isMatchStart() {
		matches, err := p.parseMatchesSeq()
		if err != nil {
			return nil, err
		}
		return &OpsMatches{Ops: ops, Matches: matches}, nil
	}

	last := ops[len(ops)-1]
	return nil, p.errorf(diag.SyntaxErrorKind, last.Sp.Start, "operator %q requires a following match", last.Name)
}

// parseOp parses op = token (':' token)?, additionally recognizing the
// numeric repeat forms N, N+, N-M as plain tokens (lowering interprets the
// shape of Name).
func (p *parser) parseOp() (*Op, error) {
	start := p.pos
	name := p.readToken()
	if name == "" {
		return nil, p.errorf(diag.SyntaxErrorKind, p.pos, "expected operator")
	}
	op := &Op{Name: name, Sp: Span{start, p.pos}}
	if p.peek() == ':' {
		p.pos++
		argStart := p.pos
		arg := p.readToken()
		if arg == "" {
			return nil, p.errorf(diag.SyntaxErrorKind, argStart, "expected argument after ':'")
		}
		op.Arg = arg
		op.HasArg = true
		op.Sp.End = p.pos
	}
	return op, nil
}

func (p *parser) readToken() string {
	start := p.pos
	for !p.eof() && isTokenChar(p.peek()) {
		p.pos++
	}
	return string(p.src[start:p.pos])
}

func (p *parser) isMatchStart() bool {
	r := p.peek()
	return r == '\'' || r == '"' || r == '#' || r == '['
}

// parseMatchesSeq parses matches = match (ws match)*.
func (p *parser) parseMatchesSeq() (*MatchesSeq, error) {
	start := p.pos
	var matches []Match
	for {
		p.skipWS()
		if !p.isMatchStart() {
			break
		}
		m, err := p.parseMatch()
		if err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	if len(matches) == 0 {
		return nil, p.errorf(diag.SyntaxErrorKind, start, "expected at least one match")
	}
	return &MatchesSeq{Matches: matches, Sp: Span{start, p.pos}}, nil
}

// parseMatch parses match = inner_literal / def / macro / braces.
func (p *parser) parseMatch() (Match, error) {
	switch p.peek() {
	case '\'', '"':
		return p.parseInnerLiteral()
	case '#':
		return p.parseMacroOrDef()
	case '[':
		return p.parseBraces()
	default:
		return nil, p.errorf(diag.SyntaxErrorKind, p.pos, "expected a match")
	}
}

func (p *parser) parseInnerLiteral() (*InnerLiteral, error) {
	start := p.pos
	quote := p.peek()
	p.pos++
	contentStart := p.pos
	for !p.eof() && p.peek() != quote {
		p.pos++
	}
	if p.eof() {
		return nil, p.errorf(diag.SyntaxErrorKind, start, "unterminated quoted literal")
	}
	text := string(p.src[contentStart:p.pos])
	p.pos++ // consume closing quote
	return &InnerLiteral{Text: text, Sp: Span{start, p.pos}}, nil
}

// parseMacroOrDef parses macro = '#' (range_macro / token), and promotes to
// a Def if the macro is immediately followed by '='.
func (p *parser) parseMacroOrDef() (Match, error) {
	start := p.pos
	p.pos++ // consume '#'

	if rm, ok := p.tryParseRangeEndpoints(); ok {
		rm.Sp = Span{start, p.pos}
		return rm, nil
	}

	nameStart := p.pos
	for !p.eof() && isNameChar(p.peek()) {
		p.pos++
	}
	if p.pos == nameStart {
		return nil, p.errorf(diag.SyntaxErrorKind, start, "expected macro name after '#'")
	}
	name := string(p.src[nameStart:p.pos])

	if p.peek() == '=' {
		p.pos++
		body, err := p.parseBracesExpectingOpen()
		if err != nil {
			return nil, err
		}
		return &Def{Name: "#" + name, Body: body, Sp: Span{start, body.Sp.End}}, nil
	}

	return &MacroRef{Name: "#" + name, Sp: Span{start, p.pos}}, nil
}

func (p *parser) parseBracesExpectingOpen() (*Braces, error) {
	if p.peek() != '[' {
		return nil, p.errorf(diag.SyntaxErrorKind, p.pos, "expected '[' to begin definition body")
	}
	return p.parseBraces()
}

// tryParseRangeEndpoints attempts range_macro = range_endpoint '..' range_endpoint
// right after the leading '#'. It only commits (advances p.pos) on success.
func (p *parser) tryParseRangeEndpoints() (*RangeMacro, bool) {
	if !isAlnum(p.peekAt(0)) || p.peekAt(1) != '.' || p.peekAt(2) != '.' || !isAlnum(p.peekAt(3)) {
		return nil, false
	}
	a := p.peekAt(0)
	b := p.peekAt(3)
	p.pos += 4
	return &RangeMacro{A: a, B: b}, true
}

func isAlnum(r rune) bool {
	return r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z' || r >= '0' && r <= '9'
}
