package ast

import (
	"strings"

	"github.com/kleenexp-go/kleenexp/internal/diag"
	"github.com/kleenexp-go/kleenexp/internal/option"
	"github.com/kleenexp-go/kleenexp/internal/syntax"
)

// scope holds the user Defs declared directly inside one Braces (or one
// branch of an Either — supplement C.6 scopes each branch separately).
type scope struct {
	defs map[string]*defBinding
}

func newScope() *scope { return &scope{defs: map[string]*defBinding{}} }

// defBinding is a user macro definition together with the scope stack that
// was active when it was declared. Expansion is lazy: the body is lowered
// the first time a MacroRef resolves to this binding, using declScopes
// (not the scopes active at the *reference* site) so sibling Defs in the
// same Braces remain visible to each other regardless of source order.
type defBinding struct {
	def        *syntax.Def
	declScopes []*scope
	resolving  bool
	cached     Node
}

// Resolver carries the per-compilation state for macro resolution and
// lowering: the scope stack, the expansion-depth counter (spec §5), and
// caches for already-expanded derived builtins. It is not reused across
// compilations (unlike the immutable builtin tables in builtins.go, which
// are shared by reference).
type Resolver struct {
	opts             option.Options
	source           string
	scopes           []*scope
	depth            int
	derivedCache     map[string]Node
	derivedResolving map[string]bool
	logger           *diag.Logger
}

// Lower runs macro resolution and lowering over a parsed KE source's
// top-level node sequence (spec §4.3-§4.5).
func Lower(nodes []syntax.Node, opts option.Options, source string) (Node, error) {
	return LowerWithLogger(nodes, opts, source, diag.NewLogger(false))
}

// LowerWithLogger is Lower with pipeline narration sent to logger (macro
// expansions, cache hits, Alt-to-CharClass folds). Used by `kexp --debug`;
// a disabled logger costs nothing on the hot path (see diag.Logger).
func LowerWithLogger(nodes []syntax.Node, opts option.Options, source string, logger *diag.Logger) (Node, error) {
	r := &Resolver{
		opts:             opts,
		source:           source,
		derivedCache:     map[string]Node{},
		derivedResolving: map[string]bool{},
		logger:           logger,
	}
	r.logger.Section("lower")
	return r.lowerTopToSingleNode(nodes)
}

func (r *Resolver) lowerTopToSingleNode(nodes []syntax.Node) (Node, error) {
	children, err := r.lowerTopNodes(nodes)
	if err != nil {
		return nil, err
	}
	return collapseConcat(mergeAdjacentLiterals(children)), nil
}

func (r *Resolver) lowerTopNodes(nodes []syntax.Node) ([]Node, error) {
	var out []Node
	for _, n := range nodes {
		switch x := n.(type) {
		case *syntax.OuterLiteral:
			out = append(out, &Literal{Text: x.Text})
		case *syntax.Braces:
			child, err := r.lowerBraces(x)
			if err != nil {
				return nil, err
			}
			out = append(out, child)
		}
	}
	return out, nil
}

func (r *Resolver) push()   { r.scopes = append(r.scopes, newScope()) }
func (r *Resolver) pop()    { r.scopes = r.scopes[:len(r.scopes)-1] }
func (r *Resolver) top() *scope { return r.scopes[len(r.scopes)-1] }

func (r *Resolver) lowerBraces(b *syntax.Braces) (Node, error) {
	switch {
	case b.Empty:
		return &Concat{}, nil
	case b.Ops != nil:
		r.push()
		defer r.pop()
		return r.lowerOps(b.Ops)
	case b.Either != nil:
		return r.lowerEither(b.Either)
	default: // b.Seq != nil
		r.push()
		defer r.pop()
		return r.lowerMatchesSeq(b.Seq)
	}
}

func (r *Resolver) lowerEither(e *syntax.Either) (Node, error) {
	var branches []Node
	for _, seq := range e.Branches {
		r.push()
		n, err := r.lowerMatchesSeq(seq)
		r.pop()
		if err != nil {
			return nil, err
		}
		branches = append(branches, n)
	}
	alt := &Alt{Children: branches}
	if cc, ok := tryFoldToCharClass(alt); ok {
		r.logger.Log("lower", "folded alternation to character class", "branches", len(branches), "items", len(cc.Items))
		return cc, nil
	}
	return alt, nil
}

func (r *Resolver) lowerOps(om *syntax.OpsMatches) (Node, error) {
	child, err := r.lowerMatchesSeq(om.Matches)
	if err != nil {
		return nil, err
	}
	for i := len(om.Ops) - 1; i >= 0; i-- {
		var err error
		child, err = r.applyOp(om.Ops[i], child)
		if err != nil {
			return nil, err
		}
	}
	return child, nil
}

func (r *Resolver) applyOp(op *syntax.Op, child Node) (Node, error) {
	switch op.Name {
	case "capture", "c":
		name := ""
		if op.HasArg {
			name = op.Arg
		}
		return &Capture{Child: child, Name: name}, nil
	case "not":
		inverted, ok := invert(child)
		if !ok {
			return nil, diag.NewSpan(diag.InvalidNegationKind, op.Sp.Start, op.Sp.End,
				"not: subexpression does not denote a single character or character class").WithSource(r.source)
		}
		return inverted, nil
	case "comment":
		return &Concat{}, nil
	case "case_insensitive", "ci":
		return &Flag{Child: child, CaseInsensitive: true}, nil
	}

	if min, max, unbounded, ok := parseQuantifier(op.Name); ok {
		if !unbounded && max < min {
			return nil, diag.NewSpan(diag.SyntaxErrorKind, op.Sp.Start, op.Sp.End,
				"malformed quantifier %q: lower bound exceeds upper bound", op.Name).WithSource(r.source)
		}
		return &Repeat{Child: child, Min: min, Max: max, Unbounded: unbounded, Greedy: true}, nil
	}

	return nil, diag.NewSpan(diag.SyntaxErrorKind, op.Sp.Start, op.Sp.End, "unknown operator %q", op.Name).WithSource(r.source)
}

// parseQuantifier recognizes the numeric op forms N, N+, N-M (spec §4.2,
// §9's uniform treatment of 0-1/0+/1+/N-M with no special-casing of N==M==0).
func parseQuantifier(name string) (min, max int, unbounded, ok bool) {
	if name == "" {
		return 0, 0, false, false
	}
	if isDigits(name) {
		n, ok2 := atoiStrict(name)
		return n, n, false, ok2
	}
	if strings.HasSuffix(name, "+") && isDigits(name[:len(name)-1]) && len(name) > 1 {
		n, ok2 := atoiStrict(name[:len(name)-1])
		return n, 0, true, ok2
	}
	if dash := strings.IndexByte(name, '-'); dash > 0 && dash < len(name)-1 {
		left, right := name[:dash], name[dash+1:]
		if isDigits(left) && isDigits(right) {
			a, ok1 := atoiStrict(left)
			b, ok2 := atoiStrict(right)
			return a, b, false, ok1 && ok2
		}
	}
	return 0, 0, false, false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func atoiStrict(s string) (int, bool) {
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n, true
}

func (r *Resolver) lowerMatchesSeq(seq *syntax.MatchesSeq) (Node, error) {
	if err := r.registerDefs(seq.Matches); err != nil {
		return nil, err
	}
	var children []Node
	for _, m := range seq.Matches {
		switch x := m.(type) {
		case *syntax.Def:
			continue
		case *syntax.InnerLiteral:
			children = append(children, &Literal{Text: x.Text})
		case *syntax.MacroRef:
			n, err := r.resolveMacroRef(x)
			if err != nil {
				return nil, err
			}
			children = append(children, n)
		case *syntax.RangeMacro:
			n, err := r.lowerRangeMacro(x)
			if err != nil {
				return nil, err
			}
			children = append(children, n)
		case *syntax.Braces:
			n, err := r.lowerBraces(x)
			if err != nil {
				return nil, err
			}
			children = append(children, n)
		}
	}
	return collapseConcat(mergeAdjacentLiterals(children)), nil
}

func (r *Resolver) registerDefs(matches []syntax.Match) error {
	top := r.top()
	for _, m := range matches {
		def, ok := m.(*syntax.Def)
		if !ok {
			continue
		}
		if _, exists := top.defs[def.Name]; exists {
			return diag.NewSpan(diag.DuplicateDefinitionKind, def.Sp.Start, def.Sp.End,
				"macro %s already defined in this scope", def.Name).WithSource(r.source)
		}
		declScopes := make([]*scope, len(r.scopes))
		copy(declScopes, r.scopes)
		top.defs[def.Name] = &defBinding{def: def, declScopes: declScopes}
	}
	return nil
}

func collapseConcat(children []Node) Node {
	switch len(children) {
	case 0:
		return &Concat{}
	case 1:
		return children[0]
	default:
		return &Concat{Children: children}
	}
}

// mergeAdjacentLiterals joins neighbouring Literals into one. Empty Concats
// (from `[]` or a `comment` op) match nothing and are dropped first, so the
// Literals on either side of them still merge.
func mergeAdjacentLiterals(nodes []Node) []Node {
	var out []Node
	for _, n := range nodes {
		if c, ok := n.(*Concat); ok && len(c.Children) == 0 {
			continue
		}
		if lit, ok := n.(*Literal); ok && len(out) > 0 {
			if prev, ok := out[len(out)-1].(*Literal); ok {
				out[len(out)-1] = &Literal{Text: prev.Text + lit.Text}
				continue
			}
		}
		out = append(out, n)
	}
	return out
}

func (r *Resolver) lowerRangeMacro(rm *syntax.RangeMacro) (Node, error) {
	ca, cb := charRangeClass(rm.A), charRangeClass(rm.B)
	if ca == "" || ca != cb {
		return nil, diag.NewSpan(diag.InvalidRangeKind, rm.Sp.Start, rm.Sp.End,
			"range endpoints %q and %q are not the same character class", rm.A, rm.B).WithSource(r.source)
	}
	if rm.A >= rm.B {
		return nil, diag.NewSpan(diag.InvalidRangeKind, rm.Sp.Start, rm.Sp.End,
			"range start %q must be strictly before end %q", rm.A, rm.B).WithSource(r.source)
	}
	return &CharClass{Items: []CharClassItem{{Range: true, Lo: rm.A, Hi: rm.B}}}, nil
}

func charRangeClass(r rune) string {
	switch {
	case r >= '0' && r <= '9':
		return "digit"
	case r >= 'a' && r <= 'z':
		return "lower"
	case r >= 'A' && r <= 'Z':
		return "upper"
	default:
		return ""
	}
}

func (r *Resolver) resolveMacroRef(ref *syntax.MacroRef) (Node, error) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if b, ok := r.scopes[i].defs[ref.Name]; ok {
			return r.expandDef(b, ref.Sp)
		}
	}
	bare := strings.TrimPrefix(ref.Name, "#")
	long, ok := canonicalBuiltinName(bare)
	if !ok {
		return nil, diag.NewSpan(diag.UnknownMacroKind, ref.Sp.Start, ref.Sp.End, "unknown macro %s", ref.Name).WithSource(r.source)
	}
	return r.expandBuiltin(long, ref.Sp)
}

func (r *Resolver) expandDef(b *defBinding, refSp syntax.Span) (Node, error) {
	if b.cached != nil {
		r.logger.Log("resolve", "def cache hit", "name", b.def.Name)
		return b.cached, nil
	}
	if b.resolving {
		return nil, diag.NewSpan(diag.CyclicMacroKind, refSp.Start, refSp.End,
			"cyclic macro definition involving %s", b.def.Name).WithSource(r.source)
	}
	if err := r.enterExpansion(refSp); err != nil {
		return nil, err
	}
	defer r.exitExpansion()

	r.logger.Log("resolve", "expanding user def", "name", b.def.Name, "depth", r.depth)
	b.resolving = true
	saved := r.scopes
	r.scopes = b.declScopes
	n, err := r.lowerBraces(b.def.Body)
	r.scopes = saved
	b.resolving = false
	if err != nil {
		return nil, err
	}
	b.cached = n
	return n, nil
}

func (r *Resolver) expandBuiltin(long string, refSp syntax.Span) (Node, error) {
	r.logger.Log("resolve", "expanding builtin", "name", long)
	if src, ok := derivedSource(long); ok {
		return r.expandDerived(long, src, refSp)
	}
	if strings.HasPrefix(long, "not_") {
		base := strings.TrimPrefix(long, "not_")
		baseNode, ok := directBuiltin(base, r.opts)
		if !ok {
			return nil, diag.NewSpan(diag.UnknownMacroKind, refSp.Start, refSp.End, "unknown macro #%s", long).WithSource(r.source)
		}
		inverted, ok := invert(baseNode)
		if !ok {
			return nil, diag.NewSpan(diag.InvalidNegationKind, refSp.Start, refSp.End, "builtin #%s cannot be inverted", base).WithSource(r.source)
		}
		return inverted, nil
	}
	if n, ok := directBuiltin(long, r.opts); ok {
		return n, nil
	}
	return nil, diag.NewSpan(diag.UnknownMacroKind, refSp.Start, refSp.End, "unknown macro #%s", long).WithSource(r.source)
}

func (r *Resolver) expandDerived(long, source string, refSp syntax.Span) (Node, error) {
	if n, ok := r.derivedCache[long]; ok {
		return n, nil
	}
	if r.derivedResolving[long] {
		return nil, diag.NewSpan(diag.CyclicMacroKind, refSp.Start, refSp.End, "cyclic builtin macro #%s", long).WithSource(r.source)
	}
	if err := r.enterExpansion(refSp); err != nil {
		return nil, err
	}
	defer r.exitExpansion()

	nodes, err := syntax.Parse(source)
	if err != nil {
		return nil, err
	}
	r.derivedResolving[long] = true
	saved := r.scopes
	r.scopes = nil
	n, err := r.lowerTopToSingleNode(nodes)
	r.scopes = saved
	r.derivedResolving[long] = false
	if err != nil {
		return nil, err
	}
	r.derivedCache[long] = n
	return n, nil
}

func (r *Resolver) enterExpansion(at syntax.Span) error {
	r.depth++
	limit := r.opts.MaxExpansionDepth
	if limit <= 0 {
		limit = option.DefaultMaxExpansionDepth
	}
	if r.depth > limit {
		return diag.NewSpan(diag.ExpansionDepthExceededKind, at.Start, at.End,
			"macro expansion exceeded max depth %d", limit).WithSource(r.source)
	}
	return nil
}

func (r *Resolver) exitExpansion() { r.depth-- }

// invert returns the negation of n, or false if n cannot be inverted
// (spec §4.5). A single-character Literal folds into a negated CharClass, a
// Raw fragment inverts via its flavor-native Inverse spelling if it has one
// (keeping the original as the new Inverse, so a nested `not` cancels), a
// CharClass simply flips its Negated flag, and an Alt of foldable single-character branches folds
// to a CharClass before flipping. This is also how #not_X builtins are
// derived from their base macro (supplement C.2), mirroring the original
// implementation calling `.invert()` once per invertible builtin.
func invert(n Node) (Node, bool) {
	switch x := n.(type) {
	case *Negation:
		return x.Child, true
	case *Literal:
		runes := []rune(x.Text)
		if len(runes) != 1 {
			return nil, false
		}
		return &CharClass{Items: []CharClassItem{{Char: runes[0]}}, Negated: true}, true
	case *Raw:
		if x.Inverse == "" {
			return nil, false
		}
		return &Raw{Fragment: x.Inverse, Inverse: x.Fragment}, true
	case *CharClass:
		cp := *x
		cp.Negated = !x.Negated
		// A flipped-back-to-positive single plain character is the same
		// language as the literal it was folded from (invert's first
		// branch above); collapsing double negation all the way back to a
		// Literal avoids rendering "[a]" where "a" would do.
		if !cp.Negated && len(cp.Items) == 1 && !cp.Items[0].Range && cp.Items[0].RawClass == "" {
			return &Literal{Text: string(cp.Items[0].Char)}, true
		}
		return &cp, true
	case *Alt:
		if cc, ok := tryFoldToCharClass(x); ok {
			cc.Negated = !cc.Negated
			return cc, true
		}
		return nil, false
	default:
		return nil, false
	}
}

// tryFoldToCharClass attempts to express n as a single positive CharClass:
// a one-character Literal, a CharClass as-is, a foldable Raw fragment
// embedded as a raw class member, or an Alt all of whose branches
// themselves fold (spec §4.5's "Alt in a CharClass-equivalent position").
func tryFoldToCharClass(n Node) (*CharClass, bool) {
	switch x := n.(type) {
	case *Literal:
		runes := []rune(x.Text)
		if len(runes) != 1 {
			return nil, false
		}
		return &CharClass{Items: []CharClassItem{{Char: runes[0]}}}, true
	case *CharClass:
		cp := *x
		return &cp, true
	case *Raw:
		if !x.Foldable {
			return nil, false
		}
		return &CharClass{Items: []CharClassItem{{RawClass: x.Fragment}}}, true
	case *Alt:
		var items []CharClassItem
		for _, child := range x.Children {
			cc, ok := tryFoldToCharClass(child)
			if !ok || cc.Negated {
				return nil, false
			}
			items = append(items, cc.Items...)
		}
		return &CharClass{Items: items}, true
	default:
		return nil, false
	}
}
