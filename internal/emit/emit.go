// Package emit renders the normalized KleenExp AST (internal/ast) to a
// target-flavor regex string (spec §4.6). Emission is a pure, deterministic
// walk: no mutation of the AST, and once lowering has succeeded the only
// error it can still produce is UnsupportedOperator for a construct the
// chosen flavor cannot express (today: case_insensitive under ECMAScript).
package emit

import (
	"fmt"
	"strings"

	"github.com/kleenexp-go/kleenexp/internal/ast"
	"github.com/kleenexp-go/kleenexp/internal/diag"
	"github.com/kleenexp-go/kleenexp/internal/option"
)

// Emit renders n as a regex string in the flavor and mode selected by opts.
func Emit(n ast.Node, opts option.Options) (string, error) {
	e := &emitter{opts: opts}
	return e.emit(n)
}

type emitter struct {
	opts option.Options
}

func (e *emitter) emit(n ast.Node) (string, error) {
	switch x := n.(type) {
	case *ast.Literal:
		return escapeLiteral(x.Text), nil

	case *ast.Concat:
		var sb strings.Builder
		for _, child := range x.Children {
			s, err := e.emit(child)
			if err != nil {
				return "", err
			}
			if _, isAlt := child.(*ast.Alt); isAlt {
				s = group(s)
			}
			sb.WriteString(s)
		}
		return sb.String(), nil

	case *ast.Alt:
		parts := make([]string, len(x.Children))
		for i, child := range x.Children {
			s, err := e.emit(child)
			if err != nil {
				return "", err
			}
			parts[i] = s
		}
		return strings.Join(parts, "|"), nil

	case *ast.Repeat:
		inner, err := e.emit(x.Child)
		if err != nil {
			return "", err
		}
		if !isRepeatAtomic(x.Child) {
			inner = group(inner)
		}
		q := quantifier(x)
		if !x.Greedy {
			q += "?"
		}
		return inner + q, nil

	case *ast.Capture:
		inner, err := e.emit(x.Child)
		if err != nil {
			return "", err
		}
		if x.Name == "" {
			return "(" + inner + ")", nil
		}
		if e.opts.Flavor == option.ECMAScript {
			return "(?<" + x.Name + ">" + inner + ")", nil
		}
		return "(?P<" + x.Name + ">" + inner + ")", nil

	case *ast.Negation:
		// Lowering (internal/ast.invert) always folds a Negation away into a
		// negated CharClass or a Raw inverse before the AST leaves that
		// package; this branch only guards against a node surviving that
		// wasn't supposed to.
		cc, ok := x.Child.(*ast.CharClass)
		if !ok {
			return "", fmt.Errorf("emit: Negation child is %T, not CharClass", x.Child)
		}
		flipped := *cc
		flipped.Negated = !cc.Negated
		return e.renderCharClass(&flipped), nil

	case *ast.CharClass:
		return e.renderCharClass(x), nil

	case *ast.Anchor:
		return e.renderAnchor(x.Kind), nil

	case *ast.Raw:
		return x.Fragment, nil

	case *ast.Flag:
		inner, err := e.emit(x.Child)
		if err != nil {
			return "", err
		}
		if !x.CaseInsensitive {
			return inner, nil
		}
		if e.opts.Flavor == option.ECMAScript {
			return "", diag.New(diag.UnsupportedOperatorKind, 0,
				"case_insensitive has no inline-flag group in the ecmascript flavor")
		}
		return "(?i:" + inner + ")", nil

	default:
		return "", fmt.Errorf("emit: unhandled node type %T", n)
	}
}

func group(s string) string { return "(?:" + s + ")" }

// isRepeatAtomic reports whether n's rendered form already binds tightly
// enough to take a trailing quantifier without parenthesization.
func isRepeatAtomic(n ast.Node) bool {
	switch x := n.(type) {
	case *ast.Literal:
		return len([]rune(x.Text)) == 1
	case *ast.Raw, *ast.CharClass, *ast.Capture, *ast.Anchor, *ast.Flag:
		return true
	default:
		return false
	}
}

func quantifier(r *ast.Repeat) string {
	switch {
	case r.Unbounded && r.Min == 0:
		return "*"
	case r.Unbounded && r.Min == 1:
		return "+"
	case !r.Unbounded && r.Min == 0 && r.Max == 1:
		return "?"
	case r.Unbounded:
		return fmt.Sprintf("{%d,}", r.Min)
	case r.Min == r.Max:
		return fmt.Sprintf("{%d}", r.Min)
	default:
		return fmt.Sprintf("{%d,%d}", r.Min, r.Max)
	}
}

// renderAnchor implements the flavor/multiline mapping table (spec §6).
// PCRE has distinct string anchors (\A, \Z) and line anchors (^, $); the
// table gives `#start_line`/`#end_line` the same bare ^/$ rendering in
// both the multiline and non-multiline columns, so Multiline never enters
// into these two cases — only `#start_string`/`#end_string` vary by mode,
// and \A/\Z (always-absolute) is one of the two forms the table permits
// for both columns, so they're rendered unconditionally too.
// ECMAScript has no string/line distinction in its anchor tokens at all —
// ^ and $ serve both roles depending on the engine's runtime multiline
// flag, which this compiler cannot embed into the pattern text. That
// collapse is one of the flavor differences spec §1's non-goals call out
// explicitly for #any/#letter and the anchors.
func (e *emitter) renderAnchor(kind ast.AnchorKind) string {
	if e.opts.Flavor == option.ECMAScript {
		switch kind {
		case ast.StartString, ast.StartLine:
			return "^"
		default:
			return "$"
		}
	}
	switch kind {
	case ast.StartString:
		return `\A`
	case ast.EndString:
		return `\Z`
	case ast.StartLine:
		return "^"
	default: // EndLine
		return "$"
	}
}
