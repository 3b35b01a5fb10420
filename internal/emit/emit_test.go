package emit

import (
	"testing"

	"github.com/kleenexp-go/kleenexp/internal/ast"
	"github.com/kleenexp-go/kleenexp/internal/diag"
	"github.com/kleenexp-go/kleenexp/internal/option"
)

func emitPCRE(t *testing.T, n ast.Node) string {
	t.Helper()
	s, err := Emit(n, option.Options{}.WithDefaults())
	if err != nil {
		t.Fatalf("emit: %v", err)
	}
	return s
}

func TestEmitLiteralEscapesMetacharacters(t *testing.T) {
	got := emitPCRE(t, &ast.Literal{Text: "a.b*c(d)"})
	want := `a\.b\*c\(d\)`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEmitConcatWrapsAltChildren(t *testing.T) {
	n := &ast.Concat{Children: []ast.Node{
		&ast.Literal{Text: "x"},
		&ast.Alt{Children: []ast.Node{&ast.Literal{Text: "a"}, &ast.Literal{Text: "b"}}},
		&ast.Literal{Text: "y"},
	}}
	got := emitPCRE(t, n)
	want := "x(?:a|b)y"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEmitRepeatGroupsNonAtomicChild(t *testing.T) {
	n := &ast.Repeat{
		Child:     &ast.Literal{Text: "ab"},
		Min:       2,
		Max:       2,
		Unbounded: false,
		Greedy:    true,
	}
	got := emitPCRE(t, n)
	want := "(?:ab){2}"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEmitRepeatAtomicChildNoGrouping(t *testing.T) {
	n := &ast.Repeat{Child: &ast.Literal{Text: "a"}, Min: 1, Unbounded: true, Greedy: true}
	got := emitPCRE(t, n)
	if got != "a+" {
		t.Errorf("got %q, want %q", got, "a+")
	}
}

func TestEmitRepeatQuantifierForms(t *testing.T) {
	cases := []struct {
		r    *ast.Repeat
		want string
	}{
		{&ast.Repeat{Min: 0, Unbounded: true, Greedy: true}, "*"},
		{&ast.Repeat{Min: 1, Unbounded: true, Greedy: true}, "+"},
		{&ast.Repeat{Min: 0, Max: 1, Greedy: true}, "?"},
		{&ast.Repeat{Min: 3, Unbounded: true, Greedy: true}, "{3,}"},
		{&ast.Repeat{Min: 4, Max: 4, Greedy: true}, "{4}"},
		{&ast.Repeat{Min: 2, Max: 5, Greedy: true}, "{2,5}"},
	}
	for _, c := range cases {
		c.r.Child = &ast.Literal{Text: "a"}
		got := emitPCRE(t, c.r)
		want := "a" + c.want
		if got != want {
			t.Errorf("quantifier for %#v: got %q, want %q", c.r, got, want)
		}
	}
}

func TestEmitCaptureNamedPCREAndECMAScript(t *testing.T) {
	n := &ast.Capture{Child: &ast.Literal{Text: "x"}, Name: "year"}
	pcre := emitPCRE(t, n)
	if pcre != "(?P<year>x)" {
		t.Errorf("pcre: got %q", pcre)
	}
	es, err := Emit(n, option.Options{Flavor: option.ECMAScript}.WithDefaults())
	if err != nil {
		t.Fatalf("emit: %v", err)
	}
	if es != "(?<year>x)" {
		t.Errorf("ecmascript: got %q", es)
	}
}

func TestEmitCaptureUnnamed(t *testing.T) {
	n := &ast.Capture{Child: &ast.Literal{Text: "x"}}
	got := emitPCRE(t, n)
	if got != "(x)" {
		t.Errorf("got %q", got)
	}
}

func TestEmitCharClassShorthandRecovery(t *testing.T) {
	digit := &ast.CharClass{Items: []ast.CharClassItem{{Range: true, Lo: '0', Hi: '9'}}}
	if got := emitPCRE(t, digit); got != `\d` {
		t.Errorf("digit: got %q, want %q", got, `\d`)
	}
	negDigit := &ast.CharClass{Items: digit.Items, Negated: true}
	if got := emitPCRE(t, negDigit); got != `\D` {
		t.Errorf("negated digit: got %q, want %q", got, `\D`)
	}
}

func TestEmitCharClassFoldedDigitAndRangeStaysEnumerated(t *testing.T) {
	// [#digit | #a..f] folds to a CharClass with 2 items that does NOT match
	// any canonical shorthand shape, so it must enumerate as [0-9a-f].
	cc := &ast.CharClass{Items: []ast.CharClassItem{
		{Range: true, Lo: '0', Hi: '9'},
		{Range: true, Lo: 'a', Hi: 'f'},
	}}
	got := emitPCRE(t, cc)
	want := "[0-9a-f]"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEmitCharClassEscapesSpecialMembers(t *testing.T) {
	cc := &ast.CharClass{Items: []ast.CharClassItem{{Char: ']'}, {Char: '^'}, {Char: '-'}, {Char: '\\'}}}
	got := emitPCRE(t, cc)
	want := `[\]\^\-\\]`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEmitAnchorsPCREWithoutMultiline(t *testing.T) {
	opts := option.Options{}.WithDefaults()
	cases := map[ast.AnchorKind]string{
		ast.StartString: `\A`,
		ast.EndString:   `\Z`,
		ast.StartLine:   "^",
		ast.EndLine:     "$",
	}
	for kind, want := range cases {
		got, err := Emit(&ast.Anchor{Kind: kind}, opts)
		if err != nil {
			t.Fatalf("emit: %v", err)
		}
		if got != want {
			t.Errorf("%s: got %q, want %q", kind, got, want)
		}
	}
}

func TestEmitAnchorsPCREWithMultiline(t *testing.T) {
	opts := option.Options{Multiline: true}.WithDefaults()
	cases := map[ast.AnchorKind]string{
		ast.StartString: `\A`,
		ast.EndString:   `\Z`,
		ast.StartLine:   "^",
		ast.EndLine:     "$",
	}
	for kind, want := range cases {
		got, err := Emit(&ast.Anchor{Kind: kind}, opts)
		if err != nil {
			t.Fatalf("emit: %v", err)
		}
		if got != want {
			t.Errorf("%s: got %q, want %q", kind, got, want)
		}
	}
}

func TestEmitAnchorsECMAScriptCollapseToCaretDollar(t *testing.T) {
	opts := option.Options{Flavor: option.ECMAScript}.WithDefaults()
	cases := map[ast.AnchorKind]string{
		ast.StartString: "^",
		ast.StartLine:   "^",
		ast.EndString:   "$",
		ast.EndLine:     "$",
	}
	for kind, want := range cases {
		got, err := Emit(&ast.Anchor{Kind: kind}, opts)
		if err != nil {
			t.Fatalf("emit: %v", err)
		}
		if got != want {
			t.Errorf("%s: got %q, want %q", kind, got, want)
		}
	}
}

func TestEmitFlagCaseInsensitivePCRE(t *testing.T) {
	n := &ast.Flag{Child: &ast.Literal{Text: "cry"}, CaseInsensitive: true}
	got := emitPCRE(t, n)
	if got != "(?i:cry)" {
		t.Errorf("got %q", got)
	}
}

func TestEmitFlagCaseInsensitiveECMAScriptErrors(t *testing.T) {
	n := &ast.Flag{Child: &ast.Literal{Text: "cry"}, CaseInsensitive: true}
	_, err := Emit(n, option.Options{Flavor: option.ECMAScript}.WithDefaults())
	if err == nil {
		t.Fatal("want error")
	}
	de, ok := err.(*diag.Error)
	if !ok || de.Kind != diag.UnsupportedOperatorKind {
		t.Fatalf("want UnsupportedOperatorKind, got %#v", err)
	}
}

func TestEmitRawFragmentPassesThrough(t *testing.T) {
	got := emitPCRE(t, &ast.Raw{Fragment: `\b`})
	if got != `\b` {
		t.Errorf("got %q", got)
	}
}
