package emit

import (
	"strings"

	"github.com/kleenexp-go/kleenexp/internal/ast"
)

// renderCharClass renders a CharClass, recovering the flavor's native
// shorthand escape (\d, \s, \w) when the item set exactly matches one of
// the canonical builtin sets internal/ast.directBuiltin constructs for
// #digit/#space/#token_character — the same recognize-the-common-shape
// idea as the teacher's detectCharacterClass, applied here to text output
// instead of generated comparison code.
func (e *emitter) renderCharClass(cc *ast.CharClass) string {
	if tok, ok := shorthandToken(cc); ok {
		return tok
	}
	var sb strings.Builder
	sb.WriteByte('[')
	if cc.Negated {
		sb.WriteByte('^')
	}
	for _, item := range cc.Items {
		switch {
		case item.RawClass != "":
			// \n, \r, \t are valid unescaped-backslash members of a
			// character class in both supported flavors; no fallback
			// enumeration is needed for the raw fragments this compiler
			// ever produces.
			sb.WriteString(item.RawClass)
		case item.Range:
			sb.WriteString(escapeInClass(item.Lo))
			sb.WriteByte('-')
			sb.WriteString(escapeInClass(item.Hi))
		default:
			sb.WriteString(escapeInClass(item.Char))
		}
	}
	sb.WriteByte(']')
	return sb.String()
}

var (
	digitItems = []ast.CharClassItem{{Range: true, Lo: '0', Hi: '9'}}
	spaceItems = []ast.CharClassItem{
		{Char: ' '}, {Char: '\t'}, {Char: '\n'}, {Char: '\r'}, {Char: '\f'}, {Char: '\v'},
	}
	wordItems = []ast.CharClassItem{
		{Range: true, Lo: '0', Hi: '9'},
		{Range: true, Lo: 'a', Hi: 'z'},
		{Range: true, Lo: 'A', Hi: 'Z'},
		{Char: '_'},
	}
)

// shorthandToken recognizes cc as one of the three PCRE/ECMAScript native
// character-class escapes. Neither flavor has a single-token shorthand for
// "letter"/"lowercase"/"uppercase" in ASCII mode, so those always render as
// an explicit bracket enumeration.
func shorthandToken(cc *ast.CharClass) (string, bool) {
	switch {
	case itemsEqual(cc.Items, digitItems):
		if cc.Negated {
			return `\D`, true
		}
		return `\d`, true
	case itemsEqual(cc.Items, spaceItems):
		if cc.Negated {
			return `\S`, true
		}
		return `\s`, true
	case itemsEqual(cc.Items, wordItems):
		if cc.Negated {
			return `\W`, true
		}
		return `\w`, true
	default:
		return "", false
	}
}

func itemsEqual(a, b []ast.CharClassItem) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func escapeInClass(r rune) string {
	switch r {
	case '\\', ']', '^', '-':
		return "\\" + string(r)
	default:
		return string(r)
	}
}
