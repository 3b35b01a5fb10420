package emit

import "strings"

// topMetachars are the characters that need a backslash to appear literally
// outside a character class in both PCRE and ECMAScript. '#' is included
// even though plain PCRE/ECMAScript never treat it specially, because it
// doubles as KE's own macro sigil and PCRE's extended/verbose mode reads it
// as a comment marker; escaping it is the conservative choice so a literal
// '#' survives being embedded in a verbose-mode pattern unscathed.
const topMetachars = `\.+*?()|[]{}^$#`

func escapeLiteral(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if strings.ContainsRune(topMetachars, r) {
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
