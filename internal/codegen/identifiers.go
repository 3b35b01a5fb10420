// Package codegen provides identifier-shaping helpers used by
// internal/manifest when cmd/kexpgen names its generated Go variables.
package codegen

import "strings"

// LowerFirst converts the first character of a string to lowercase.
func LowerFirst(s string) string {
	if s == "" {
		return s
	}
	if c := s[0]; c >= 'A' && c <= 'Z' {
		return string(c|0x20) + s[1:]
	}
	return s
}

// UpperFirst converts the first character of a string to uppercase.
func UpperFirst(s string) string {
	if s == "" {
		return s
	}
	if c := s[0]; c >= 'a' && c <= 'z' {
		return string(c&^0x20) + s[1:]
	}
	return s
}

// SanitizeGoIdentifier rewrites name into a valid Go identifier:
// non-alphanumeric runs become underscores, a leading digit is prefixed
// with "_", and the result is upper-cased at the front, so it is exported
// whenever it begins with a letter (an empty name becomes "_"). Used by cmd/kexpgen
// when turning a manifest pattern name into a generated variable name.
func SanitizeGoIdentifier(name string) string {
	if name == "" {
		return "_"
	}
	var b strings.Builder
	prevUnderscore := false
	for _, r := range name {
		switch {
		case r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			prevUnderscore = false
		default:
			if !prevUnderscore {
				b.WriteByte('_')
				prevUnderscore = true
			}
		}
	}
	out := b.String()
	if out == "" {
		return "_"
	}
	if out[0] >= '0' && out[0] <= '9' {
		out = "_" + out
	}
	return UpperFirst(out)
}
