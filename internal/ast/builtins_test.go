package ast

import (
	"testing"

	"github.com/kleenexp-go/kleenexp/internal/option"
)

func TestCanonicalBuiltinNameAliases(t *testing.T) {
	cases := map[string]string{
		"digit":     "digit",
		"d":         "digit",
		"not_digit": "not_digit",
		"nd":        "not_digit",
		"int":       "integer",
		"hd":        "hex_digit",
		"crlf":      "windows_newline",
	}
	for alias, want := range cases {
		got, ok := canonicalBuiltinName(alias)
		if !ok || got != want {
			t.Errorf("canonicalBuiltinName(%q) = (%q, %v), want (%q, true)", alias, got, ok, want)
		}
	}
}

func TestCanonicalBuiltinNameRejectsUnknown(t *testing.T) {
	if _, ok := canonicalBuiltinName("bogus"); ok {
		t.Fatalf("want bogus to be unrecognized")
	}
}

func TestDerivedSourceCoversAllDerivedMacros(t *testing.T) {
	for _, d := range derivedMacros {
		if src, ok := derivedSource(d.Long); !ok || src == "" {
			t.Errorf("derivedSource(%q) = (%q, %v), want non-empty source", d.Long, src, ok)
		}
	}
}

func TestDirectBuiltinNotDerived(t *testing.T) {
	for _, d := range derivedMacros {
		if _, ok := directBuiltin(d.Long, option.Options{}); ok {
			t.Errorf("directBuiltin should not handle derived macro %q", d.Long)
		}
	}
}

func TestDirectBuiltinLetterUnicodeSwitch(t *testing.T) {
	ascii, ok := directBuiltin("letter", option.Options{Unicode: false})
	if !ok {
		t.Fatal("want ascii letter builtin")
	}
	if _, ok := ascii.(*CharClass); !ok {
		t.Errorf("want CharClass for ascii letter, got %T", ascii)
	}

	unicode, ok := directBuiltin("letter", option.Options{Unicode: true})
	if !ok {
		t.Fatal("want unicode letter builtin")
	}
	raw, ok := unicode.(*Raw)
	if !ok || raw.Fragment != `\p{L}` {
		t.Errorf("want Raw(\\p{L}) for unicode letter, got %#v", unicode)
	}
}
