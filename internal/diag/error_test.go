package diag

import (
	"strings"
	"testing"
)

func TestNewBuildsZeroWidthSpan(t *testing.T) {
	err := New(UnknownMacroKind, 5, "unknown macro %s", "#foo")
	if err.Span.Start != 5 || err.Span.End != 5 {
		t.Errorf("want zero-width span at 5, got %#v", err.Span)
	}
	if err.Kind != UnknownMacroKind {
		t.Errorf("got kind %v", err.Kind)
	}
	if !strings.Contains(err.Message, "#foo") {
		t.Errorf("message missing formatted arg: %q", err.Message)
	}
}

func TestNewSpanBuildsRangedSpan(t *testing.T) {
	err := NewSpan(SyntaxErrorKind, 2, 9, "bad token")
	if err.Span.Start != 2 || err.Span.End != 9 {
		t.Errorf("want span [2,9), got %#v", err.Span)
	}
}

func TestErrorImplementsErrorInterface(t *testing.T) {
	err := New(CyclicMacroKind, 0, "cycle at %s", "#a")
	var _ error = err
	if !strings.Contains(err.Error(), "CyclicMacro") {
		t.Errorf("Error() missing kind name: %q", err.Error())
	}
}

func TestWithSourceChainsAndSetsField(t *testing.T) {
	err := New(InvalidRangeKind, 0, "bad range").WithSource("[#f..a]")
	if err.Source != "[#f..a]" {
		t.Errorf("got source %q", err.Source)
	}
}

func TestKindStringCoversAllKinds(t *testing.T) {
	kinds := []Kind{
		SyntaxErrorKind, UnknownMacroKind, CyclicMacroKind, DuplicateDefinitionKind,
		InvalidRangeKind, InvalidNegationKind, UnsupportedOperatorKind, ExpansionDepthExceededKind,
	}
	seen := make(map[string]bool)
	for _, k := range kinds {
		s := k.String()
		if s == "" || s == "Error" {
			t.Errorf("kind %d stringified to generic fallback %q", k, s)
		}
		if seen[s] {
			t.Errorf("duplicate Kind string %q", s)
		}
		seen[s] = true
	}
}
