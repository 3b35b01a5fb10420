package diag

import (
	"bytes"
	"strings"
	"testing"
)

func TestRenderIncludesKindMessageAndCaret(t *testing.T) {
	source := "[#nonexistent]"
	err := NewSpan(UnknownMacroKind, 1, 13, "unknown macro #nonexistent").WithSource(source)

	var buf bytes.Buffer
	Render(&buf, err)
	out := buf.String()

	if !strings.Contains(out, "UnknownMacro") {
		t.Errorf("missing kind name:\n%s", out)
	}
	if !strings.Contains(out, "unknown macro #nonexistent") {
		t.Errorf("missing message:\n%s", out)
	}
	if !strings.Contains(out, source) {
		t.Errorf("missing source line:\n%s", out)
	}
	if !strings.Contains(out, "^") {
		t.Errorf("missing caret:\n%s", out)
	}
}

func TestRenderSkipsSourceLineWhenUnset(t *testing.T) {
	err := New(SyntaxErrorKind, 0, "empty input")
	var buf bytes.Buffer
	Render(&buf, err)
	if strings.Count(buf.String(), "\n") != 1 {
		t.Errorf("want a single line of output with no source, got:\n%s", buf.String())
	}
}

func TestLocateFindsLineAndColumnOnSecondLine(t *testing.T) {
	source := "first\nsecond line"
	line, col, lineText := locate(source, len("first\n")+3)
	if line != 2 || col != 3 || lineText != "second line" {
		t.Errorf("got line=%d col=%d text=%q", line, col, lineText)
	}
}
