package diag

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Render writes a human-readable, colorized rendering of err to w: the
// source line, a caret under the offending span, and the classified
// message. Used by cmd/kexp; the core compiler never formats errors this
// way itself (it only returns *Error).
func Render(w io.Writer, err *Error) {
	kindColor := color.New(color.FgRed, color.Bold)
	caretColor := color.New(color.FgYellow, color.Bold)

	fmt.Fprintf(w, "%s: %s\n", kindColor.Sprint(err.Kind.String()), err.Message)

	if err.Source == "" {
		return
	}
	line, col, lineText := locate(err.Source, err.Span.Start)
	fmt.Fprintf(w, "  %d | %s\n", line, lineText)
	pad := strings.Repeat(" ", len(fmt.Sprintf("  %d | ", line))+col)
	width := err.Span.End - err.Span.Start
	if width < 1 {
		width = 1
	}
	fmt.Fprintf(w, "%s%s\n", pad, caretColor.Sprint(strings.Repeat("^", width)))
}

// locate converts a byte offset into a 1-based line number, 0-based column,
// and the text of that line.
func locate(source string, offset int) (line, col int, lineText string) {
	line = 1
	lineStart := 0
	for i := 0; i < offset && i < len(source); i++ {
		if source[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}
	lineEnd := strings.IndexByte(source[lineStart:], '\n')
	if lineEnd < 0 {
		lineText = source[lineStart:]
	} else {
		lineText = source[lineStart : lineStart+lineEnd]
	}
	col = offset - lineStart
	return line, col, lineText
}
