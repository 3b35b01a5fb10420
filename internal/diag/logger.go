package diag

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Logger narrates pipeline decisions (macro expansion, flavor choices,
// folding) when enabled. It keeps the Log/Section/Enabled shape of the
// teacher's compiler.Logger but is backed by a structured zerolog.Logger
// instead of raw fmt.Fprintf, so a caller can redirect or filter compiler
// diagnostics the same way they would any other structured log in the
// surrounding service.
type Logger struct {
	enabled bool
	zl      zerolog.Logger
}

// NewLogger creates a logger. When enabled is false, Log and Section are
// no-ops; no zerolog work is done on the hot path.
func NewLogger(enabled bool) *Logger {
	return &Logger{
		enabled: enabled,
		zl:      zerolog.New(os.Stderr).With().Timestamp().Str("component", "kleenexp").Logger(),
	}
}

// SetOutput redirects the underlying writer.
func (l *Logger) SetOutput(w io.Writer) {
	l.zl = l.zl.Output(w)
}

// Enabled reports whether logging is active.
func (l *Logger) Enabled() bool {
	return l.enabled
}

// Section marks the start of a new pipeline stage (parse, resolve, lower,
// emit).
func (l *Logger) Section(stage string) {
	if !l.enabled {
		return
	}
	l.zl.Debug().Str("stage", stage).Msg("stage start")
}

// Log emits a single diagnostic event within the current stage. fields is
// an optional list of alternating key/value pairs appended to the event.
func (l *Logger) Log(stage, msg string, fields ...any) {
	if !l.enabled {
		return
	}
	ev := l.zl.Debug().Str("stage", stage)
	for i := 0; i+1 < len(fields); i += 2 {
		key, _ := fields[i].(string)
		ev = ev.Interface(key, fields[i+1])
	}
	ev.Msg(msg)
}
