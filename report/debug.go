package report

import (
	"io"

	"github.com/rs/zerolog"
)

// NewDebugLogger returns the logger used for debug traces.  Traces are written
// to w in a human readable form when enabled and discarded otherwise.
func NewDebugLogger(w io.Writer, enabled bool) zerolog.Logger {
	if !enabled {
		return zerolog.Nop()
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: "15:04:05"}).
		Level(zerolog.DebugLevel).
		With().
		Timestamp().
		Logger()
}
