// Package logging builds the zerolog logger used for diagnostics.
package logging

import (
	"io"

	"github.com/rs/zerolog"
)

// New returns a human-readable logger writing to w.
// When debug is false the logger is disabled; diagnostics never reach stdout.
func New(w io.Writer, debug bool) zerolog.Logger {
	if !debug {
		return zerolog.Nop()
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).
		With().
		Timestamp().
		Logger().
		Level(zerolog.DebugLevel)
}
