// Package logging builds the zerolog loggers used by the CLI and handed to connections.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New creates a logger writing to w (stdout when nil).
// If pretty is true, output is formatted for humans; an unknown level falls back to info.
func New(level string, pretty bool, w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stdout
	}
	if pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	zLevel, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		zLevel = zerolog.InfoLevel
	}
	return zerolog.New(w).Level(zLevel).With().Timestamp().Str("component", "rwsclient").Logger()
}
