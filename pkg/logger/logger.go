// Package logger configures the CLI's zerolog output.
package logger

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// New returns a console-writer logger. Debug enables connector query tracing.
func New(out io.Writer, debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	writer := zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}
