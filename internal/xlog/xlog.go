// Package xlog centralizes zerolog setup for the cmd/ binaries so every
// entry point gets the same console formatting and level conventions.
package xlog

import (
	"os"

	"github.com/rs/zerolog"
)

// Setup configures zerolog with pretty console output at Info level, or
// Debug level when debug is true.
func Setup(debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs

	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Logger()
}
