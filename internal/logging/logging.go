// Package logging builds the zerolog loggers used across frontctl.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultLevel is used when no level, or an unknown one, is configured.
const DefaultLevel = zerolog.ErrorLevel

// ParseLevel converts a level name to zerolog.Level. An empty name gives
// DefaultLevel; an unknown name gives DefaultLevel and ok=false.
func ParseLevel(name string) (level zerolog.Level, ok bool) {
	if name == "" {
		return DefaultLevel, true
	}
	level, err := zerolog.ParseLevel(strings.ToLower(name))
	if err != nil {
		return DefaultLevel, false
	}
	return level, true
}

// Configure builds the root logger writing JSON lines to w at the named
// level. Debug and trace loggers also record the caller.
func Configure(levelName string, w io.Writer) zerolog.Logger {
	level, ok := ParseLevel(levelName)

	ctx := zerolog.New(w).With().Timestamp()
	if level <= zerolog.DebugLevel {
		ctx = ctx.Caller()
	}
	logger := ctx.Logger()

	if !ok {
		logger.Warn().
			Str("logLevel", levelName).
			Msg("invalid log level provided, defaulting to error level")
	}
	return logger.Level(level)
}

// Console returns a human-readable writer for interactive commands.
func Console(out io.Writer) io.Writer {
	return zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
	}
}

// Component derives a logger tagged with a component name.
func Component(logger zerolog.Logger, name string) zerolog.Logger {
	return logger.With().Str("component", name).Logger()
}

// OpenFile opens path for appending log lines. Terminal sessions log to a
// file because stdout belongs to the screen.
func OpenFile(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}
