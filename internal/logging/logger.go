// Package logging provides the zerolog logger used across InLine.
//
// The terminal UI owns stdout and stderr, so logs go to a file. Output uses the
// zerolog console format without colour so `inline logs` stays readable.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logging configuration.
type Config struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string
	// Path is the log file. Empty discards output.
	Path string
	// Output overrides Path when set. Used by tests.
	Output io.Writer
}

// New builds a logger for cfg. The returned closer releases the log file.
func New(cfg Config) (zerolog.Logger, io.Closer, error) {
	out := cfg.Output
	var closer io.Closer = nopCloser{}
	if out == nil {
		if strings.TrimSpace(cfg.Path) == "" {
			return zerolog.Nop(), closer, nil
		}
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
			return zerolog.Nop(), closer, fmt.Errorf("create log dir: %w", err)
		}
		file, err := os.OpenFile(cfg.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), closer, fmt.Errorf("open log file: %w", err)
		}
		out = file
		closer = file
	}

	writer := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.DateTime,
		NoColor:    true,
	}
	logger := zerolog.New(writer).
		Level(ParseLevel(cfg.Level)).
		With().
		Timestamp().
		Logger()
	return logger, closer, nil
}

// ParseLevel converts a level name to zerolog.Level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
