package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"":        zerolog.InfoLevel,
		"DEBUG":   zerolog.DebugLevel,
		" warn ":  zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"off":     zerolog.Disabled,
		"bogus":   zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNew_WritesPlainConsoleLines(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := New(Config{Level: "info", Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	defer closer.Close()

	logger.Debug().Msg("hidden")
	logger.Info().Int64("vendor", 7).Msg("roster refreshed")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line written at info level: %q", out)
	}
	if !strings.Contains(out, "roster refreshed") || !strings.Contains(out, "vendor=7") {
		t.Fatalf("output = %q, want message and field", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("output contains ANSI colour codes: %q", out)
	}
}

func TestNew_CreatesLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "inline.log")
	logger, closer, err := New(Config{Path: path})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Warn().Msg("hello")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "hello") {
		t.Fatalf("log file = %q, want hello", string(data))
	}
}

func TestNew_EmptyPathDiscards(t *testing.T) {
	logger, _, err := New(Config{})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if logger.GetLevel() != zerolog.Disabled {
		t.Fatalf("level = %v, want disabled nop logger", logger.GetLevel())
	}
}
