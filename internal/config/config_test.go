package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(envAPIURL, "")
	t.Setenv(envLogLevel, "")

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIURL != defaultAPIURL {
		t.Fatalf("APIURL = %q, want %q", cfg.APIURL, defaultAPIURL)
	}
	if cfg.PollEvery != defaultPollSeconds*time.Second {
		t.Fatalf("PollEvery = %v, want %v", cfg.PollEvery, defaultPollSeconds*time.Second)
	}

	wantSession, err := ExpandPath(defaultSessionPath)
	if err != nil {
		t.Fatalf("ExpandPath(defaultSessionPath) returned error: %v", err)
	}
	if cfg.SessionPath != wantSession {
		t.Fatalf("SessionPath = %q, want %q", cfg.SessionPath, wantSession)
	}
	if !strings.HasPrefix(cfg.LogPath, home) {
		t.Fatalf("LogPath = %q, want it under HOME %q", cfg.LogPath, home)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(envAPIURL, "")
	t.Setenv(envLogLevel, "")

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
api_url = "  https://api.inline.test/api  "
public_url = "https://inline.test/"
session_path = "  ~/.inline/session.toml  "
log_level = "DEBUG"
poll_seconds = 5
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIURL != "https://api.inline.test/api" {
		t.Fatalf("APIURL = %q, want %q", cfg.APIURL, "https://api.inline.test/api")
	}
	if cfg.SessionPath != filepath.Join(home, ".inline/session.toml") {
		t.Fatalf("SessionPath = %q, want it under HOME", cfg.SessionPath)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.PollEvery != 5*time.Second {
		t.Fatalf("PollEvery = %v, want 5s", cfg.PollEvery)
	}
	if got := cfg.JoinURL(12); got != "https://inline.test/customer/12" {
		t.Fatalf("JoinURL = %q, want https://inline.test/customer/12", got)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(envAPIURL, "http://override:9000/api")
	t.Setenv(envLogLevel, "warn")

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`api_url = "http://file/api"`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIURL != "http://override:9000/api" {
		t.Fatalf("APIURL = %q, want env override", cfg.APIURL)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("LogLevel = %q, want warn", cfg.LogLevel)
	}
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(envAPIURL, "")
	t.Setenv(envLogLevel, "")

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
api_url = "   "
poll_seconds = 0
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIURL != defaultAPIURL {
		t.Fatalf("APIURL = %q, want %q", cfg.APIURL, defaultAPIURL)
	}
	if cfg.PollEvery != defaultPollSeconds*time.Second {
		t.Fatalf("PollEvery = %v, want default", cfg.PollEvery)
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`api_url = [`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ExpandPath("~/a/b")
	if err != nil {
		t.Fatalf("ExpandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("ExpandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := ExpandPath("   "); err == nil {
		t.Fatalf("ExpandPath returned nil error, want error")
	}
}

func TestJoinURL_DefaultsWhenPublicURLEmpty(t *testing.T) {
	var cfg Config
	if got := cfg.JoinURL(7); got != defaultPublicURL+"/customer/7" {
		t.Fatalf("JoinURL = %q, want %q", got, defaultPublicURL+"/customer/7")
	}
}
