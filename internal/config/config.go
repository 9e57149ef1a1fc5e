package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the settings InLine needs to reach the waitlist backend.
type Config struct {
	APIURL      string
	PublicURL   string
	SessionPath string
	LogPath     string
	LogLevel    string
	PollEvery   time.Duration
}

const (
	defaultConfigPath  = "~/.config/inline/config.toml"
	defaultAPIURL      = "http://localhost:4100/api"
	defaultPublicURL   = "http://localhost:4200"
	defaultSessionPath = "~/.local/state/inline/session.toml"
	defaultLogPath     = "~/.local/state/inline/inline.log"
	defaultLogLevel    = "info"
	defaultPollSeconds = 15

	envAPIURL   = "INLINE_API_URL"
	envLogLevel = "INLINE_LOG_LEVEL"
)

// Load locates and parses the InLine config, falling back to defaults when missing.
// Environment overrides are applied last.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := defaults()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			applyEnv(&cfg)
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIURL      string `toml:"api_url"`
		PublicURL   string `toml:"public_url"`
		SessionPath string `toml:"session_path"`
		LogPath     string `toml:"log_path"`
		LogLevel    string `toml:"log_level"`
		PollSeconds int    `toml:"poll_seconds"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIURL); v != "" {
		cfg.APIURL = v
	}
	if v := strings.TrimSpace(raw.PublicURL); v != "" {
		cfg.PublicURL = v
	}
	if v := strings.TrimSpace(raw.SessionPath); v != "" {
		cfg.SessionPath = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogPath); v != "" {
		cfg.LogPath = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if raw.PollSeconds > 0 {
		cfg.PollEvery = time.Duration(raw.PollSeconds) * time.Second
	}

	applyEnv(&cfg)
	return cfg, nil
}

// JoinURL returns the customer-facing link for a vendor's waitlist.
func (c Config) JoinURL(vendorID int64) string {
	base := strings.TrimRight(strings.TrimSpace(c.PublicURL), "/")
	if base == "" {
		base = defaultPublicURL
	}
	return fmt.Sprintf("%s/customer/%d", base, vendorID)
}

func defaults() Config {
	return Config{
		APIURL:      defaultAPIURL,
		PublicURL:   defaultPublicURL,
		SessionPath: mustExpand(defaultSessionPath),
		LogPath:     mustExpand(defaultLogPath),
		LogLevel:    defaultLogLevel,
		PollEvery:   defaultPollSeconds * time.Second,
	}
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(envAPIURL)); v != "" {
		cfg.APIURL = v
	}
	if v := strings.TrimSpace(os.Getenv(envLogLevel)); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return ExpandPath(defaultConfigPath)
	}
	return ExpandPath(path)
}

func mustExpand(path string) string {
	expanded, err := ExpandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath resolves a leading ~ and returns an absolute path.
func ExpandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
