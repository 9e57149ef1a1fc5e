// Package prefs handles InLine user preferences persistence.
// Preferences are stored in ~/.config/inline/prefs.toml.
package prefs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Anonymize modes for roster entries that are not the tracked customer.
const (
	AnonymizeInitial = "initial"
	AnonymizePhone   = "phone"
)

// Prefs holds user preferences for InLine.
type Prefs struct {
	Theme      string `toml:"theme"`
	LastVendor int64  `toml:"last_vendor"`
	Anonymize  string `toml:"anonymize"`
}

const (
	defaultPrefsPath = "~/.config/inline/prefs.toml"
	defaultTheme     = "Nightfox"
)

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Defaults returns the preferences used when nothing is stored.
func Defaults() Prefs {
	return Prefs{Theme: defaultTheme, Anonymize: AnonymizeInitial}
}

// Load reads preferences from the given path, falling back to defaults if missing.
func Load(path string) Prefs {
	resolved, err := resolvePath(path)
	if err != nil {
		return Defaults()
	}

	file, err := os.Open(resolved)
	if err != nil {
		return Defaults() // Graceful degradation, missing or unreadable
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Defaults()
	}

	p := Defaults()
	if err := toml.Unmarshal(bytes, &p); err != nil {
		return Defaults()
	}
	return p.normalized()
}

// Save writes preferences to the given path, creating directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	bytes, err := toml.Marshal(p.normalized())
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	if err := os.WriteFile(resolved, bytes, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}

	return nil
}

// Update loads the stored preferences, applies fn and writes them back.
func Update(path string, fn func(*Prefs)) error {
	p := Load(path)
	fn(&p)
	return Save(path, p)
}

func (p Prefs) normalized() Prefs {
	if strings.TrimSpace(p.Theme) == "" {
		p.Theme = defaultTheme
	}
	switch strings.ToLower(strings.TrimSpace(p.Anonymize)) {
	case AnonymizePhone:
		p.Anonymize = AnonymizePhone
	default:
		p.Anonymize = AnonymizeInitial
	}
	if p.LastVendor < 0 {
		p.LastVendor = 0
	}
	return p
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultPrefsPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", errors.New("path is empty")
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
