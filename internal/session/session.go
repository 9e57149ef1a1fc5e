// Package session persists the vendor login between runs.
//
// The session lives in a TOML file readable only by the owner. It expires a
// fixed seven days after login, or earlier when the token's own exp claim
// says so. An absent or expired session means the caller is unauthenticated.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/inline/internal/api"
)

// Lifetime is how long a session stays valid after login.
const Lifetime = 7 * 24 * time.Hour

var (
	// ErrNoSession means nobody is logged in.
	ErrNoSession = errors.New("no vendor session")
	// ErrExpired means the stored session is past its expiry.
	ErrExpired = errors.New("vendor session expired")
)

// Session is an authenticated vendor.
type Session struct {
	Token     string     `toml:"token"`
	ExpiresAt time.Time  `toml:"expires_at"`
	Vendor    api.Vendor `toml:"vendor"`
}

// Store reads and writes the session file.
type Store struct {
	path string
	now  func() time.Time

	mu      sync.RWMutex
	current *Session
}

// Open loads the session at path. A missing or unreadable file yields an
// empty store.
func Open(path string) *Store {
	s := &Store{path: path, now: time.Now}
	s.current = s.read()
	return s
}

// Path returns the session file location.
func (s *Store) Path() string {
	return s.path
}

// Current returns the live session or ErrNoSession / ErrExpired.
func (s *Store) Current() (Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil || strings.TrimSpace(s.current.Token) == "" {
		return Session{}, ErrNoSession
	}
	if !s.now().Before(s.current.ExpiresAt) {
		return Session{}, ErrExpired
	}
	return *s.current, nil
}

// Token implements api.TokenSource.
func (s *Store) Token() (string, bool) {
	sess, err := s.Current()
	if err != nil {
		return "", false
	}
	return sess.Token, true
}

// Save stores a fresh login and writes it to disk.
func (s *Store) Save(resp api.AuthResponse) (Session, error) {
	token := strings.TrimSpace(resp.Token)
	if token == "" {
		return Session{}, fmt.Errorf("auth response has no token")
	}
	sess := Session{
		Token:     token,
		ExpiresAt: expiry(token, s.now()),
		Vendor:    resp.Vendor,
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return Session{}, fmt.Errorf("create session dir: %w", err)
	}
	data, err := toml.Marshal(sess)
	if err != nil {
		return Session{}, fmt.Errorf("marshal session: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return Session{}, fmt.Errorf("write session: %w", err)
	}

	s.mu.Lock()
	s.current = &sess
	s.mu.Unlock()
	return sess, nil
}

// Clear forgets the session and removes the file.
func (s *Store) Clear() error {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

func (s *Store) read() *Session {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil
	}
	var sess Session
	if err := toml.Unmarshal(data, &sess); err != nil {
		return nil
	}
	return &sess
}

// expiry caps the fixed session window by the token's exp claim. Tokens that
// are not JWTs get the fixed window.
func expiry(token string, now time.Time) time.Time {
	deadline := now.Add(Lifetime)
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return deadline
	}
	if claims.ExpiresAt != nil && claims.ExpiresAt.Time.Before(deadline) {
		return claims.ExpiresAt.Time
	}
	return deadline
}
