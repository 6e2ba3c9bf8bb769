package client

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Session holds the access token and user profile obtained at login.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Authenticated reports whether the session carries a usable token.
func (s *Session) Authenticated() bool {
	return s != nil && s.Token != ""
}

// SessionStore persists a session between invocations.
type SessionStore interface {
	Load() (*Session, error)
	Save(session *Session) error
	Clear() error
}

// FileStore persists the session as a JSON file on disk.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore writing to the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultSessionPath returns the conventional session file location under the
// user's config directory.
func DefaultSessionPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving config dir: %w", err)
	}
	return filepath.Join(dir, "gramkosh", "session.json"), nil
}

// Load reads the stored session. A missing file yields an empty session, not
// an error.
func (f *FileStore) Load() (*Session, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Session{}, nil
		}
		return nil, fmt.Errorf("reading session file: %w", err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("parsing session file: %w", err)
	}
	return &session, nil
}

// Save writes the session to disk, creating parent directories as needed. The
// file is user-readable only since it contains the access token.
func (f *FileStore) Save(session *Session) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("creating session dir: %w", err)
	}

	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0o600); err != nil {
		return fmt.Errorf("writing session file: %w", err)
	}
	return nil
}

// Clear removes the stored session.
func (f *FileStore) Clear() error {
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing session file: %w", err)
	}
	return nil
}

// MemoryStore keeps the session in memory. Used in tests and wherever
// persistence across runs is not wanted.
type MemoryStore struct {
	session Session
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load returns the in-memory session.
func (m *MemoryStore) Load() (*Session, error) {
	session := m.session
	return &session, nil
}

// Save replaces the in-memory session.
func (m *MemoryStore) Save(session *Session) error {
	m.session = *session
	return nil
}

// Clear resets the in-memory session.
func (m *MemoryStore) Clear() error {
	m.session = Session{}
	return nil
}
