package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"

	"github.com/felixgeelhaar/omsctl/internal/security"
)

// ErrCorrupt is returned by Load when the session file cannot be decoded.
// Callers treat it as "no session".
var ErrCorrupt = errors.New("session file is corrupt")

const fileMode os.FileMode = 0o600

// document is the on-disk layout: one field per fixed key.
type document struct {
	AccessToken  string       `json:"access_token,omitempty"`
	RefreshToken string       `json:"refresh_token,omitempty"`
	User         *UserProfile `json:"user,omitempty"`
}

// FileStore persists the session as a single JSON document.
type FileStore struct {
	fs     afero.Fs
	path   string
	sealer *security.Sealer
	mu     sync.Mutex
}

// FileOption configures a FileStore
type FileOption func(*FileStore)

// WithFs sets the filesystem, defaulting to the OS filesystem
func WithFs(fs afero.Fs) FileOption {
	return func(s *FileStore) {
		s.fs = fs
	}
}

// WithSealer encrypts the document at rest
func WithSealer(sealer *security.Sealer) FileOption {
	return func(s *FileStore) {
		s.sealer = sealer
	}
}

// NewFileStore creates a store backed by the file at path
func NewFileStore(path string, opts ...FileOption) *FileStore {
	s := &FileStore{
		fs:   afero.NewOsFs(),
		path: path,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the session file location
func (s *FileStore) Path() string {
	return s.path
}

// Save writes the session atomically through a temporary file and rename,
// so readers never observe a partial session.
func (s *FileStore) Save(sess Session) error {
	if !sess.Valid() {
		return ErrIncomplete
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user := sess.User
	data, err := json.MarshalIndent(document{
		AccessToken:  sess.AccessToken,
		RefreshToken: sess.RefreshToken,
		User:         &user,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if s.sealer != nil {
		data, err = s.sealer.Seal(data)
		if err != nil {
			return fmt.Errorf("failed to seal session: %w", err)
		}
	}

	dir := filepath.Dir(s.path)
	if err := s.fs.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	tmp, err := afero.TempFile(s.fs, dir, ".session-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = s.fs.Remove(tmpName)
		return fmt.Errorf("failed to write session: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = s.fs.Remove(tmpName)
		return fmt.Errorf("failed to write session: %w", err)
	}
	if err := s.fs.Chmod(tmpName, fileMode); err != nil {
		_ = s.fs.Remove(tmpName)
		return fmt.Errorf("failed to set session permissions: %w", err)
	}
	if err := s.fs.Rename(tmpName, s.path); err != nil {
		_ = s.fs.Remove(tmpName)
		return fmt.Errorf("failed to replace session file: %w", err)
	}
	return nil
}

// Load reads the session. A missing file or a document missing any of the
// three keys is reported as ok=false with a nil error.
func (s *FileStore) Load() (Session, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := afero.ReadFile(s.fs, s.path)
	if errors.Is(err, os.ErrNotExist) {
		return Session{}, false, nil
	}
	if err != nil {
		return Session{}, false, fmt.Errorf("failed to read session file: %w", err)
	}

	if security.IsSealed(data) {
		if s.sealer == nil {
			return Session{}, false, fmt.Errorf("%w: file is sealed but no passphrase is configured", ErrCorrupt)
		}
		data, err = s.sealer.Open(data)
		if err != nil {
			return Session{}, false, fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Session{}, false, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if doc.User == nil {
		return Session{}, false, nil
	}

	sess := Session{
		AccessToken:  doc.AccessToken,
		RefreshToken: doc.RefreshToken,
		User:         *doc.User,
	}
	if !sess.Valid() {
		return Session{}, false, nil
	}
	return sess, true, nil
}

// Clear removes the session file. Clearing an absent session is not an error.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.fs.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}
