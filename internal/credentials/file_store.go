package credentials

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	ierr "github.com/promokit/voucheradmin/internal/errors"
)

// FileStore persists the credential as a small JSON file, the CLI
// equivalent of the browser's local storage. Reads are served from memory;
// every write goes straight to disk.
type FileStore struct {
	mu    sync.RWMutex
	path  string
	state fileState
}

type fileState struct {
	Token    string `json:"token,omitempty"`
	Username string `json:"username,omitempty"`
}

// NewFileStore loads the store at path, creating parent directories on
// first write. A missing file is an empty credential, not an error.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, ierr.WithError(err).
			WithHint("Could not read the credentials file").
			Mark(ierr.ErrSystem)
	}

	if err := json.Unmarshal(data, &s.state); err != nil {
		return nil, ierr.WithError(err).
			WithHintf("Credentials file %s is corrupt", path).
			Mark(ierr.ErrSystem)
	}

	return s, nil
}

func (s *FileStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Token
}

func (s *FileStore) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Username
}

func (s *FileStore) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Token = token
	return s.flush()
}

func (s *FileStore) SetUsername(username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Username = username
	return s.flush()
}

func (s *FileStore) ClearToken() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Token = ""
	return s.flush()
}

func (s *FileStore) flush() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return ierr.WithError(err).
			WithHint("Could not create the credentials directory").
			Mark(ierr.ErrSystem)
	}

	data, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return ierr.WithError(err).Mark(ierr.ErrSystem)
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return ierr.WithError(err).
			WithHint("Could not write the credentials file").
			Mark(ierr.ErrSystem)
	}
	return nil
}
