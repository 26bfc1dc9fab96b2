package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// CredentialsFileName is the file written inside the credentials directory
const CredentialsFileName = "config.json"

// CredentialStore loads and saves the single stored key pair
type CredentialStore interface {
	// Load returns ErrCredentialsNotFound when nothing is stored and
	// a *ReadError when stored data is unusable.
	Load() (*Credentials, error)

	// Save overwrites any stored credentials
	Save(creds *Credentials) error
}

// FileStore keeps credentials as indented JSON in <dir>/config.json
type FileStore struct {
	dir  string
	path string
}

// NewFileStore creates a file-backed store rooted at dir
func NewFileStore(dir string) *FileStore {
	return &FileStore{
		dir:  dir,
		path: filepath.Join(dir, CredentialsFileName),
	}
}

// Path returns the credential file location
func (s *FileStore) Path() string {
	return s.path
}

// EnsureDir creates the credentials directory if it doesn't exist
func (s *FileStore) EnsureDir() error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return nil
}

// Load reads stored credentials
func (s *FileStore) Load() (*Credentials, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrCredentialsNotFound
		}
		return nil, &ReadError{Path: s.path, Err: err}
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, &ReadError{Path: s.path, Err: fmt.Errorf("%w: %v", ErrMalformedCredentials, err)}
	}
	if err := creds.Validate(); err != nil {
		return nil, &ReadError{Path: s.path, Err: fmt.Errorf("%w: %v", ErrMalformedCredentials, err)}
	}

	return &creds, nil
}

// Save writes the credentials, creating the directory first
func (s *FileStore) Save(creds *Credentials) error {
	if creds == nil {
		return errors.New("credentials are nil")
	}

	if err := s.EnsureDir(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal credentials: %w", err)
	}

	if err := os.WriteFile(s.path, append(data, '\n'), 0600); err != nil {
		return fmt.Errorf("failed to write credentials: %w", err)
	}

	return nil
}
