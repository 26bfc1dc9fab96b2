package auth

import (
	"sync"
)

// MockStore implements CredentialStore for testing purposes
type MockStore struct {
	creds *Credentials
	mu    sync.Mutex

	// Error injection for testing
	LoadError error
	SaveError error

	LoadCalls int
	SaveCalls int
}

// NewMockStore creates a new, empty mock credential store
func NewMockStore() *MockStore {
	return &MockStore{}
}

// NewMockStoreWith creates a mock store that already holds creds
func NewMockStoreWith(creds *Credentials) *MockStore {
	c := *creds
	return &MockStore{creds: &c}
}

// Load returns the stored credentials or ErrCredentialsNotFound
func (m *MockStore) Load() (*Credentials, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LoadCalls++
	if m.LoadError != nil {
		return nil, m.LoadError
	}
	if m.creds == nil {
		return nil, ErrCredentialsNotFound
	}

	c := *m.creds
	return &c, nil
}

// Save stores a copy of creds
func (m *MockStore) Save(creds *Credentials) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SaveCalls++
	if m.SaveError != nil {
		return m.SaveError
	}

	c := *creds
	m.creds = &c
	return nil
}

// Stored returns a copy of the held credentials, or nil
func (m *MockStore) Stored() *Credentials {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.creds == nil {
		return nil
	}
	c := *m.creds
	return &c
}
