package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// FileExtension is appended to every saved image
const FileExtension = ".jpg"

// ErrUnsafeFileName is returned for names that would leave the output directory
var ErrUnsafeFileName = errors.New("file name escapes output directory")

// Manager handles file storage operations for one output directory
type Manager struct {
	outputDir string
	saved     map[string]int64
	mu        sync.RWMutex
}

// NewManager creates a new storage manager, creating outputDir if needed
func NewManager(outputDir string) (*Manager, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	return &Manager{
		outputDir: outputDir,
		saved:     make(map[string]int64),
	}, nil
}

// SanitizeQuery replaces every rune that is not an ASCII letter or digit with "-".
// Runs of such runes are not collapsed.
func SanitizeQuery(query string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '-'
		}
	}, query)
}

// FileName returns the file name for a photo found by query
func FileName(query, photoID string) string {
	return SanitizeQuery(query) + "-" + photoID + FileExtension
}

// ValidateFileName rejects names that are empty, contain a path separator,
// or refer to a parent directory
func ValidateFileName(name string) error {
	if name == "" || name == "." || strings.Contains(name, "..") ||
		strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return fmt.Errorf("%w: %q", ErrUnsafeFileName, name)
	}
	return nil
}

// Path returns the full path of filename inside the output directory
func (m *Manager) Path(filename string) string {
	return filepath.Join(m.outputDir, filename)
}

// SavePhoto streams r into filename and returns the number of bytes written.
// Data is written to a uniquely named temporary file first and renamed into place.
func (m *Manager) SavePhoto(r io.Reader, filename string) (int64, error) {
	if err := ValidateFileName(filename); err != nil {
		return 0, err
	}
	target := m.Path(filename)

	tempFile := fmt.Sprintf("%s.%s.tmp", target, uuid.NewString())
	out, err := os.Create(tempFile)
	if err != nil {
		return 0, fmt.Errorf("failed to create temporary file: %w", err)
	}

	n, err := io.Copy(out, r)
	closeErr := out.Close()

	if err != nil {
		os.Remove(tempFile)
		return n, fmt.Errorf("failed to save photo data: %w", err)
	}

	if closeErr != nil {
		os.Remove(tempFile)
		return n, fmt.Errorf("failed to close file: %w", closeErr)
	}

	if err := os.Rename(tempFile, target); err != nil {
		os.Remove(tempFile)
		return n, fmt.Errorf("failed to rename temporary file: %w", err)
	}

	m.mu.Lock()
	m.saved[filename] = n
	m.mu.Unlock()

	return n, nil
}

// GetOutputDir returns the output directory path
func (m *Manager) GetOutputDir() string {
	return m.outputDir
}

// SavedFiles returns the sorted names of files saved by this manager
func (m *Manager) SavedFiles() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	files := make([]string, 0, len(m.saved))
	for name := range m.saved {
		files = append(files, name)
	}
	sort.Strings(files)
	return files
}
