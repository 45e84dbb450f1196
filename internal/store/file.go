package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caseworks/intake/internal/logger"
	"github.com/caseworks/intake/internal/schema"
)

const recordFileName = "application.json"

// FileStore persists the application record as JSON under the data
// directory. It is the default backend.
type FileStore struct {
	dataDir string
}

// NewFileStore returns a store rooted at dataDir. The directory is
// created lazily on first save.
func NewFileStore(dataDir string) *FileStore {
	return &FileStore{dataDir: dataDir}
}

func (s *FileStore) path() string {
	return filepath.Join(s.dataDir, recordFileName)
}

// Load reads the saved record. A missing or unreadable file yields a
// default record so a corrupt save never blocks startup.
func (s *FileStore) Load() (*Record, error) {
	path := s.path()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultRecord(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("Failed to read application record: %v", err)
		return DefaultRecord(), nil
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		logger.Warn("Failed to parse application record JSON: %v", err)
		return DefaultRecord(), nil
	}

	if rec.Values == nil {
		rec.Values = schema.Values{}
	}
	if rec.Step < 1 {
		rec.Step = 1
	}
	return &rec, nil
}

// Save writes the record. Empty records clear the file instead of
// writing a blank snapshot.
func (s *FileStore) Save(rec *Record) error {
	if rec.Empty() {
		return s.Clear()
	}

	if err := os.MkdirAll(s.dataDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling application record: %w", err)
	}

	if err := os.WriteFile(s.path(), data, 0644); err != nil {
		return fmt.Errorf("writing application record: %w", err)
	}

	logger.Debug("Application record saved to %s", s.path())
	return nil
}

// Clear removes the saved record if present.
func (s *FileStore) Clear() error {
	if err := os.Remove(s.path()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing application record: %w", err)
	}
	return nil
}

// Close is a no-op for the file backend.
func (s *FileStore) Close() error {
	return nil
}
