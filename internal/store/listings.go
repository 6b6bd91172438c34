package store

import (
	"encoding/json"
	"fmt"
	"os"

	"homematch/internal/model"
)

// FileStore persists parsed listing records as an indented JSON array so
// the file stays human-readable and diffable. Records are immutable once
// written; a new batch replaces the file wholesale.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore for the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the location of the listing file.
func (s *FileStore) Path() string { return s.path }

// Save writes the records to the listing file.
func (s *FileStore) Save(records []model.ListingRecord) error {
	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal listings: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.path, err)
	}
	return nil
}

// Load reads the records back from the listing file.
func (s *FileStore) Load() ([]model.ListingRecord, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}
	var records []model.ListingRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", s.path, err)
	}
	return records, nil
}
