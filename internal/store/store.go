// Package store persists the ledger snapshot (contacts, obligations and
// settings) as a YAML file.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"fjacquet/lendtrack/internal/ledgererror"
	"fjacquet/lendtrack/internal/logging"
	"fjacquet/lendtrack/internal/models"

	"gopkg.in/yaml.v3"
)

// SnapshotStore loads and saves the ledger snapshot.
type SnapshotStore interface {
	Load() (*Snapshot, error)
	Save(snapshot *Snapshot) error
}

// FileStore keeps the snapshot in a single YAML file.
type FileStore struct {
	DataFile string
	logger   logging.Logger
}

// NewFileStore creates a store for the given data file.
func NewFileStore(dataFile string, logger logging.Logger) *FileStore {
	return &FileStore{DataFile: dataFile, logger: logger}
}

// FindDataFile looks for the data file in standard locations
func (s *FileStore) FindDataFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("data", filename),
	}
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}

	// Fall back to ~/.lendtrack/
	homeDir, err := os.UserHomeDir()
	if err == nil {
		dataPath := filepath.Join(homeDir, ".lendtrack", filename)
		if _, err := os.Stat(dataPath); err == nil {
			return dataPath, nil
		}
	}

	return "", os.ErrNotExist
}

func (s *FileStore) filename() string {
	if s.DataFile == "" {
		return "lendtrack.yaml"
	}
	return s.DataFile
}

// Load reads the snapshot. A missing file yields an empty snapshot.
func (s *FileStore) Load() (*Snapshot, error) {
	filename := s.filename()

	filePath, err := s.FindDataFile(filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("Data file not found, starting with an empty ledger",
				logging.F(logging.FieldFile, filename))
			return &Snapshot{}, nil
		}
		return nil, &ledgererror.StoreError{FilePath: filename, Op: "resolve", Err: err}
	}

	data, err := os.ReadFile(filePath) // #nosec G304 -- path comes from configuration
	if err != nil {
		return nil, &ledgererror.StoreError{FilePath: filePath, Op: "read", Err: err}
	}

	var snapshot Snapshot
	if err := yaml.Unmarshal(data, &snapshot); err != nil {
		return nil, &ledgererror.StoreError{FilePath: filePath, Op: "parse", Err: err}
	}
	if err := snapshot.normalize(); err != nil {
		return nil, &ledgererror.StoreError{FilePath: filePath, Op: "validate", Err: err}
	}

	s.logger.Debug("Loaded snapshot",
		logging.F(logging.FieldFile, filePath),
		logging.F(logging.FieldCount, len(snapshot.Transactions)))
	return &snapshot, nil
}

// Save writes the snapshot, creating parent directories as needed. The
// file is replaced atomically through a temporary sibling.
func (s *FileStore) Save(snapshot *Snapshot) error {
	if snapshot == nil {
		return &ledgererror.ValidationError{Field: "snapshot", Reason: "must not be nil"}
	}

	filePath, err := s.FindDataFile(s.filename())
	if err != nil {
		filePath = s.filename()
	}

	if err := os.MkdirAll(filepath.Dir(filePath), models.PermissionDirectory); err != nil {
		return &ledgererror.StoreError{FilePath: filePath, Op: "mkdir", Err: err}
	}

	data, err := yaml.Marshal(snapshot)
	if err != nil {
		return &ledgererror.StoreError{FilePath: filePath, Op: "marshal", Err: err}
	}

	tmp := filePath + ".tmp"
	if err := os.WriteFile(tmp, data, models.PermissionDataFile); err != nil {
		return &ledgererror.StoreError{FilePath: filePath, Op: "write", Err: err}
	}
	if err := os.Rename(tmp, filePath); err != nil {
		_ = os.Remove(tmp)
		return &ledgererror.StoreError{FilePath: filePath, Op: "write", Err: fmt.Errorf("replacing data file: %w", err)}
	}

	s.logger.Debug("Saved snapshot",
		logging.F(logging.FieldFile, filePath),
		logging.F(logging.FieldCount, len(snapshot.Transactions)))
	return nil
}
