package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/coldbrook/projscout/core"
)

// RecordStore persists the scraped project records as a JSON file holding a
// single top-level array of record objects, the format written by the
// scraping collaborator.
//
// Known limitation: the store trusts id uniqueness from the upstream source
// and performs no deduplication. If the scraper ever emits duplicate ids,
// the last occurrence wins at display time.
type RecordStore struct {
	path   string
	logger *slog.Logger
}

// Option configures a RecordStore.
type Option func(*RecordStore)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *RecordStore) {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
	}
}

// NewRecordStore creates a record store backed by the file at path.
// The file does not need to exist yet.
func NewRecordStore(path string, opts ...Option) *RecordStore {
	s := &RecordStore{
		path:   path,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the location of the persisted record file.
func (s *RecordStore) Path() string {
	return s.path
}

// Load reads the persisted record file.
// Returns ErrDataMissing if the file is absent and ErrDataCorrupt (wrapping
// the cause) if it cannot be parsed or a record fails validation.
func (s *RecordStore) Load() ([]*core.ProjectRecord, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDataMissing, s.path)
		}
		return nil, fmt.Errorf("read record file: %w", err)
	}

	var records []*core.ProjectRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDataCorrupt, err)
	}

	if err := core.ValidateProjectRecords(records); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDataCorrupt, err)
	}

	s.logger.Debug("loaded record file", "path", s.path, "count", len(records))
	return records, nil
}

// Save overwrites the persisted record file atomically: the records are
// written to a temporary file in the same directory and renamed into place,
// so a crash mid-write never leaves a truncated file.
func (s *RecordStore) Save(records []*core.ProjectRecord) error {
	if err := core.ValidateProjectRecords(records); err != nil {
		return err
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal records: %w", err)
	}

	if err := WriteFileAtomic(s.path, data); err != nil {
		return fmt.Errorf("write record file: %w", err)
	}

	s.logger.Debug("saved record file", "path", s.path, "count", len(records))
	return nil
}

// WriteFileAtomic writes data to a temp file next to path and renames it into
// place. The temp file must live in the same directory so the rename stays on
// one filesystem. Used for every persisted artifact (record file, embedding
// cache).
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
