package index

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/coldbrook/projscout/ai"
	"github.com/coldbrook/projscout/core"
	"github.com/coldbrook/projscout/storage"
)

// cacheFile is the persisted shape of an embedding index: the record-id set
// the vectors were computed against plus one entry per id. Storing the id
// set and its fingerprint lets Load decide validity without recomputing any
// embedding.
type cacheFile struct {
	Model       string               `json:"model"`
	Dimension   int                  `json:"dimension"`
	Fingerprint string               `json:"fingerprint"`
	RecordIDs   []string             `json:"record_ids"`
	Entries     []core.EmbeddingEntry `json:"entries"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// Load restores a previously persisted index and validates it against the
// current record set. It returns ErrCacheMiss when the file is absent or
// unreadable, was built with a different model or dimension, or its stored
// record-id set no longer matches the current records. A cache miss is the
// signal to rebuild, never an excuse to serve stale results.
func Load(path string, aiConfig *ai.Config, records []*core.ProjectRecord) (*Index, error) {
	if aiConfig == nil {
		return nil, ErrConfigRequired
	}
	if err := aiConfig.Validate(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrCacheMiss, path)
	}

	var cached cacheFile
	if err := json.Unmarshal(data, &cached); err != nil {
		// Corrupt cache files trigger a rebuild rather than an error
		slog.Debug("embedding cache unreadable, will rebuild", "path", path, "err", err)
		return nil, fmt.Errorf("%w: unreadable cache: %s", ErrCacheMiss, path)
	}

	if cached.Model != aiConfig.EmbeddingModel || cached.Dimension != aiConfig.Dimension {
		return nil, fmt.Errorf("%w: cache built with model %s/%d, want %s/%d",
			ErrCacheMiss, cached.Model, cached.Dimension, aiConfig.EmbeddingModel, aiConfig.Dimension)
	}

	currentIDs := core.RecordIDs(records)
	if cached.Fingerprint != core.FingerprintRecordSet(aiConfig.EmbeddingModel, currentIDs) {
		return nil, fmt.Errorf("%w: record set changed since cache was built", ErrCacheMiss)
	}

	vectors := make(map[string][]float32, len(cached.Entries))
	for _, entry := range cached.Entries {
		if len(entry.Vector) != cached.Dimension {
			return nil, fmt.Errorf("%w: entry %s has %d-dimensional vector, expected %d",
				ErrCacheMiss, entry.RecordID, len(entry.Vector), cached.Dimension)
		}
		vectors[entry.RecordID] = entry.Vector
	}

	// Every current record must have a vector (1:1 correspondence by id)
	for _, id := range currentIDs {
		if _, ok := vectors[id]; !ok {
			return nil, fmt.Errorf("%w: no vector for record %s", ErrCacheMiss, id)
		}
	}

	return &Index{
		model:     cached.Model,
		dimension: cached.Dimension,
		ids:       currentIDs,
		vectors:   vectors,
	}, nil
}

// Save persists the index atomically so validity can be checked on load
// without recomputing anything.
func (idx *Index) Save(path string) error {
	entries := make([]core.EmbeddingEntry, 0, len(idx.ids))
	for _, id := range idx.ids {
		entries = append(entries, core.EmbeddingEntry{
			RecordID: id,
			Vector:   idx.vectors[id],
		})
	}

	cached := cacheFile{
		Model:       idx.model,
		Dimension:   idx.dimension,
		Fingerprint: idx.Fingerprint(),
		RecordIDs:   idx.RecordIDs(),
		Entries:     entries,
		UpdatedAt:   time.Now().UTC(),
	}

	data, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("marshal embedding cache: %w", err)
	}

	if err := storage.WriteFileAtomic(path, data); err != nil {
		return fmt.Errorf("write embedding cache: %w", err)
	}
	return nil
}
