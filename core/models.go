package core

import (
	"encoding/hex"
	"sort"

	"github.com/go-crypt/x/blake2b"
)

// ProjectRecord represents a single scraped research project.
// Records are immutable once scraped; identity is the ID field.
// JSON field names match the scraper's output file.
type ProjectRecord struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	URL         string `json:"url,omitempty"`
	Summary     string `json:"summary,omitempty"`
	Description string `json:"description,omitempty"`
	Authors     string `json:"authors,omitempty"`
	Topics      string `json:"topics,omitempty"`
	Date        string `json:"date,omitempty"`
	Status      string `json:"status,omitempty"`
}

// EmbeddingEntry pairs a record ID with its embedding vector.
// One entry exists per ProjectRecord; entries are recomputed whenever the
// record set or the embedding model changes.
type EmbeddingEntry struct {
	RecordID string    `json:"record_id"`
	Vector   []float32 `json:"vector"`
}

// SearchResult represents a ranked search hit with its relevance score.
// Derived per query, never persisted.
type SearchResult struct {
	Record *ProjectRecord
	Score  float32
}

// RecordIDs returns the IDs of the given records in their original order.
func RecordIDs(records []*ProjectRecord) []string {
	ids := make([]string, 0, len(records))
	for _, record := range records {
		if record == nil {
			continue
		}
		ids = append(ids, record.ID)
	}
	return ids
}

// FingerprintRecordSet generates a deterministic fingerprint for a record-id
// set under a given embedding model, using BLAKE2b hashing. The id order does
// not matter; identical sets under the same model produce identical
// fingerprints. Used to decide whether a persisted embedding cache is still
// valid for the current record set.
func FingerprintRecordSet(model string, ids []string) string {
	sorted := make([]string, len(ids))
	copy(sorted, ids)
	sort.Strings(sorted)

	h, _ := blake2b.New(16, nil)
	h.Write([]byte(model))
	for _, id := range sorted {
		// Separator byte prevents ambiguity between adjacent ids
		h.Write([]byte{0})
		h.Write([]byte(id))
	}
	return hex.EncodeToString(h.Sum(nil))
}
