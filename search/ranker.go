package search

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/coldbrook/projscout/ai"
	"github.com/coldbrook/projscout/core"
	"github.com/coldbrook/projscout/index"
)

// Ranker scores project records against a query by cosine similarity of
// their embeddings. Aside from the query-embedding call it is a pure
// function of its inputs: no caches, no side effects.
type Ranker struct {
	embedder ai.Embedder
	logger   *slog.Logger
}

// Option configures a Ranker.
type Option func(*Ranker) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Ranker) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewRanker creates a ranker. The embedder must be the same model the index
// was built with; mismatched models produce meaningless scores, which the
// ranker cannot detect beyond dimension checking.
func NewRanker(embedder ai.Embedder, opts ...Option) (*Ranker, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	r := &Ranker{
		embedder: embedder,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Rank embeds the query, scores every record by cosine similarity against
// its indexed vector, and returns at most topK results sorted by descending
// score. Ties keep the original record order, so results are deterministic
// across runs. A topK of zero or less is a harmless degenerate case and
// yields an empty result rather than an error.
func (r *Ranker) Rank(ctx context.Context, query string, idx *index.Index, records []*core.ProjectRecord, topK int) ([]*core.SearchResult, error) {
	if idx == nil {
		return nil, ErrIndexRequired
	}
	if topK <= 0 {
		return []*core.SearchResult{}, nil
	}

	queryVector, err := r.embedder.EmbedText(ctx, query)
	if err != nil {
		r.logger.Error("error generating embedding for query", "query", query, "err", err)
		return nil, err
	}

	if len(queryVector) != idx.Dimension() {
		return nil, fmt.Errorf("%w: query vector is %d-dimensional, index is %d-dimensional",
			core.ErrDimensionMismatch, len(queryVector), idx.Dimension())
	}

	results := make([]*core.SearchResult, 0, len(records))
	for _, record := range records {
		vector, ok := idx.Vector(record.ID)
		if !ok {
			// The service keeps index and records in 1:1 correspondence;
			// a gap here means the caller bypassed it. Score zero.
			r.logger.Warn("record has no indexed vector", "id", record.ID)
		}
		results = append(results, &core.SearchResult{
			Record: record,
			Score:  CosineSimilarity(queryVector, vector),
		})
	}

	// Stable sort keeps original record order for equal scores
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > topK {
		results = results[:topK]
	}

	return results, nil
}

// CosineSimilarity computes the cosine of the angle between two vectors:
// dot product divided by the product of magnitudes. Defined as 0 when either
// vector has zero magnitude (guards empty-text records) or when the widths
// differ.
func CosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	denom := math.Sqrt(normA) * math.Sqrt(normB)
	if denom == 0 {
		return 0
	}

	return float32(dot / denom)
}
