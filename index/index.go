package index

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/coldbrook/projscout/ai"
	"github.com/coldbrook/projscout/core"
)

// Index holds one embedding vector per project record, keyed by record id.
// An Index is immutable after construction; a rebuild produces a fresh Index
// that callers swap in with a single assignment, so concurrent readers never
// observe a partially built index.
type Index struct {
	model     string
	dimension int
	ids       []string // record order at build time
	vectors   map[string][]float32
}

// Model returns the embedding model the index was built with.
func (idx *Index) Model() string {
	return idx.model
}

// Dimension returns the vector width of every entry.
func (idx *Index) Dimension() int {
	return idx.dimension
}

// Len returns the number of indexed records.
func (idx *Index) Len() int {
	return len(idx.ids)
}

// Vector returns the embedding for a record id.
func (idx *Index) Vector(recordID string) ([]float32, bool) {
	v, ok := idx.vectors[recordID]
	return v, ok
}

// RecordIDs returns the indexed record ids in build order.
func (idx *Index) RecordIDs() []string {
	ids := make([]string, len(idx.ids))
	copy(ids, idx.ids)
	return ids
}

// Fingerprint returns the fingerprint of the record-id set the index was
// built against. Compared on cache load to detect stale caches.
func (idx *Index) Fingerprint() string {
	return core.FingerprintRecordSet(idx.model, idx.ids)
}

// BuildConfig controls how the index builder batches and parallelizes
// embedding calls.
type BuildConfig struct {
	// BatchSize is the number of record texts sent per embedding call.
	BatchSize int

	// PoolSize is the number of embedding calls in flight at once.
	PoolSize int

	// MaxRetries is the maximum attempt count per embedding call.
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff between retries.
	RetryDelay time.Duration
}

// DefaultBuildConfig returns build settings suitable for a local embedding
// service and a record set of a few hundred entries.
func DefaultBuildConfig() BuildConfig {
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	return BuildConfig{
		BatchSize:  32,
		PoolSize:   poolSize,
		MaxRetries: 3,
		RetryDelay: 1 * time.Second,
	}
}

// Builder constructs embedding indexes from project records.
type Builder struct {
	embedder ai.Embedder
	aiConfig *ai.Config
	build    BuildConfig
	logger   *slog.Logger
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) BuilderOption {
	return func(b *Builder) error {
		if logger == nil {
			logger = slog.Default()
		}
		b.logger = logger
		return nil
	}
}

// WithBuildConfig overrides the default batching settings.
func WithBuildConfig(cfg BuildConfig) BuilderOption {
	return func(b *Builder) error {
		if cfg.BatchSize < 1 {
			cfg.BatchSize = 1
		}
		if cfg.PoolSize < 1 {
			cfg.PoolSize = 1
		}
		if cfg.MaxRetries < 1 {
			cfg.MaxRetries = 1
		}
		b.build = cfg
		return nil
	}
}

// NewBuilder creates an index builder for the given embedder and AI config.
func NewBuilder(embedder ai.Embedder, aiConfig *ai.Config, opts ...BuilderOption) (*Builder, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if aiConfig == nil {
		return nil, ErrConfigRequired
	}
	if err := aiConfig.Validate(); err != nil {
		return nil, err
	}

	b := &Builder{
		embedder: embedder,
		aiConfig: aiConfig,
		build:    DefaultBuildConfig(),
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, err
		}
	}

	return b, nil
}

// Build computes an embedding for every record and returns a fresh Index.
// Record texts are embedded in batches on a bounded worker pool; the call
// blocks until every batch completes. Vectors are normalized to unit length
// so cosine scoring reduces to a dot product.
//
// Building is deterministic: the same records and the same model produce
// identical vectors, which is what makes the persisted cache reproducible.
func (b *Builder) Build(ctx context.Context, records []*core.ProjectRecord) (*Index, error) {
	start := time.Now()

	texts := make([]string, len(records))
	ids := make([]string, len(records))
	for i, record := range records {
		texts[i] = BuildEmbeddingText(record)
		ids[i] = record.ID
	}

	vectors := make([][]float32, len(records))

	pool, err := ants.NewPool(b.build.PoolSize)
	if err != nil {
		return nil, err
	}
	defer pool.Release()

	var (
		wg       sync.WaitGroup
		errMu    sync.Mutex
		firstErr error
	)
	setErr := func(err error) {
		errMu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		errMu.Unlock()
	}

	for offset := 0; offset < len(texts); offset += b.build.BatchSize {
		end := offset + b.build.BatchSize
		if end > len(texts) {
			end = len(texts)
		}
		batchStart, batchEnd := offset, end

		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			if err := b.embedBatch(ctx, texts[batchStart:batchEnd], vectors[batchStart:batchEnd]); err != nil {
				setErr(fmt.Errorf("batch %d-%d: %w", batchStart, batchEnd, err))
			}
		})
		if submitErr != nil {
			wg.Done()
			setErr(submitErr)
			break
		}
	}

	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}

	byID := make(map[string][]float32, len(records))
	for i, id := range ids {
		byID[id] = vectors[i]
	}

	b.logger.Info("built embedding index",
		"records", len(records),
		"model", b.aiConfig.EmbeddingModel,
		"dimension", b.aiConfig.Dimension,
		"elapsed", time.Since(start))

	return &Index{
		model:     b.aiConfig.EmbeddingModel,
		dimension: b.aiConfig.Dimension,
		ids:       ids,
		vectors:   byID,
	}, nil
}

// embedBatch embeds one slice of texts and writes normalized vectors into
// the matching positions of out. Each batch owns a disjoint range of out, so
// no locking is needed for the writes.
func (b *Builder) embedBatch(ctx context.Context, texts []string, out [][]float32) error {
	var embeddings [][]float32
	err := Retry(ctx, func() error {
		var err error
		embeddings, err = b.embedder.EmbedTexts(ctx, texts)
		return err
	}, b.build.MaxRetries, b.build.RetryDelay)
	if err != nil {
		return fmt.Errorf("failed to generate embeddings after %d attempts: %w", b.build.MaxRetries, err)
	}

	if len(embeddings) != len(texts) {
		return fmt.Errorf("embedding count mismatch: expected %d, got %d", len(texts), len(embeddings))
	}

	for i, vector := range embeddings {
		if len(vector) != b.aiConfig.Dimension {
			return fmt.Errorf("%w: model %s returned %d-dimensional vector, expected %d",
				core.ErrDimensionMismatch, b.aiConfig.EmbeddingModel, len(vector), b.aiConfig.Dimension)
		}
		out[i] = NormalizeVector(vector)
	}
	return nil
}
