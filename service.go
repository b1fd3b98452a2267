package projscout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/coldbrook/projscout/ai"
	"github.com/coldbrook/projscout/ai/openai"
	"github.com/coldbrook/projscout/core"
	"github.com/coldbrook/projscout/index"
	"github.com/coldbrook/projscout/search"
	"github.com/coldbrook/projscout/storage"
)

// File names inside the data directory. The record file is written by the
// scraping collaborator (or the seeder); the cache belongs to this service.
const (
	RecordFileName = "projects.json"
	CacheFileName  = "embedding_cache.json"
)

// State describes how far the service has progressed toward serving
// searches.
type State int

const (
	// StateEmpty means no records are loaded yet.
	StateEmpty State = iota
	// StateStale means records are loaded but no matching embedding index
	// exists; an index build is required before searching.
	StateStale
	// StateIndexed means records and a matching embedding index are loaded.
	StateIndexed
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateStale:
		return "stale"
	case StateIndexed:
		return "indexed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Service is the composition root: it owns the record store, the embedding
// index, and the ranker, and exposes the search surface consumed by the UI
// layer.
//
// The service processes one call at a time (request/response); it is not
// safe to call Search concurrently with an in-progress rebuild. The old
// index stays live until a replacement is fully built, then a single
// assignment swaps it in, so a reader never observes a half-built index.
type Service struct {
	store     *storage.RecordStore
	builder   *index.Builder
	ranker    *search.Ranker
	aiConfig  *ai.Config
	cachePath string
	logger    *slog.Logger

	records []*core.ProjectRecord
	idx     *index.Index
	state   State
}

// ServiceOption configures a Service.
type ServiceOption func(*serviceOptions)

type serviceOptions struct {
	aiConfig    *ai.Config
	embedder    ai.Embedder
	buildConfig *index.BuildConfig
	logger      *slog.Logger
}

// WithAIConfig sets the embedding service configuration.
// Default is ai.DefaultConfig().
func WithAIConfig(cfg *ai.Config) ServiceOption {
	return func(o *serviceOptions) {
		o.aiConfig = cfg
	}
}

// WithEmbedder injects an embedder instead of constructing the default
// OpenAI-compatible one. Used by tests and by callers with their own client.
func WithEmbedder(embedder ai.Embedder) ServiceOption {
	return func(o *serviceOptions) {
		o.embedder = embedder
	}
}

// WithBuildConfig overrides the index builder's batching settings.
func WithBuildConfig(cfg index.BuildConfig) ServiceOption {
	return func(o *serviceOptions) {
		o.buildConfig = &cfg
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(o *serviceOptions) {
		o.logger = logger
	}
}

// NewService creates a search service rooted at dataDir. The directory holds
// both persisted artifacts (record file and embedding cache); it does not
// need to exist until the first save.
func NewService(dataDir string, opts ...ServiceOption) (*Service, error) {
	options := &serviceOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}
	if options.logger == nil {
		options.logger = slog.Default()
	}

	if err := options.aiConfig.Validate(); err != nil {
		return nil, err
	}

	embedder := options.embedder
	if embedder == nil {
		var err error
		embedder, err = openai.NewEmbedder(options.aiConfig)
		if err != nil {
			return nil, err
		}
	}

	builderOpts := []index.BuilderOption{index.WithLogger(options.logger)}
	if options.buildConfig != nil {
		builderOpts = append(builderOpts, index.WithBuildConfig(*options.buildConfig))
	}
	builder, err := index.NewBuilder(embedder, options.aiConfig, builderOpts...)
	if err != nil {
		return nil, err
	}

	ranker, err := search.NewRanker(embedder, search.WithLogger(options.logger))
	if err != nil {
		return nil, err
	}

	return &Service{
		store:     storage.NewRecordStore(filepath.Join(dataDir, RecordFileName), storage.WithLogger(options.logger)),
		builder:   builder,
		ranker:    ranker,
		aiConfig:  options.aiConfig,
		cachePath: filepath.Join(dataDir, CacheFileName),
		logger:    options.logger,
		state:     StateEmpty,
	}, nil
}

// LoadRecords reads the persisted record file and tries to adopt the
// persisted embedding cache. On success the service is Indexed when the
// cache matched the loaded record set, Stale otherwise.
// Storage errors (ErrDataMissing, ErrDataCorrupt) propagate unchanged.
func (s *Service) LoadRecords() error {
	records, err := s.store.Load()
	if err != nil {
		return err
	}

	s.records = records
	s.adoptCachedIndex()
	return nil
}

// SetRecords receives a fresh record set from the scraping collaborator,
// persists it, and re-evaluates the embedding cache. When only non-identity
// fields changed (same id set), the existing cache remains valid and the
// service stays Indexed without a rebuild.
func (s *Service) SetRecords(records []*core.ProjectRecord) error {
	if err := s.store.Save(records); err != nil {
		return err
	}

	s.records = records
	s.adoptCachedIndex()
	return nil
}

// adoptCachedIndex loads the persisted cache against the current records and
// moves to Indexed on success, Stale on any cache miss.
func (s *Service) adoptCachedIndex() {
	idx, err := index.Load(s.cachePath, s.aiConfig, s.records)
	if err != nil {
		if !errors.Is(err, index.ErrCacheMiss) {
			s.logger.Error("error loading embedding cache", "path", s.cachePath, "err", err)
		} else {
			s.logger.Debug("embedding cache not usable, index build required", "reason", err)
		}
		s.idx = nil
		s.state = StateStale
		return
	}

	s.logger.Info("adopted embedding cache", "path", s.cachePath, "records", idx.Len())
	s.idx = idx
	s.state = StateIndexed
}

// EnsureIndexReady makes the service searchable: it loads records when none
// are loaded yet and builds the embedding index when the cache did not
// cover the current record set. A no-op when already Indexed.
func (s *Service) EnsureIndexReady(ctx context.Context) error {
	switch s.state {
	case StateIndexed:
		return nil
	case StateEmpty:
		if err := s.LoadRecords(); err != nil {
			return err
		}
		if s.state == StateIndexed {
			return nil
		}
	}
	return s.RebuildIndex(ctx)
}

// RebuildIndex recomputes every embedding and persists the cache. The
// previous index keeps serving until the replacement is complete. Loads
// records first when called on an Empty service.
func (s *Service) RebuildIndex(ctx context.Context) error {
	if s.state == StateEmpty {
		if err := s.LoadRecords(); err != nil {
			return err
		}
	}

	idx, err := s.builder.Build(ctx, s.records)
	if err != nil {
		return err
	}

	if err := idx.Save(s.cachePath); err != nil {
		// The cache is an optimization; a failed save costs a rebuild on
		// the next start, not correctness
		s.logger.Warn("failed to persist embedding cache", "path", s.cachePath, "err", err)
	}

	// Single-assignment swap
	s.idx = idx
	s.state = StateIndexed
	return nil
}

// Search ranks the loaded records against the query and returns at most
// topK results. Only valid once the service is Indexed; otherwise it fails
// with ErrIndexNotReady to prompt an index build.
func (s *Service) Search(ctx context.Context, query string, topK int) ([]*core.SearchResult, error) {
	if s.state != StateIndexed || s.idx == nil {
		return nil, fmt.Errorf("%w: service is %s", ErrIndexNotReady, s.state)
	}
	return s.ranker.Rank(ctx, query, s.idx, s.records, topK)
}

// RecordCount returns the number of loaded records.
func (s *Service) RecordCount() int {
	return len(s.records)
}

// State returns the service's current lifecycle state.
func (s *Service) State() State {
	return s.state
}

// RecordPath returns the location of the persisted record file.
func (s *Service) RecordPath() string {
	return s.store.Path()
}

// CachePath returns the location of the persisted embedding cache.
func (s *Service) CachePath() string {
	return s.cachePath
}
