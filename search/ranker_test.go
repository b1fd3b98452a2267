package search

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/coldbrook/projscout/ai"
	"github.com/coldbrook/projscout/ai/mock"
	"github.com/coldbrook/projscout/core"
	"github.com/coldbrook/projscout/index"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAIConfig(dim int) *ai.Config {
	return ai.NewConfig(
		ai.WithEmbeddingModel("all-minilm"),
		ai.WithDimension(dim),
	)
}

func testRecords() []*core.ProjectRecord {
	return []*core.ProjectRecord{
		{
			ID:      "p1",
			Title:   "Diabetes study",
			Summary: "adherence in elderly",
		},
		{
			ID:      "p2",
			Title:   "Cardiac surgery outcomes",
			Summary: "post-op recovery",
		},
		{
			ID:      "p3",
			Title:   "Cancer screening uptake",
			Summary: "screening participation in deprived areas",
		},
	}
}

// buildIndex builds an index over records with the given embedder.
func buildIndex(t *testing.T, embedder ai.Embedder, cfg *ai.Config, records []*core.ProjectRecord) *index.Index {
	t.Helper()
	builder, err := index.NewBuilder(embedder, cfg)
	require.NoError(t, err)
	idx, err := builder.Build(context.Background(), records)
	require.NoError(t, err)
	return idx
}

// topicEmbedder embeds text onto four keyword axes so tests can control
// which records land near which queries.
func topicEmbedder() *mock.MockEmbedder {
	vectorFor := func(text string) []float32 {
		lower := strings.ToLower(text)
		v := make([]float32, 4)
		if strings.Contains(lower, "diabetes") {
			v[0] = 1
		}
		if strings.Contains(lower, "adherence") {
			v[1] = 1
		}
		if strings.Contains(lower, "cardiac") || strings.Contains(lower, "surgery") {
			v[2] = 1
		}
		if strings.Contains(lower, "recovery") || strings.Contains(lower, "screening") {
			v[3] = 1
		}
		return v
	}

	embedder := mock.NewMockEmbedderWithDimension(4)
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return vectorFor(text), nil
	}
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		vectors := make([][]float32, len(texts))
		for i, text := range texts {
			vectors[i] = vectorFor(text)
		}
		return vectors, nil
	}
	return embedder
}

func TestNewRanker(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		ranker, err := NewRanker(mock.NewMockEmbedder())
		require.NoError(t, err)
		assert.NotNil(t, ranker)
	})

	t.Run("nil embedder", func(t *testing.T) {
		_, err := NewRanker(nil)
		assert.Equal(t, ErrEmbedderRequired, err)
	})
}

func TestRank_SortedAndBounded(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	records := testRecords()
	idx := buildIndex(t, embedder, testAIConfig(mock.DefaultDimension), records)

	ranker, err := NewRanker(embedder)
	require.NoError(t, err)

	for _, topK := range []int{1, 2, 3, 10} {
		results, err := ranker.Rank(context.Background(), "health research", idx, records, topK)
		require.NoError(t, err)

		assert.LessOrEqual(t, len(results), topK)
		assert.LessOrEqual(t, len(results), len(records))

		for i := 0; i < len(results)-1; i++ {
			assert.GreaterOrEqual(t, results[i].Score, results[i+1].Score,
				"results must be sorted by non-increasing score")
		}
	}
}

func TestRank_TopKDegenerate(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	records := testRecords()
	idx := buildIndex(t, embedder, testAIConfig(mock.DefaultDimension), records)

	ranker, err := NewRanker(embedder)
	require.NoError(t, err)

	for _, topK := range []int{0, -1, -100} {
		results, err := ranker.Rank(context.Background(), "anything", idx, records, topK)
		require.NoError(t, err)
		assert.Empty(t, results)
	}
}

func TestRank_SelfSimilarityIsMaximal(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	records := testRecords()
	idx := buildIndex(t, embedder, testAIConfig(mock.DefaultDimension), records)

	ranker, err := NewRanker(embedder)
	require.NoError(t, err)

	// Querying with a record's own embedding text must rank that record first
	for _, record := range records {
		query := index.BuildEmbeddingText(record)
		results, err := ranker.Rank(context.Background(), query, idx, records, len(records))
		require.NoError(t, err)
		require.NotEmpty(t, results)

		assert.Equal(t, record.ID, results[0].Record.ID,
			"self-query should rank %s first", record.ID)
		assert.InDelta(t, 1.0, float64(results[0].Score), 1e-5)
	}
}

func TestRank_EndToEnd_DiabetesQuery(t *testing.T) {
	embedder := topicEmbedder()
	records := []*core.ProjectRecord{
		{ID: "p1", Title: "Diabetes study", Summary: "adherence in elderly"},
		{ID: "p2", Title: "Cardiac surgery outcomes", Summary: "post-op recovery"},
	}
	idx := buildIndex(t, embedder, testAIConfig(4), records)

	ranker, err := NewRanker(embedder)
	require.NoError(t, err)

	results, err := ranker.Rank(context.Background(), "diabetes medication adherence", idx, records, 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "p1", results[0].Record.ID)

	// p1 must also strictly outscore p2
	all, err := ranker.Rank(context.Background(), "diabetes medication adherence", idx, records, 2)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "p1", all[0].Record.ID)
	assert.Greater(t, all[0].Score, all[1].Score)
}

func TestRank_TiesKeepRecordOrder(t *testing.T) {
	// Every text embeds to the same vector, so every score ties and the
	// original record order must survive
	constant := mock.NewMockEmbedderWithDimension(4)
	same := []float32{0.5, 0.5, 0.5, 0.5}
	constant.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return same, nil
	}
	constant.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		vectors := make([][]float32, len(texts))
		for i := range texts {
			vectors[i] = same
		}
		return vectors, nil
	}

	records := testRecords()
	idx := buildIndex(t, constant, testAIConfig(4), records)

	ranker, err := NewRanker(constant)
	require.NoError(t, err)

	results, err := ranker.Rank(context.Background(), "anything", idx, records, len(records))
	require.NoError(t, err)
	require.Len(t, results, len(records))

	for i, record := range records {
		assert.Equal(t, record.ID, results[i].Record.ID)
	}
}

func TestRank_ZeroQueryVector(t *testing.T) {
	embedder := topicEmbedder()
	records := testRecords()
	idx := buildIndex(t, embedder, testAIConfig(4), records)

	ranker, err := NewRanker(embedder)
	require.NoError(t, err)

	// No keyword axes match, so the query embeds to a zero vector and every
	// score is defined as 0
	results, err := ranker.Rank(context.Background(), "zzz unrelated zzz", idx, records, len(records))
	require.NoError(t, err)
	require.Len(t, results, len(records))
	for _, result := range results {
		assert.Equal(t, float32(0), result.Score)
	}
}

func TestRank_DimensionMismatch(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	records := testRecords()
	idx := buildIndex(t, embedder, testAIConfig(mock.DefaultDimension), records)

	// Query embedder suddenly produces the wrong width (wrong model wired in)
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return []float32{1, 2, 3}, nil
	}

	ranker, err := NewRanker(embedder)
	require.NoError(t, err)

	_, err = ranker.Rank(context.Background(), "query", idx, records, 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrDimensionMismatch)
}

func TestRank_EmbedderFailure(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	records := testRecords()
	idx := buildIndex(t, embedder, testAIConfig(mock.DefaultDimension), records)

	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, errors.New("embedding service down")
	}

	ranker, err := NewRanker(embedder)
	require.NoError(t, err)

	_, err = ranker.Rank(context.Background(), "query", idx, records, 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "embedding service down")
}

func TestRank_NilIndex(t *testing.T) {
	ranker, err := NewRanker(mock.NewMockEmbedder())
	require.NoError(t, err)

	_, err = ranker.Rank(context.Background(), "query", nil, testRecords(), 5)
	assert.Equal(t, ErrIndexRequired, err)
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float32
	}{
		{
			name: "identical unit vectors",
			a:    []float32{1, 0},
			b:    []float32{1, 0},
			want: 1,
		},
		{
			name: "orthogonal vectors",
			a:    []float32{1, 0},
			b:    []float32{0, 1},
			want: 0,
		},
		{
			name: "opposite vectors",
			a:    []float32{1, 0},
			b:    []float32{-1, 0},
			want: -1,
		},
		{
			name: "scale invariant",
			a:    []float32{3, 4},
			b:    []float32{6, 8},
			want: 1,
		},
		{
			name: "zero vector",
			a:    []float32{0, 0},
			b:    []float32{1, 1},
			want: 0,
		},
		{
			name: "length mismatch",
			a:    []float32{1, 0, 0},
			b:    []float32{1, 0},
			want: 0,
		},
		{
			name: "empty vectors",
			a:    nil,
			b:    nil,
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, float64(tt.want), float64(CosineSimilarity(tt.a, tt.b)), 1e-6)
		})
	}
}
