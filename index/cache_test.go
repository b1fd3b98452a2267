package index

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/coldbrook/projscout/ai"
	"github.com/coldbrook/projscout/ai/mock"
	"github.com/coldbrook/projscout/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestIndex(t *testing.T, records []*core.ProjectRecord) *Index {
	t.Helper()
	builder, err := NewBuilder(mock.NewMockEmbedder(), testAIConfig())
	require.NoError(t, err)
	idx, err := builder.Build(context.Background(), records)
	require.NoError(t, err)
	return idx
}

func TestCache_SaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "embeddings.json")
	records := testRecords()
	idx := buildTestIndex(t, records)

	require.NoError(t, idx.Save(path))

	loaded, err := Load(path, testAIConfig(), records)
	require.NoError(t, err)

	assert.Equal(t, idx.Model(), loaded.Model())
	assert.Equal(t, idx.Dimension(), loaded.Dimension())
	assert.Equal(t, idx.RecordIDs(), loaded.RecordIDs())
	for _, id := range idx.RecordIDs() {
		want, _ := idx.Vector(id)
		got, ok := loaded.Vector(id)
		require.True(t, ok)
		assert.Equal(t, want, got)
	}
}

func TestCache_Load_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "embeddings.json"), testAIConfig(), testRecords())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestCache_Load_Unreadable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "embeddings.json")
	require.NoError(t, os.WriteFile(path, []byte("not json at all"), 0644))

	_, err := Load(path, testAIConfig(), testRecords())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestCache_Load_RecordSetChanged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "embeddings.json")
	records := testRecords()
	idx := buildTestIndex(t, records)
	require.NoError(t, idx.Save(path))

	t.Run("record added", func(t *testing.T) {
		grown := append(append([]*core.ProjectRecord{}, records...),
			&core.ProjectRecord{ID: "p4", Title: "New project"})
		_, err := Load(path, testAIConfig(), grown)
		assert.ErrorIs(t, err, ErrCacheMiss)
	})

	t.Run("record removed", func(t *testing.T) {
		_, err := Load(path, testAIConfig(), records[:2])
		assert.ErrorIs(t, err, ErrCacheMiss)
	})

	t.Run("record id changed", func(t *testing.T) {
		changed := []*core.ProjectRecord{
			records[0], records[1],
			{ID: "p3-renamed", Title: records[2].Title},
		}
		_, err := Load(path, testAIConfig(), changed)
		assert.ErrorIs(t, err, ErrCacheMiss)
	})
}

func TestCache_Load_ModelChanged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "embeddings.json")
	records := testRecords()
	idx := buildTestIndex(t, records)
	require.NoError(t, idx.Save(path))

	otherModel := ai.NewConfig(
		ai.WithEmbeddingModel("text-embedding-3-small"),
		ai.WithDimension(mock.DefaultDimension),
	)
	_, err := Load(path, otherModel, records)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestCache_Load_DimensionChanged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "embeddings.json")
	records := testRecords()
	idx := buildTestIndex(t, records)
	require.NoError(t, idx.Save(path))

	otherDim := ai.NewConfig(
		ai.WithEmbeddingModel("all-minilm"),
		ai.WithDimension(512),
	)
	_, err := Load(path, otherDim, records)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestCache_Load_SameSetDifferentOrder(t *testing.T) {
	// Display order may change without invalidating the cache; only the id
	// SET matters
	path := filepath.Join(t.TempDir(), "embeddings.json")
	records := testRecords()
	idx := buildTestIndex(t, records)
	require.NoError(t, idx.Save(path))

	reordered := []*core.ProjectRecord{records[2], records[0], records[1]}
	loaded, err := Load(path, testAIConfig(), reordered)
	require.NoError(t, err)
	assert.Equal(t, []string{"p3", "p1", "p2"}, loaded.RecordIDs())
}
