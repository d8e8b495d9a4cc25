package hnsw

import (
	"testing"

	"github.com/shoubo/hnsw/distance"
	"github.com/shoubo/hnsw/serializer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestIndex builds the index used throughout spec.md §8's S1-S6
// scenarios: distance = squared Euclidean, m=4, ef=10, efConstruction=10.
func newTestIndex(t *testing.T, maxItemCount int, removeEnabled bool) *Index[string] {
	t.Helper()
	idx, err := New[string](Options[string]{
		Dimensions:     2,
		Distance:       distance.SquaredEuclidean,
		MaxItemCount:   maxItemCount,
		M:              4,
		EF:             10,
		EFConstruction: 10,
		RemoveEnabled:  removeEnabled,
		IDCodec:        serializer.String{},
		ItemCodec:      Float32ItemCodec[string]{IDCodec: serializer.String{}},
	})
	require.NoError(t, err)
	return idx
}

// TestInsertAndFindNearestLifecycle walks spec.md §8's S1-S4 scenarios
// end to end on a single index.
func TestInsertAndFindNearestLifecycle(t *testing.T) {
	idx := newTestIndex(t, 8, true)

	// S1.
	ok, err := idx.Add(Item[string]{ID: "a", Vector: []float32{0, 0}})
	require.NoError(t, err)
	assert.True(t, ok)

	results, err := idx.FindNearest([]float32{0, 0}, 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "a", results[0].Item.ID)
	assert.Equal(t, float32(0), results[0].Distance)
	assert.Equal(t, 1, idx.Size())

	// S2.
	_, err = idx.Add(Item[string]{ID: "b", Vector: []float32{3, 4}})
	require.NoError(t, err)
	_, err = idx.Add(Item[string]{ID: "c", Vector: []float32{1, 1}})
	require.NoError(t, err)

	results, err = idx.FindNearest([]float32{0, 0}, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "a", results[0].Item.ID)
	assert.Equal(t, float32(0), results[0].Distance)
	assert.Equal(t, "c", results[1].Item.ID)
	assert.Equal(t, float32(2), results[1].Distance)

	// S3.
	removed, err := idx.Remove("b", 0)
	require.NoError(t, err)
	assert.True(t, removed)

	results, err = idx.FindNearest([]float32{3, 4}, 3)
	require.NoError(t, err)
	for _, r := range results {
		assert.NotEqual(t, "b", r.Item.ID)
	}

	// S4.
	_, err = idx.Add(Item[string]{ID: "b", Vector: []float32{3, 4}, Version: 1})
	require.NoError(t, err)

	got, ok := idx.Get("b")
	require.True(t, ok)
	assert.Equal(t, []float32{3, 4}, got.Vector)

	results, err = idx.FindNearest([]float32{3, 4}, 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "b", results[0].Item.ID)
	assert.Equal(t, float32(0), results[0].Distance)
}

// TestSizeLimitExceeded covers S5: a full index rejects further inserts
// without changing its size.
func TestSizeLimitExceeded(t *testing.T) {
	idx := newTestIndex(t, 2, false)

	_, err := idx.Add(Item[string]{ID: "a", Vector: []float32{0, 0}})
	require.NoError(t, err)
	_, err = idx.Add(Item[string]{ID: "b", Vector: []float32{1, 1}})
	require.NoError(t, err)

	_, err = idx.Add(Item[string]{ID: "c", Vector: []float32{2, 2}})
	require.Error(t, err)
	assert.IsType(t, &ErrSizeLimitExceeded{}, err)
	assert.Equal(t, 2, idx.Size())
}

func TestDimensionMismatch(t *testing.T) {
	idx := newTestIndex(t, 8, false)

	_, err := idx.Add(Item[string]{ID: "a", Vector: []float32{0, 0, 0}})
	require.Error(t, err)
	assert.IsType(t, &ErrDimensionMismatch{}, err)
}

func TestUpsertIdempotence(t *testing.T) {
	idx := newTestIndex(t, 8, true)

	_, err := idx.Add(Item[string]{ID: "a", Vector: []float32{0, 0}})
	require.NoError(t, err)
	_, err = idx.Add(Item[string]{ID: "a", Vector: []float32{0, 0}})
	require.NoError(t, err)

	assert.Equal(t, 1, idx.Size())
}

func TestVersionGating(t *testing.T) {
	idx := newTestIndex(t, 8, true)

	_, err := idx.Add(Item[string]{ID: "a", Vector: []float32{0, 0}, Version: 5})
	require.NoError(t, err)

	removed, err := idx.Remove("a", 1)
	require.NoError(t, err)
	assert.False(t, removed)
	assert.True(t, idx.Contains("a"))

	removed, err = idx.Remove("a", 5)
	require.NoError(t, err)
	assert.True(t, removed)

	added, err := idx.Add(Item[string]{ID: "a", Vector: []float32{9, 9}, Version: 4})
	require.NoError(t, err)
	assert.False(t, added)
	assert.False(t, idx.Contains("a"))
}

func TestRemoveDisabled(t *testing.T) {
	idx := newTestIndex(t, 8, false)

	_, err := idx.Add(Item[string]{ID: "a", Vector: []float32{0, 0}})
	require.NoError(t, err)

	_, err = idx.Remove("a", 0)
	assert.ErrorIs(t, err, ErrRemoveDisabled)
}

func TestFindNeighborsSelfExclusion(t *testing.T) {
	idx := newTestIndex(t, 8, false)

	_, err := idx.Add(Item[string]{ID: "a", Vector: []float32{0, 0}})
	require.NoError(t, err)
	_, err = idx.Add(Item[string]{ID: "b", Vector: []float32{1, 1}})
	require.NoError(t, err)
	_, err = idx.Add(Item[string]{ID: "c", Vector: []float32{2, 2}})
	require.NoError(t, err)

	results, err := idx.FindNeighbors("a", 2)
	require.NoError(t, err)
	for _, r := range results {
		assert.NotEqual(t, "a", r.Item.ID)
	}
}

func TestFindNearestEmptyIndex(t *testing.T) {
	idx := newTestIndex(t, 8, false)

	results, err := idx.FindNearest([]float32{0, 0}, 1)
	require.NoError(t, err)
	assert.Empty(t, results)
}
