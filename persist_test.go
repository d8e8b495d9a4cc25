package hnsw

import (
	"bytes"
	"testing"

	"github.com/shoubo/hnsw/distance"
	"github.com/shoubo/hnsw/serializer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSaveLoadRoundTrip covers Testable property 9: load(save(I)) answers
// findNearest identically to I.
func TestSaveLoadRoundTrip(t *testing.T) {
	idx := newTestIndex(t, 32, true)

	vectors := map[string][]float32{
		"a": {0, 0},
		"b": {3, 4},
		"c": {1, 1},
		"d": {-2, 5},
		"e": {7, -1},
	}
	for id, v := range vectors {
		_, err := idx.Add(Item[string]{ID: id, Vector: v})
		require.NoError(t, err)
	}

	removed, err := idx.Remove("d", 0)
	require.NoError(t, err)
	require.True(t, removed)

	var buf bytes.Buffer
	require.NoError(t, idx.Save(&buf))

	loaded, err := Load[string](&buf, Options[string]{
		Distance:      distance.SquaredEuclidean,
		IDCodec:       serializer.String{},
		ItemCodec:     Float32ItemCodec[string]{IDCodec: serializer.String{}},
		RemoveEnabled: true,
	})
	require.NoError(t, err)

	assert.Equal(t, idx.Size(), loaded.Size())

	for _, query := range [][]float32{{0, 0}, {3, 4}, {1, 1}, {7, -1}} {
		want, err := idx.FindNearest(query, 3)
		require.NoError(t, err)
		got, err := loaded.FindNearest(query, 3)
		require.NoError(t, err)

		require.Len(t, got, len(want))
		for i := range want {
			assert.Equal(t, want[i].Item.ID, got[i].Item.ID)
			assert.Equal(t, want[i].Distance, got[i].Distance)
		}
	}

	_, ok := loaded.Get("d")
	assert.False(t, ok, "tombstoned item must not resurface after a round trip")
}

func TestSaveLoadCompressedRoundTrip(t *testing.T) {
	idx := newTestIndex(t, 8, false)

	_, err := idx.Add(Item[string]{ID: "a", Vector: []float32{0, 0}})
	require.NoError(t, err)
	_, err = idx.Add(Item[string]{ID: "b", Vector: []float32{3, 4}})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, idx.SaveCompressed(&buf))

	loaded, err := LoadCompressed[string](&buf, Options[string]{
		Distance:  distance.SquaredEuclidean,
		IDCodec:   serializer.String{},
		ItemCodec: Float32ItemCodec[string]{IDCodec: serializer.String{}},
	})
	require.NoError(t, err)

	assert.Equal(t, idx.Size(), loaded.Size())
	got, ok := loaded.Get("a")
	require.True(t, ok)
	assert.Equal(t, []float32{0, 0}, got.Vector)
}
