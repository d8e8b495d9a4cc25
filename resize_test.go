package hnsw

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResizeGrowsCapacity(t *testing.T) {
	idx := newTestIndex(t, 2, false)

	_, err := idx.Add(Item[string]{ID: "a", Vector: []float32{0, 0}})
	require.NoError(t, err)
	_, err = idx.Add(Item[string]{ID: "b", Vector: []float32{1, 1}})
	require.NoError(t, err)

	_, err = idx.Add(Item[string]{ID: "c", Vector: []float32{2, 2}})
	require.Error(t, err)

	require.NoError(t, idx.Resize(4))

	_, err = idx.Add(Item[string]{ID: "c", Vector: []float32{2, 2}})
	require.NoError(t, err)
	assert.Equal(t, 3, idx.Size())
}

func TestResizeRejectsShrink(t *testing.T) {
	idx := newTestIndex(t, 4, false)
	err := idx.Resize(2)
	assert.Error(t, err)
}
