package hnsw

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAddAllConcurrentInsertSafety covers Testable property 10 (scaled
// down from spec.md §8's S6 for test speed): N workers each insert M
// disjoint items; afterward size() == N*M and every item is retrievable.
func TestAddAllConcurrentInsertSafety(t *testing.T) {
	const workers = 4
	const perWorker = 50

	idx := newTestIndex(t, workers*perWorker, false)

	items := make([]Item[string], 0, workers*perWorker)
	for w := 0; w < workers; w++ {
		for i := 0; i < perWorker; i++ {
			items = append(items, Item[string]{
				ID:     fmt.Sprintf("w%d-%d", w, i),
				Vector: []float32{float32(w), float32(i)},
			})
		}
	}

	var progressCalls int
	err := idx.AddAll(context.Background(), items, workers, func(done, total int) {
		progressCalls++
		assert.LessOrEqual(t, done, total)
	}, 10)
	require.NoError(t, err)

	assert.Equal(t, workers*perWorker, idx.Size())
	assert.Positive(t, progressCalls)

	for _, it := range items {
		got, ok := idx.Get(it.ID)
		require.True(t, ok, "item %s must be retrievable", it.ID)
		assert.Equal(t, it.Vector, got.Vector)
	}
}

func TestAddAllEmptyBatch(t *testing.T) {
	idx := newTestIndex(t, 8, false)

	err := idx.AddAll(context.Background(), nil, 4, nil, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, idx.Size())
}

func TestAddAllWrapsWorkerError(t *testing.T) {
	idx := newTestIndex(t, 8, false)

	items := []Item[string]{
		{ID: "ok", Vector: []float32{0, 0}},
		{ID: "bad", Vector: []float32{0, 0, 0}}, // wrong dimensions
	}

	err := idx.AddAll(context.Background(), items, 1, nil, 1)
	require.Error(t, err)
	assert.IsType(t, &ErrUncategorized{}, err)
}
