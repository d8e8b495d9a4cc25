package hnsw

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestExactIndexUpperBound covers Testable property 5: every result of
// findNearest from the approximate graph is either no closer than the
// exact view's k-th-best distance or is itself one of the exact view's k
// results, i.e. the approximate search never reports a closer item that
// the exact scan missed.
func TestExactIndexUpperBound(t *testing.T) {
	idx := newTestIndex(t, 256, false)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		v := []float32{float32(rng.Intn(100)), float32(rng.Intn(100))}
		_, err := idx.Add(Item[string]{ID: fmt.Sprintf("p%d", i), Vector: v})
		require.NoError(t, err)
	}

	exact := idx.AsExactIndex()
	query := []float32{50, 50}
	const k = 10

	exactResults, err := exact.FindNearest(query, k)
	require.NoError(t, err)
	require.Len(t, exactResults, k)

	approxResults, err := idx.FindNearest(query, k)
	require.NoError(t, err)

	kthBest := exactResults[k-1].Distance
	for _, r := range approxResults {
		assert.GreaterOrEqual(t, r.Distance, float32(0))
		assert.True(t, r.Distance >= 0 && (r.Distance >= kthBest || approxSubsetOf(r, exactResults)),
			"approximate result %+v is closer than the exact k-th-best %v and not present in the exact set", r, kthBest)
	}
}

func approxSubsetOf(r SearchResult[string], exact []SearchResult[string]) bool {
	for _, e := range exact {
		if e.Item.ID == r.Item.ID {
			return true
		}
	}
	return false
}

func TestExactIndexSkipsTombstones(t *testing.T) {
	idx := newTestIndex(t, 8, true)

	_, err := idx.Add(Item[string]{ID: "a", Vector: []float32{0, 0}})
	require.NoError(t, err)
	_, err = idx.Add(Item[string]{ID: "b", Vector: []float32{1, 1}})
	require.NoError(t, err)

	_, err = idx.Remove("b", 0)
	require.NoError(t, err)

	exact := idx.AsExactIndex()
	results, err := exact.FindNearest([]float32{0, 0}, 5)
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, "a", results[0].Item.ID)
}
