package hnsw

import (
	"container/heap"
	"sort"

	"github.com/shoubo/hnsw/queue"
)

// ExactIndex is a brute-force companion view over an Index's node store: it
// shares nodes and lookup with the graph but answers FindNearest by linear
// scan, skipping vacant slots and tombstoned nodes. Intended for recall
// evaluation against the approximate graph (spec.md §4.10), not for
// production query serving.
type ExactIndex[TId comparable] struct {
	idx *Index[TId]
}

// AsExactIndex returns a brute-force view sharing this Index's underlying
// node store.
func (idx *Index[TId]) AsExactIndex() *ExactIndex[TId] {
	return &ExactIndex[TId]{idx: idx}
}

// FindNearest linearly scans every live node (via the index's liveIDs
// bitmap, skipping vacant and tombstoned slots without touching them) and
// returns the k closest to vector, nearest first.
func (e *ExactIndex[TId]) FindNearest(vector []float32, k int) ([]SearchResult[TId], error) {
	e.idx.globalLock.Lock()
	live := e.idx.liveIDs.Clone()
	e.idx.globalLock.Unlock()

	topCandidates := &queue.PriorityQueue{Order: true}
	heap.Init(topCandidates)

	it := live.Iterator()
	for it.HasNext() {
		id := it.Next()

		d, err := e.idx.distanceToVector(id, vector)
		if err != nil {
			return nil, err
		}

		if topCandidates.Len() < k {
			heap.Push(topCandidates, &queue.PriorityQueueItem{Node: id, Distance: d})
		} else if d < topCandidates.Top().(*queue.PriorityQueueItem).Distance {
			heap.Pop(topCandidates)
			heap.Push(topCandidates, &queue.PriorityQueueItem{Node: id, Distance: d})
		}
	}

	results := make([]SearchResult[TId], len(topCandidates.Items))
	for i, c := range topCandidates.Items {
		results[i] = SearchResult[TId]{Distance: c.Distance, Item: e.idx.nodeAt(c.Node).Item()}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Distance < results[j].Distance })

	return results, nil
}
