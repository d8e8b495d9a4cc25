package hnsw

import (
	"container/heap"

	"github.com/shoubo/hnsw/queue"
)

// selectNeighborsHeuristic2 implements the diversity heuristic of
// spec.md §4.5: given candidates already carrying their distance to the
// query vector, return at most m of them, preferring candidates that are
// far from each other over the m nearest. A candidate is accepted only if
// no already-accepted candidate is closer to it than the query is.
func (idx *Index[TId]) selectNeighborsHeuristic2(candidates []*queue.PriorityQueueItem, m int) ([]uint32, error) {
	if len(candidates) <= m {
		out := make([]uint32, len(candidates))
		for i, c := range candidates {
			out[i] = c.Node
		}
		return out, nil
	}

	remaining := &queue.PriorityQueue{Order: false, Items: append([]*queue.PriorityQueueItem(nil), candidates...)}
	heap.Init(remaining)

	selected := make([]*queue.PriorityQueueItem, 0, m)

	for remaining.Len() > 0 && len(selected) < m {
		c := heap.Pop(remaining).(*queue.PriorityQueueItem)

		good := true
		for _, s := range selected {
			d, err := idx.distanceBetweenNodes(c.Node, s.Node)
			if err != nil {
				return nil, err
			}
			if d < c.Distance {
				good = false
				break
			}
		}
		if good {
			selected = append(selected, c)
		}
	}

	out := make([]uint32, len(selected))
	for i, c := range selected {
		out[i] = c.Node
	}
	return out, nil
}
