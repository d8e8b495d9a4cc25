package hnsw

import "github.com/shoubo/hnsw/queue"

// mutuallyConnectNewElement wires the newly inserted node n into level ℓ
// of the graph (spec.md §4.6): the post-pruning candidate set becomes n's
// neighbor list at this level, and each accepted neighbor gets a
// reciprocal edge back to n, itself re-pruned with the heuristic if it is
// already at capacity. A candidate currently excluded (another insert is
// still wiring it) is skipped entirely: no edge is formed in either
// direction.
func (idx *Index[TId]) mutuallyConnectNewElement(newID uint32, candidates []*queue.PriorityQueueItem, level int, bestN int) error {
	// The new node's own list is pruned to m (spec.md §4.6 step 1), not
	// bestN: at level 0 bestN is mmax0 == 2m, which governs how many
	// reciprocal edges an existing neighbor may hold, not how many edges
	// the new node gets.
	selected, err := idx.selectNeighborsHeuristic2(candidates, idx.mmax)
	if err != nil {
		return err
	}

	connected := make([]uint32, 0, len(selected))
	for _, s := range selected {
		if idx.isExcluded(s) {
			continue
		}
		connected = append(connected, s)

		neighbor := s
		err := idx.nodeAt(neighbor).connectOrPrune(level, newID, bestN, func(ids []uint32) ([]uint32, error) {
			cands := make([]*queue.PriorityQueueItem, len(ids))
			for i, id := range ids {
				d, err := idx.distanceBetweenNodes(id, neighbor)
				if err != nil {
					return nil, err
				}
				cands[i] = &queue.PriorityQueueItem{Node: id, Distance: d}
			}
			return idx.selectNeighborsHeuristic2(cands, bestN)
		})
		if err != nil {
			return err
		}
	}

	// newID's own mutex is already held by the caller (Add) for the
	// duration of the insert, so this must not go through setConnections,
	// which would try to re-lock it and deadlock.
	idx.nodeAt(newID).setConnectionsLocked(level, connected)
	return nil
}
