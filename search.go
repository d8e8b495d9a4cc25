package hnsw

import (
	"container/heap"

	"github.com/shoubo/hnsw/queue"
)

// greedyDescent performs the upper-layer greedy descent of spec.md §4.3:
// starting at currID (assumed to live at level topLevel), descend through
// levels above targetLevel, at each level repeatedly rescanning the current
// node's neighbors and moving to the first strictly closer one found, until
// a full scan produces no improvement, then drop a level.
func (idx *Index[TId]) greedyDescent(q []float32, topLevel, targetLevel int, currID uint32) (uint32, float32, error) {
	currDist, err := idx.distanceToVector(currID, q)
	if err != nil {
		return 0, 0, err
	}

	for level := topLevel; level > targetLevel; level-- {
		changed := true
		for changed {
			changed = false

			neighbors := idx.nodeAt(currID).connectionsAt(level)
			for _, nb := range neighbors {
				d, err := idx.distanceToVector(nb, q)
				if err != nil {
					return 0, 0, err
				}
				if d < currDist {
					currID = nb
					currDist = d
					changed = true
					break
				}
			}
		}
	}

	return currID, currDist, nil
}

// searchBaseLayer performs the best-first expansion of spec.md §4.4 at the
// given level, returning the top `ef` candidates found (nearest-worst at
// the top of the max-heap).
func (idx *Index[TId]) searchBaseLayer(q []float32, entryID uint32, ef int, level int) (*queue.PriorityQueue, error) {
	visited := idx.visited.Borrow()
	defer idx.visited.Return(visited)

	candidateSet := &queue.PriorityQueue{Order: false} // min-heap, ascending distance
	topCandidates := &queue.PriorityQueue{Order: true}  // max-heap, descending distance
	heap.Init(candidateSet)
	heap.Init(topCandidates)

	entryDeleted := idx.nodeAt(entryID).isDeleted()

	var lowerBound float32
	if !entryDeleted {
		d, err := idx.distanceToVector(entryID, q)
		if err != nil {
			return nil, err
		}
		lowerBound = d
		heap.Push(candidateSet, &queue.PriorityQueueItem{Node: entryID, Distance: d})
		heap.Push(topCandidates, &queue.PriorityQueueItem{Node: entryID, Distance: d})
	} else {
		lowerBound = missingDistance()
		heap.Push(candidateSet, &queue.PriorityQueueItem{Node: entryID, Distance: lowerBound})
	}
	visited.Set(uint(entryID))

	for candidateSet.Len() > 0 {
		candidate := heap.Pop(candidateSet).(*queue.PriorityQueueItem)
		if candidate.Distance > lowerBound {
			break
		}

		node := idx.nodeAt(candidate.Node)
		neighbors := node.connectionsAt(level)

		for _, nb := range neighbors {
			if visited.Test(uint(nb)) {
				continue
			}
			visited.Set(uint(nb))

			d, err := idx.distanceToVector(nb, q)
			if err != nil {
				return nil, err
			}

			heap.Push(candidateSet, &queue.PriorityQueueItem{Node: nb, Distance: d})

			if (topCandidates.Len() < ef || d < lowerBound) && !idx.nodeAt(nb).isDeleted() {
				heap.Push(topCandidates, &queue.PriorityQueueItem{Node: nb, Distance: d})
				if topCandidates.Len() > ef {
					heap.Pop(topCandidates)
				}
				lowerBound = topCandidates.Top().(*queue.PriorityQueueItem).Distance
			}
		}
	}

	return topCandidates, nil
}
