package hnsw

import (
	"container/heap"
	"sort"
)

// FindNearest returns the k items closest to vector, nearest first
// (spec.md §4.9).
func (idx *Index[TId]) FindNearest(vector []float32, k int) ([]SearchResult[TId], error) {
	entryID := idx.entryPoint.Load()
	if entryID == noEntryPoint {
		return nil, nil
	}

	entryNode := idx.nodeAt(uint32(entryID))
	curr, _, err := idx.greedyDescent(vector, entryNode.topLevel(), 0, uint32(entryID))
	if err != nil {
		return nil, err
	}

	ef := idx.opts.EF
	if k > ef {
		ef = k
	}

	candidates, err := idx.searchBaseLayer(vector, curr, ef, 0)
	if err != nil {
		return nil, err
	}

	for candidates.Len() > k {
		heap.Pop(candidates)
	}

	results := make([]SearchResult[TId], len(candidates.Items))
	for i, c := range candidates.Items {
		results[i] = SearchResult[TId]{Distance: c.Distance, Item: idx.nodeAt(c.Node).Item()}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Distance < results[j].Distance })

	idx.logger.logSearch(k, ef, len(results))

	return results, nil
}

// FindNeighbors returns the k nearest items to the vector currently stored
// for id, excluding id itself (spec.md §6, Testable property 3).
func (idx *Index[TId]) FindNeighbors(id TId, k int) ([]SearchResult[TId], error) {
	item, ok := idx.Get(id)
	if !ok {
		return nil, nil
	}

	results, err := idx.FindNearest(item.Vector, k+1)
	if err != nil {
		return nil, err
	}

	out := make([]SearchResult[TId], 0, k)
	for _, r := range results {
		if r.Item.ID == id {
			continue
		}
		out = append(out, r)
		if len(out) == k {
			break
		}
	}
	return out, nil
}
