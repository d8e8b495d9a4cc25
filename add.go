package hnsw

import (
	"container/heap"
	"math"

	"github.com/shoubo/hnsw/queue"
)

// Add inserts or upserts item, returning whether the index's contents
// changed. See spec.md §4.7 for the full twelve-step protocol; this is a
// direct implementation of it.
func (idx *Index[TId]) Add(item Item[TId]) (bool, error) {
	if item.Dimensions() != idx.dimension {
		return false, &ErrDimensionMismatch{Expected: idx.dimension, Actual: item.Dimensions()}
	}

	level, err := idx.assignLevel(item.ID)
	if err != nil {
		return false, err
	}

	idx.globalLock.Lock()

	if internalID, ok := idx.lookup[item.ID]; ok {
		existing := idx.nodeAt(internalID)
		existingItem := existing.Item()

		if !idx.opts.RemoveEnabled {
			idx.globalLock.Unlock()
			return false, nil
		}
		if item.Version < existingItem.Version {
			idx.globalLock.Unlock()
			return false, nil
		}
		if vectorsEqual(existingItem.Vector, item.Vector) {
			existing.setItem(item)
			idx.globalLock.Unlock()
			return true, nil
		}

		existing.markDeleted()
		delete(idx.lookup, item.ID)
		idx.liveIDs.Remove(internalID)
		idx.tombstones[item.ID] = existingItem.Version
	} else if tombstoneVersion, ok := idx.tombstones[item.ID]; ok && tombstoneVersion > item.Version {
		idx.globalLock.Unlock()
		return false, nil
	}

	if idx.nodeCount == idx.maxItemCount {
		idx.globalLock.Unlock()
		return false, &ErrSizeLimitExceeded{MaxItemCount: idx.maxItemCount}
	}

	newID := uint32(idx.nodeCount)
	idx.nodeCount++
	idx.markExcluded(newID)

	newNode := newNode[TId](newID, level, item)
	idx.nodes[newID] = newNode
	idx.lookup[item.ID] = newID
	idx.liveIDs.Add(newID)
	delete(idx.tombstones, item.ID)

	itemLock := idx.itemLock(item.ID)
	itemLock.Lock()
	defer itemLock.Unlock()

	newNode.mu.Lock()
	defer newNode.mu.Unlock()

	entryID := idx.entryPoint.Load()

	releasedGlobal := false
	if entryID != noEntryPoint {
		epNode := idx.nodeAt(uint32(entryID))
		if level <= epNode.topLevel() {
			idx.globalLock.Unlock()
			releasedGlobal = true
		}
	}
	if !releasedGlobal {
		defer idx.globalLock.Unlock()
	}

	if entryID != noEntryPoint {
		epNode := idx.nodeAt(uint32(entryID))
		curr := uint32(entryID)

		if level < epNode.topLevel() {
			curr, _, err = idx.greedyDescent(item.Vector, epNode.topLevel(), level, curr)
			if err != nil {
				return false, err
			}
		}

		top := level
		if epNode.topLevel() < top {
			top = epNode.topLevel()
		}

		for lc := top; lc >= 0; lc-- {
			bestN := idx.mmax
			if lc == 0 {
				bestN = idx.mmax0
			}

			candidates, err := idx.searchBaseLayer(item.Vector, curr, idx.opts.EFConstruction, lc)
			if err != nil {
				return false, err
			}

			if epNode.isDeleted() {
				d, err := idx.distanceToVector(uint32(entryID), item.Vector)
				if err != nil {
					return false, err
				}
				heap.Push(candidates, &queue.PriorityQueueItem{Node: uint32(entryID), Distance: d})
				if candidates.Len() > idx.opts.EFConstruction {
					heap.Pop(candidates)
				}
			}

			// curr is intentionally left at the entry point found above for
			// every level in this loop, matching the reference
			// implementation: base-layer search re-enters each level from
			// the same currObj rather than hopping to the prior level's
			// nearest candidate (which, with RemoveEnabled, may be
			// tombstoned and have no live neighbors, leaving candidates
			// empty).
			if err := idx.mutuallyConnectNewElement(newID, candidates.Items, lc, bestN); err != nil {
				return false, err
			}
		}
	}

	if entryID == noEntryPoint || level > idx.nodeAt(uint32(entryID)).topLevel() {
		idx.entryPoint.Store(int64(newID))
		if level > idx.maxLevel {
			idx.maxLevel = level
		}
	}

	idx.clearExcluded(newID)

	idx.logger.logInsert(item.ID, item.Dimensions(), true, nil)

	return true, nil
}

func vectorsEqual(a, b []float32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Float32bits(a[i]) != math.Float32bits(b[i]) {
			return false
		}
	}
	return true
}
