package hnsw

// Remove soft-deletes id if its currently stored version is not strictly
// greater than version (spec.md §4.8). The node's connections are left
// untouched so graph connectivity through it is preserved for other
// nodes' searches; only lookup and the live/tombstone bookkeeping change.
func (idx *Index[TId]) Remove(id TId, version int64) (bool, error) {
	if !idx.opts.RemoveEnabled {
		return false, ErrRemoveDisabled
	}

	idx.globalLock.Lock()
	defer idx.globalLock.Unlock()

	internalID, ok := idx.lookup[id]
	if !ok {
		idx.logger.logRemove(id, false)
		return false, nil
	}

	n := idx.nodeAt(internalID)
	if n.Item().Version > version {
		idx.logger.logRemove(id, false)
		return false, nil
	}

	n.markDeleted()
	delete(idx.lookup, id)
	idx.liveIDs.Remove(internalID)
	idx.tombstones[id] = version

	idx.logger.logRemove(id, true)
	return true, nil
}
