package hnsw

// excludedCandidates tracks node slots belonging to an in-flight insert
// that has been published into lookup/nodes but has not yet finished
// wiring its graph connections (SPEC_FULL.md §7). A concurrent insert that
// would otherwise connect through such a node must skip it instead.

func (idx *Index[TId]) markExcluded(id uint32) {
	idx.excludedMu.Lock()
	idx.excluded.Set(uint(id))
	idx.excludedMu.Unlock()
}

func (idx *Index[TId]) clearExcluded(id uint32) {
	idx.excludedMu.Lock()
	idx.excluded.Clear(uint(id))
	idx.excludedMu.Unlock()
}

func (idx *Index[TId]) isExcluded(id uint32) bool {
	idx.excludedMu.Lock()
	defer idx.excludedMu.Unlock()
	return idx.excluded.Test(uint(id))
}
