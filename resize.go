package hnsw

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// Resize grows the index's node-slot capacity to newSize, replacing the
// visited-set pool and excluded-candidates bit-set to match (spec.md
// §4.1). Shrinking is not supported.
func (idx *Index[TId]) Resize(newSize int) error {
	idx.globalLock.Lock()
	defer idx.globalLock.Unlock()

	if newSize < idx.maxItemCount {
		return fmt.Errorf("hnsw: cannot shrink index from %d to %d", idx.maxItemCount, newSize)
	}

	grown := make([]*node[TId], newSize)
	copy(grown, idx.nodes)
	idx.nodes = grown

	oldSize := idx.maxItemCount
	idx.maxItemCount = newSize
	idx.excluded = bitset.New(uint(newSize))
	idx.visited.Resize(uint(newSize))

	idx.logger.logResize(oldSize, newSize)
	return nil
}
