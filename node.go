package hnsw

import (
	"sync"
	"sync/atomic"
)

// node is the internal representation of one graph vertex. internalId
// values are dense and never reassigned; soft-deleted nodes keep their ID
// and slot so graph navigation remains valid (SPEC_FULL.md §5).
type node[TId comparable] struct {
	id uint32

	// item and deleted require acquire/release visibility without a mutex
	// so concurrent searches observe a fully published node or the prior
	// one, never a partially written struct (SPEC_FULL.md §7).
	item    atomic.Pointer[Item[TId]]
	deleted atomic.Bool

	// mu protects connections: readers take it to iterate a level's
	// neighbor list, writers take it to append or replace one. The slice
	// of slices itself is allocated once at insertion (one entry per level
	// 0..topLevel) and never resized after that; only the per-level
	// contents mutate.
	mu          sync.Mutex
	connections [][]uint32
}

func newNode[TId comparable](id uint32, topLevel int, it Item[TId]) *node[TId] {
	n := &node[TId]{
		id:          id,
		connections: make([][]uint32, topLevel+1),
	}
	n.item.Store(&it)
	return n
}

func (n *node[TId]) topLevel() int {
	return len(n.connections) - 1
}

func (n *node[TId]) Item() Item[TId] {
	return *n.item.Load()
}

func (n *node[TId]) setItem(it Item[TId]) {
	n.item.Store(&it)
}

func (n *node[TId]) isDeleted() bool {
	return n.deleted.Load()
}

func (n *node[TId]) markDeleted() {
	n.deleted.Store(true)
}

// connectionsAt returns a copy of the neighbor list at level, taking the
// per-node lock. A copy is returned (not the backing slice) so callers can
// iterate without holding the lock across distance computations, matching
// the reference implementation's "read under lock, compute outside" shape.
func (n *node[TId]) connectionsAt(level int) []uint32 {
	n.mu.Lock()
	defer n.mu.Unlock()
	if level >= len(n.connections) {
		return nil
	}
	out := make([]uint32, len(n.connections[level]))
	copy(out, n.connections[level])
	return out
}

func (n *node[TId]) appendConnection(level int, neighbor uint32) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.connections[level] = append(n.connections[level], neighbor)
}

func (n *node[TId]) connectionCount(level int) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.connections[level])
}

func (n *node[TId]) setConnections(level int, neighbors []uint32) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.connections[level] = neighbors
}

// setConnectionsLocked is setConnections for a caller that already holds
// n.mu — used when finishing a new node's own neighbor list, since that
// node's mutex is held for the whole insert (spec.md §4.7 step 7) and
// sync.Mutex, unlike Java's synchronized, is not reentrant.
func (n *node[TId]) setConnectionsLocked(level int, neighbors []uint32) {
	n.connections[level] = neighbors
}

// connectOrPrune implements mutuallyConnectNewElement step 2c (spec.md
// §4.6) for a single accepted neighbor: if this node's connection list at
// level is under bestN, newID is simply appended. Otherwise newID is
// merged into the existing list and prune is called to re-apply the
// diversity heuristic down to bestN entries, which become the new list.
func (n *node[TId]) connectOrPrune(level int, newID uint32, bestN int, prune func(candidates []uint32) ([]uint32, error)) error {
	n.mu.Lock()
	if len(n.connections[level]) < bestN {
		n.connections[level] = append(n.connections[level], newID)
		n.mu.Unlock()
		return nil
	}

	merged := make([]uint32, len(n.connections[level])+1)
	copy(merged, n.connections[level])
	merged[len(merged)-1] = newID
	n.mu.Unlock()

	pruned, err := prune(merged)
	if err != nil {
		return err
	}
	n.setConnections(level, pruned)
	return nil
}
