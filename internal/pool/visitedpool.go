// Package pool implements the bounded, blocking visited-set pool used by
// base-layer search.
//
// The teacher module's own internal/pool used an unbounded sync.Pool, which
// does not give the blocking "wait for an entry" semantics the HNSW
// concurrency model requires (a pool sized to the number of hardware
// threads, with borrow blocking until a bit-set is available). That
// semantics is ported instead from the reference implementation's
// GenericObjectPool (an ArrayBlockingQueue of pre-allocated ArrayBitSet
// instances), using github.com/bits-and-blooms/bitset — already a direct
// dependency of the teacher module's graph engine — as the bit-set type.
package pool

import "github.com/bits-and-blooms/bitset"

// VisitedPool is a fixed-size pool of bit-sets, one loaned per in-flight
// search. Borrow blocks when the pool is empty; Return clears the bit-set
// before making it available again.
type VisitedPool struct {
	slots    chan *bitset.BitSet
	capacity uint
}

// New creates a pool of size bitsets, each able to track up to capacity
// distinct node IDs.
func New(size int, capacity uint) *VisitedPool {
	if size < 1 {
		size = 1
	}
	p := &VisitedPool{
		slots:    make(chan *bitset.BitSet, size),
		capacity: capacity,
	}
	for range size {
		p.slots <- bitset.New(capacity)
	}
	return p
}

// Borrow blocks until a bit-set is available and returns it. The returned
// bit-set is guaranteed clear.
func (p *VisitedPool) Borrow() *bitset.BitSet {
	return <-p.slots
}

// Return clears bs and makes it available to the next Borrow call. Callers
// must not retain bs after calling Return.
func (p *VisitedPool) Return(bs *bitset.BitSet) {
	bs.ClearAll()
	p.slots <- bs
}

// Resize replaces every pooled bit-set with a fresh one sized to newCapacity.
// Callers must ensure no Borrow/Return is in flight; the HNSW index calls
// this only while holding its global lock during Resize.
func (p *VisitedPool) Resize(newCapacity uint) {
	size := len(p.slots)
	for range size {
		<-p.slots
	}
	p.capacity = newCapacity
	for range size {
		p.slots <- bitset.New(newCapacity)
	}
}
