package hnsw

import (
	"fmt"
	"math"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/bits-and-blooms/bitset"
	"github.com/shoubo/hnsw/internal/pool"
)

const noEntryPoint = -1

// Index is a concurrent, in-memory HNSW approximate nearest-neighbor index.
// The zero value is not usable; construct with New.
type Index[TId comparable] struct {
	opts Options[TId]

	dimension   int
	mmax        int
	mmax0       int
	levelLambda float64

	// globalLock protects node-slot allocation, entry-point publication,
	// lookup, tombstones, maxLevel, and the sequencing of an insert up to
	// the point the new node is published (SPEC_FULL.md §7).
	globalLock sync.Mutex

	nodes        []*node[TId]
	nodeCount    int
	maxItemCount int
	maxLevel     int
	entryPoint   atomic.Int64 // internal id, noEntryPoint if none

	lookup     map[TId]uint32
	tombstones map[TId]int64

	// liveIDs mirrors lookup's value set as a compressed bitmap of internal
	// IDs, so ExactIndex can iterate live nodes without touching every
	// node's deleted flag (SPEC_FULL.md domain stack: RoaringBitmap). Both
	// are updated together under globalLock.
	liveIDs *roaring.Bitmap

	itemLocks sync.Map // TId -> *sync.Mutex, lazily created

	excluded   *bitset.BitSet
	excludedMu sync.Mutex

	visited *pool.VisitedPool

	logger *Logger
}

// New constructs an Index. Dimensions, Distance, MaxItemCount, IDCodec and
// ItemCodec are required; all other fields fall back to the reference
// implementation's defaults (see DefaultOptions).
func New[TId comparable](opts Options[TId]) (*Index[TId], error) {
	opts = opts.withDefaults()

	if opts.Dimensions <= 0 {
		return nil, fmt.Errorf("hnsw: Dimensions must be positive")
	}
	if opts.Distance == nil {
		return nil, fmt.Errorf("hnsw: Distance is required")
	}
	if opts.MaxItemCount <= 0 {
		return nil, fmt.Errorf("hnsw: MaxItemCount must be positive")
	}
	if opts.IDCodec == nil {
		return nil, fmt.Errorf("hnsw: IDCodec is required")
	}
	if opts.ItemCodec == nil {
		return nil, fmt.Errorf("hnsw: ItemCodec is required")
	}

	idx := &Index[TId]{
		opts:         opts,
		dimension:    opts.Dimensions,
		mmax:         opts.M,
		mmax0:        2 * opts.M,
		levelLambda:  1 / math.Log(float64(opts.M)),
		maxItemCount: opts.MaxItemCount,
		nodes:        make([]*node[TId], opts.MaxItemCount),
		lookup:       make(map[TId]uint32),
		tombstones:   make(map[TId]int64),
		liveIDs:      roaring.New(),
		excluded:     bitset.New(uint(opts.MaxItemCount)),
		visited:      pool.New(runtime.NumCPU(), uint(opts.MaxItemCount)),
		logger:       opts.Logger,
	}
	idx.entryPoint.Store(noEntryPoint)

	return idx, nil
}

func (idx *Index[TId]) nodeAt(id uint32) *node[TId] {
	return idx.nodes[id]
}

// distanceToVector returns the distance from node id's current item vector
// to v.
func (idx *Index[TId]) distanceToVector(id uint32, v []float32) (float32, error) {
	n := idx.nodeAt(id)
	item := n.Item()
	return idx.opts.Distance(item.Vector, v)
}

// distanceBetweenNodes returns the distance between two nodes' vectors.
func (idx *Index[TId]) distanceBetweenNodes(a, b uint32) (float32, error) {
	va := idx.nodeAt(a).Item().Vector
	vb := idx.nodeAt(b).Item().Vector
	return idx.opts.Distance(va, vb)
}

// missingDistance is the "+Inf" top element of the distance order: greater
// than every real distance and equal to itself (SPEC_FULL.md §11).
func missingDistance() float32 {
	return float32(math.Inf(1))
}

func (idx *Index[TId]) itemLock(id TId) *sync.Mutex {
	actual, _ := idx.itemLocks.LoadOrStore(id, &sync.Mutex{})
	return actual.(*sync.Mutex)
}

// Size returns the number of live (non-tombstoned) items.
func (idx *Index[TId]) Size() int {
	idx.globalLock.Lock()
	defer idx.globalLock.Unlock()
	return len(idx.lookup)
}

// Contains reports whether id currently resolves to a live item.
func (idx *Index[TId]) Contains(id TId) bool {
	_, ok := idx.Get(id)
	return ok
}

// Get returns the item currently stored for id, if any.
func (idx *Index[TId]) Get(id TId) (Item[TId], bool) {
	idx.globalLock.Lock()
	internalID, ok := idx.lookup[id]
	idx.globalLock.Unlock()
	if !ok {
		return Item[TId]{}, false
	}
	return idx.nodeAt(internalID).Item(), true
}

// Items returns every live item currently in the index, in unspecified
// order.
func (idx *Index[TId]) Items() []Item[TId] {
	idx.globalLock.Lock()
	defer idx.globalLock.Unlock()

	out := make([]Item[TId], 0, len(idx.lookup))
	for _, internalID := range idx.lookup {
		out = append(out, idx.nodeAt(internalID).Item())
	}
	return out
}
