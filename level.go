package hnsw

import (
	"bytes"
	"math"

	"github.com/shoubo/hnsw/internal/hash"
)

// assignLevel draws a node's top level deterministically from the external
// ID (SPEC_FULL.md / spec.md §4.2): a 32-bit Murmur3 hash of the
// IDCodec-encoded identifier is normalized to U in (0, 1], then
// L = floor(-ln(U) * levelLambda).
//
// Determinism is pure-functional on id: the same id always hashes to the
// same level across processes and runs, independent of insertion order or
// goroutine scheduling (Testable property 1).
func (idx *Index[TId]) assignLevel(id TId) (int, error) {
	var buf bytes.Buffer
	if err := idx.opts.IDCodec.Write(id, &buf); err != nil {
		return 0, err
	}

	h := hash.Murmur3_32(buf.Bytes(), hash.DefaultSeed)

	u := math.Abs(float64(int32(h))) / float64(math.MaxInt32)
	if u > 1 {
		// |math.MinInt32| exceeds math.MaxInt32 by one.
		u = 1
	}
	if u == 0 {
		// Guard against the hypothetical U=0 case (spec.md §4.2 edge case):
		// -ln(0) is +Inf, which must not propagate into the level.
		return 0, nil
	}

	return int(math.Floor(-math.Log(u) * idx.levelLambda)), nil
}
