// Package hnsw implements an in-memory approximate nearest-neighbor index on
// a Hierarchical Navigable Small World graph (Malkov & Yashunin, 2016).
//
// The index supports insertion, soft deletion with versioning,
// k-nearest-neighbor queries under a pluggable distance function, concurrent
// mutation from multiple goroutines, and persistence to a byte stream.
//
// # Quick start
//
//	idx, err := hnsw.New[uint64](hnsw.Options[uint64]{
//	    Dimensions:   128,
//	    Distance:     distance.SquaredEuclidean,
//	    MaxItemCount: 1_000_000,
//	    IDCodec:      serializer.Uint64{},
//	    ItemCodec:    hnsw.Float32ItemCodec[uint64]{IDCodec: serializer.Uint64{}},
//	})
//	if err != nil {
//	    panic(err)
//	}
//
//	ok, err := idx.Add(hnsw.Item[uint64]{ID: 1, Vector: vec})
//	results, err := idx.FindNearest(query, 10)
//
// See SPEC_FULL.md in the module root for the full design.
package hnsw
