package hnsw

import (
	"github.com/shoubo/hnsw/distance"
	"github.com/shoubo/hnsw/serializer"
)

// Options configures an Index at construction. See SPEC_FULL.md §3
// (Configuration) for the full configuration contract.
type Options[TId comparable] struct {
	// Dimensions is required; every inserted item's vector must match it.
	Dimensions int

	// Distance computes the distance between two dense vectors.
	Distance distance.Func

	// MaxItemCount is the hard cap on simultaneous live+tombstoned nodes.
	MaxItemCount int

	// M is the target number of connections per node at levels >= 1.
	// maxM = M, maxM0 = 2*M, levelLambda = 1/ln(M). Default 10.
	M int

	// EF is the base-layer search width used at query time. Default 10.
	EF int

	// EFConstruction is the base-layer search width used at insert time.
	// The effective value is max(EFConstruction, M). Default 200.
	EFConstruction int

	// RemoveEnabled allows Remove and upsert-with-replace on Add. Default
	// false.
	RemoveEnabled bool

	// IDCodec serializes external identifiers; required for both
	// deterministic level assignment and persistence.
	IDCodec serializer.Serializer[TId]

	// ItemCodec serializes a full Item (vector + version) for persistence.
	ItemCodec serializer.Serializer[Item[TId]]

	// Logger receives structured diagnostic output. A nil Logger disables
	// logging.
	Logger *Logger
}

// DefaultOptions mirrors the reference implementation's BuilderBase
// defaults (DEFAULT_M, DEFAULT_EF, DEFAULT_EF_CONSTRUCTION,
// DEFAULT_REMOVE_ENABLED).
func DefaultOptions[TId comparable]() Options[TId] {
	return Options[TId]{
		M:              10,
		EF:             10,
		EFConstruction: 200,
		RemoveEnabled:  false,
	}
}

func (o Options[TId]) withDefaults() Options[TId] {
	if o.M == 0 {
		o.M = 10
	}
	if o.M == 1 {
		// 1/ln(1) is a division by zero in the level-assignment formula.
		o.M = 2
	}
	if o.EF == 0 {
		o.EF = 10
	}
	if o.EFConstruction == 0 {
		o.EFConstruction = 200
	}
	if o.EFConstruction < o.M {
		o.EFConstruction = o.M
	}
	return o
}
