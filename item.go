package hnsw

// Item is a caller-owned vector record, copied by value into a node on
// insertion.
type Item[TId comparable] struct {
	ID      TId
	Vector  []float32
	Version int64
}

// Dimensions returns the number of components in the item's vector.
func (it Item[TId]) Dimensions() int {
	return len(it.Vector)
}

// SearchResult pairs a distance with the item it was measured against,
// ordered ascending (nearest first) by FindNearest/FindNeighbors.
type SearchResult[TId comparable] struct {
	Distance float32
	Item     Item[TId]
}
