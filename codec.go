package hnsw

import (
	"io"

	"github.com/shoubo/hnsw/serializer"
)

// Float32ItemCodec is the standard Item codec for dense float32 vectors: it
// writes the identifier (via IDCodec), the vector, and the version in
// sequence, and is the companion to serializer.Float32Vector.
type Float32ItemCodec[TId comparable] struct {
	IDCodec serializer.Serializer[TId]
}

func (c Float32ItemCodec[TId]) Write(it Item[TId], w io.Writer) error {
	if err := c.IDCodec.Write(it.ID, w); err != nil {
		return err
	}
	if err := (serializer.Float32Vector{}).Write(it.Vector, w); err != nil {
		return err
	}
	return (serializer.Int64{}).Write(it.Version, w)
}

func (c Float32ItemCodec[TId]) Read(r io.Reader) (Item[TId], error) {
	id, err := c.IDCodec.Read(r)
	if err != nil {
		return Item[TId]{}, err
	}
	vector, err := (serializer.Float32Vector{}).Read(r)
	if err != nil {
		return Item[TId]{}, err
	}
	version, err := (serializer.Int64{}).Read(r)
	if err != nil {
		return Item[TId]{}, err
	}
	return Item[TId]{ID: id, Vector: vector, Version: version}, nil
}
