package hnsw

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/klauspost/compress/zstd"
)

const persistVersion1 = 0x01

// Save writes the index to w in the corrected wire layout of spec.md §6:
// connections as a single pass per level, the item written exactly once
// per node, and the deleted flag written exactly once per node. (The
// reference implementation's writer double-nests the connections loop and
// writes item/deleted per level instead of per node; that bug is not
// reproduced here.)
//
// The distance capability and the two codecs are Go values (a func and a
// pair of interface implementations), not self-describing data, so unlike
// the reference format this stream does not attempt to serialize them:
// Load takes them as parameters instead, the same way New does.
func (idx *Index[TId]) Save(w io.Writer) error {
	idx.globalLock.Lock()
	defer idx.globalLock.Unlock()

	bw := &byteWriter{w: w}

	bw.writeByte(persistVersion1)
	bw.writeInt32(int32(idx.dimension))
	bw.writeInt32(int32(idx.maxItemCount))
	bw.writeInt32(int32(idx.opts.M))
	bw.writeInt32(int32(idx.mmax))
	bw.writeInt32(int32(idx.mmax0))
	bw.writeFloat64(idx.levelLambda)
	bw.writeInt32(int32(idx.opts.EF))
	bw.writeInt32(int32(idx.opts.EFConstruction))
	bw.writeBool(idx.opts.RemoveEnabled)
	bw.writeInt32(int32(idx.nodeCount))
	if bw.err != nil {
		return bw.err
	}

	if err := binary.Write(w, binary.BigEndian, int32(len(idx.lookup))); err != nil {
		return err
	}
	for id, internalID := range idx.lookup {
		if err := idx.opts.IDCodec.Write(id, w); err != nil {
			return err
		}
		if err := binary.Write(w, binary.BigEndian, int32(internalID)); err != nil {
			return err
		}
	}

	if err := binary.Write(w, binary.BigEndian, int32(len(idx.tombstones))); err != nil {
		return err
	}
	for id, version := range idx.tombstones {
		if err := idx.opts.IDCodec.Write(id, w); err != nil {
			return err
		}
		if err := binary.Write(w, binary.BigEndian, version); err != nil {
			return err
		}
	}

	if err := binary.Write(w, binary.BigEndian, int32(idx.nodeCount)); err != nil {
		return err
	}
	for i := 0; i < idx.nodeCount; i++ {
		n := idx.nodeAt(uint32(i))
		if n == nil {
			if err := binary.Write(w, binary.BigEndian, int32(-1)); err != nil {
				return err
			}
			continue
		}

		if err := binary.Write(w, binary.BigEndian, int32(n.id)); err != nil {
			return err
		}

		numLevels := n.topLevel() + 1
		if err := binary.Write(w, binary.BigEndian, int32(numLevels)); err != nil {
			return err
		}
		for level := 0; level < numLevels; level++ {
			neighbors := n.connectionsAt(level)
			if err := binary.Write(w, binary.BigEndian, int32(len(neighbors))); err != nil {
				return err
			}
			for _, nb := range neighbors {
				if err := binary.Write(w, binary.BigEndian, int32(nb)); err != nil {
					return err
				}
			}
		}

		if err := idx.opts.ItemCodec.Write(n.Item(), w); err != nil {
			return err
		}
		if err := binary.Write(w, binary.BigEndian, n.isDeleted()); err != nil {
			return err
		}
	}

	entryPointID := int32(idx.entryPoint.Load())
	return binary.Write(w, binary.BigEndian, entryPointID)
}

// SaveCompressed writes the index in the same layout as Save, streamed
// through a zstd encoder (grounded on the teacher's wal and diskann
// segment codecs, both of which compress their on-disk layout with
// klauspost/compress/zstd). Use LoadCompressed to read it back.
func (idx *Index[TId]) SaveCompressed(w io.Writer) error {
	enc, err := zstd.NewWriter(w)
	if err != nil {
		return err
	}
	if err := idx.Save(enc); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

// LoadCompressed reads back a stream written by SaveCompressed.
func LoadCompressed[TId comparable](r io.Reader, opts Options[TId]) (*Index[TId], error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return Load[TId](dec, opts)
}

// Load reconstructs an Index from the stream written by Save. opts must
// supply the same Distance, IDCodec, and ItemCodec used to build the
// original index; Dimensions, MaxItemCount, and the other scalar
// parameters are overwritten from the stream.
func Load[TId comparable](r io.Reader, opts Options[TId]) (*Index[TId], error) {
	opts = opts.withDefaults()
	if opts.Distance == nil {
		return nil, fmt.Errorf("hnsw: Load requires Distance")
	}
	if opts.IDCodec == nil {
		return nil, fmt.Errorf("hnsw: Load requires IDCodec")
	}
	if opts.ItemCodec == nil {
		return nil, fmt.Errorf("hnsw: Load requires ItemCodec")
	}

	br := &byteReader{r: r}

	version := br.readByte()
	if br.err != nil {
		return nil, br.err
	}
	if version != persistVersion1 {
		return nil, fmt.Errorf("hnsw: unsupported persist version %d", version)
	}

	dimensions := br.readInt32()
	maxItemCount := br.readInt32()
	m := br.readInt32()
	maxM := br.readInt32()
	maxM0 := br.readInt32()
	levelLambda := br.readFloat64()
	ef := br.readInt32()
	efConstruction := br.readInt32()
	removeEnabled := br.readBool()
	_ = br.readInt32() // nodeCount, redundant with the trailing node-array length
	if br.err != nil {
		return nil, br.err
	}

	opts.Dimensions = int(dimensions)
	opts.MaxItemCount = int(maxItemCount)
	opts.M = int(m)
	opts.EF = int(ef)
	opts.EFConstruction = int(efConstruction)
	opts.RemoveEnabled = removeEnabled

	idx, err := New[TId](opts)
	if err != nil {
		return nil, err
	}
	idx.mmax = int(maxM)
	idx.mmax0 = int(maxM0)
	idx.levelLambda = levelLambda

	var lookupCount int32
	if err := binary.Read(r, binary.BigEndian, &lookupCount); err != nil {
		return nil, err
	}
	lookup := make(map[TId]uint32, lookupCount)
	for i := int32(0); i < lookupCount; i++ {
		id, err := opts.IDCodec.Read(r)
		if err != nil {
			return nil, err
		}
		var internalID int32
		if err := binary.Read(r, binary.BigEndian, &internalID); err != nil {
			return nil, err
		}
		lookup[id] = uint32(internalID)
	}

	var tombstoneCount int32
	if err := binary.Read(r, binary.BigEndian, &tombstoneCount); err != nil {
		return nil, err
	}
	tombstones := make(map[TId]int64, tombstoneCount)
	for i := int32(0); i < tombstoneCount; i++ {
		id, err := opts.IDCodec.Read(r)
		if err != nil {
			return nil, err
		}
		var version int64
		if err := binary.Read(r, binary.BigEndian, &version); err != nil {
			return nil, err
		}
		tombstones[id] = version
	}

	var nodeCount int32
	if err := binary.Read(r, binary.BigEndian, &nodeCount); err != nil {
		return nil, err
	}

	maxLevel := 0
	for i := int32(0); i < nodeCount; i++ {
		var id int32
		if err := binary.Read(r, binary.BigEndian, &id); err != nil {
			return nil, err
		}
		if id == -1 {
			continue
		}

		var numLevels int32
		if err := binary.Read(r, binary.BigEndian, &numLevels); err != nil {
			return nil, err
		}
		connections := make([][]uint32, numLevels)
		for level := int32(0); level < numLevels; level++ {
			var size int32
			if err := binary.Read(r, binary.BigEndian, &size); err != nil {
				return nil, err
			}
			neighbors := make([]uint32, size)
			for j := int32(0); j < size; j++ {
				var nb int32
				if err := binary.Read(r, binary.BigEndian, &nb); err != nil {
					return nil, err
				}
				neighbors[j] = uint32(nb)
			}
			connections[level] = neighbors
		}

		item, err := opts.ItemCodec.Read(r)
		if err != nil {
			return nil, err
		}
		var deleted bool
		if err := binary.Read(r, binary.BigEndian, &deleted); err != nil {
			return nil, err
		}

		n := newNode[TId](uint32(id), int(numLevels)-1, item)
		n.connections = connections
		if deleted {
			n.markDeleted()
		}
		idx.nodes[id] = n

		if int(numLevels)-1 > maxLevel {
			maxLevel = int(numLevels) - 1
		}
	}

	idx.nodeCount = int(nodeCount)
	idx.lookup = lookup
	idx.tombstones = tombstones
	idx.maxLevel = maxLevel
	for _, internalID := range lookup {
		idx.liveIDs.Add(internalID)
	}

	var entryPointID int32
	if err := binary.Read(r, binary.BigEndian, &entryPointID); err != nil {
		return nil, err
	}
	idx.entryPoint.Store(int64(entryPointID))

	return idx, nil
}

// byteWriter/byteReader collect the fixed-width scalar header fields with
// single-error-check convenience, matching the pattern binary.Write/Read
// already establish for the variable-length sections below.
type byteWriter struct {
	w   io.Writer
	err error
}

func (bw *byteWriter) writeByte(b byte) {
	if bw.err != nil {
		return
	}
	_, bw.err = bw.w.Write([]byte{b})
}

func (bw *byteWriter) writeInt32(v int32) {
	if bw.err != nil {
		return
	}
	bw.err = binary.Write(bw.w, binary.BigEndian, v)
}

func (bw *byteWriter) writeFloat64(v float64) {
	if bw.err != nil {
		return
	}
	bw.err = binary.Write(bw.w, binary.BigEndian, math.Float64bits(v))
}

func (bw *byteWriter) writeBool(v bool) {
	if bw.err != nil {
		return
	}
	bw.err = binary.Write(bw.w, binary.BigEndian, v)
}

type byteReader struct {
	r   io.Reader
	err error
}

func (br *byteReader) readByte() byte {
	if br.err != nil {
		return 0
	}
	var buf [1]byte
	_, br.err = io.ReadFull(br.r, buf[:])
	return buf[0]
}

func (br *byteReader) readInt32() int32 {
	if br.err != nil {
		return 0
	}
	var v int32
	br.err = binary.Read(br.r, binary.BigEndian, &v)
	return v
}

func (br *byteReader) readFloat64() float64 {
	if br.err != nil {
		return 0
	}
	var bits uint64
	br.err = binary.Read(br.r, binary.BigEndian, &bits)
	return math.Float64frombits(bits)
}

func (br *byteReader) readBool() bool {
	if br.err != nil {
		return false
	}
	var v bool
	br.err = binary.Read(br.r, binary.BigEndian, &v)
	return v
}
