// Package serializer provides pluggable identifier and item codecs for the
// HNSW index's persistence format.
//
// This mirrors the teacher module's codec.Codec plug-point (see
// codec/codec.go) but is shaped around the reference HNSW implementation's
// ObjectSerializer contract: a pair of capabilities bound to an io.Writer /
// io.Reader pair rather than a byte-slice Marshal/Unmarshal pair, since the
// persisted stream interleaves many small values (a length-prefixed vector,
// a version, a neighbor list) rather than one self-contained blob per call.
package serializer

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Serializer writes and reads a single value of type T to/from a stream.
// Implementations must be safe for concurrent use: the index calls an ID
// codec's Write from concurrent Add calls (to derive node levels) without
// holding any lock. Save holds the index's global lock for its entire
// duration, so two Saves never interleave.
type Serializer[T any] interface {
	Write(v T, w io.Writer) error
	Read(r io.Reader) (T, error)
}

// Uint64 serializes uint64 identifiers as fixed-width big-endian values.
type Uint64 struct{}

func (Uint64) Write(v uint64, w io.Writer) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

func (Uint64) Read(r io.Reader) (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(buf[:]), nil
}

// Int64 serializes int64 identifiers as fixed-width big-endian values.
type Int64 struct{}

func (Int64) Write(v int64, w io.Writer) error {
	return Uint64{}.Write(uint64(v), w)
}

func (Int64) Read(r io.Reader) (int64, error) {
	u, err := Uint64{}.Read(r)
	return int64(u), err
}

// String serializes string identifiers as a length-prefixed UTF-8 byte run.
type String struct{}

func (String) Write(v string, w io.Writer) error {
	if len(v) > 1<<31-1 {
		return fmt.Errorf("serializer: string identifier too long: %d bytes", len(v))
	}
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(v)))
	if _, err := w.Write(lenBuf[:]); err != nil {
		return err
	}
	_, err := io.WriteString(w, v)
	return err
}

func (String) Read(r io.Reader) (string, error) {
	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return "", err
	}
	n := binary.BigEndian.Uint32(lenBuf[:])
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

// Float32Vector serializes a []float32 as a length-prefixed run of
// big-endian IEEE-754 values. Used to persist an Item's vector field.
type Float32Vector struct{}

func (Float32Vector) Write(v []float32, w io.Writer) error {
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(v)))
	if _, err := w.Write(lenBuf[:]); err != nil {
		return err
	}
	buf := make([]byte, 4*len(v))
	for i, f := range v {
		binary.BigEndian.PutUint32(buf[i*4:], float32bits(f))
	}
	_, err := w.Write(buf)
	return err
}

func (Float32Vector) Read(r io.Reader) ([]float32, error) {
	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return nil, err
	}
	n := binary.BigEndian.Uint32(lenBuf[:])
	buf := make([]byte, 4*n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	out := make([]float32, n)
	for i := range out {
		out[i] = float32frombits(binary.BigEndian.Uint32(buf[i*4:]))
	}
	return out, nil
}
