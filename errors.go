package hnsw

import (
	"errors"
	"fmt"
)

// ErrDimensionMismatch indicates an item's vector length does not match the
// index's configured dimensionality.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("hnsw: dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// ErrSizeLimitExceeded is returned by Add when the index has reached
// MaxItemCount and cannot allocate a new node slot.
type ErrSizeLimitExceeded struct {
	MaxItemCount int
}

func (e *ErrSizeLimitExceeded) Error() string {
	return fmt.Sprintf("hnsw: size limit exceeded: maxItemCount=%d", e.MaxItemCount)
}

// ErrUncategorized wraps a worker-goroutine failure raised during AddAll.
// The original cause is reachable via errors.Unwrap.
type ErrUncategorized struct {
	cause error
}

func (e *ErrUncategorized) Error() string {
	return fmt.Sprintf("hnsw: uncategorized error in worker: %v", e.cause)
}

func (e *ErrUncategorized) Unwrap() error { return e.cause }

// ErrRemoveDisabled is returned by Remove when the index was built with
// RemoveEnabled: false.
var ErrRemoveDisabled = errors.New("hnsw: remove is disabled for this index")
