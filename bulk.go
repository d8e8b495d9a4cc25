package hnsw

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// ProgressListener is notified as AddAll makes progress; a nil listener
// disables notification (the null-object default of
// original_source/listener/NullProgressListener.java).
type ProgressListener func(done, total int)

// AddAll inserts items across numWorkers goroutines, notifying listener
// roughly every progressInterval completions. A worker failure is wrapped
// in ErrUncategorized and returned once every goroutine has finished: the
// failing worker stops at the item that failed, while the other workers
// are not cancelled and drain their share of the batch.
func (idx *Index[TId]) AddAll(ctx context.Context, items []Item[TId], numWorkers int, listener ProgressListener, progressInterval int) error {
	if numWorkers <= 0 {
		numWorkers = 1
	}
	if progressInterval <= 0 {
		progressInterval = 1
	}

	total := len(items)
	if total == 0 {
		return nil
	}

	chunk := (total + numWorkers - 1) / numWorkers
	var done atomic.Int64
	var g errgroup.Group

	for start := 0; start < total; start += chunk {
		end := start + chunk
		if end > total {
			end = total
		}
		batch := items[start:end]

		g.Go(func() error {
			for _, item := range batch {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}

				if _, err := idx.Add(item); err != nil {
					return &ErrUncategorized{cause: err}
				}

				d := done.Add(1)
				if listener != nil && (d%int64(progressInterval) == 0 || int(d) == total) {
					listener(int(d), total)
				}
			}
			return nil
		})
	}

	return g.Wait()
}
