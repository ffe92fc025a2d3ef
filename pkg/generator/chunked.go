package generator

import (
	"context"
	"runtime"

	"github.com/braunma/rackfloor/pkg/catalog"
	"github.com/braunma/rackfloor/pkg/models"
)

// DefaultChunkSize is the number of racks packed between yields
const DefaultChunkSize = 25

// ProgressFunc is called after each chunk with the number of racks built so far
type ProgressFunc func(done, total int)

// Result is delivered by GenerateAsync
type Result struct {
	Racks []*models.Rack
	Err   error
}

// GenerateChunked packs racks in chunks, yielding the processor between chunks and
// stopping early when ctx is cancelled. Output is identical to Generate.
func GenerateChunked(ctx context.Context, count int, cat catalog.Repository, opts Options, chunkSize int, progress ProgressFunc) ([]*models.Rack, error) {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	p := newPacker(count, cat, opts)
	if p == nil {
		return []*models.Rack{}, nil
	}

	racks := make([]*models.Rack, 0, count)
	for len(racks) < count {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		end := len(racks) + chunkSize
		if end > count {
			end = count
		}
		for len(racks) < end {
			racks = append(racks, p.next())
		}

		if progress != nil {
			progress(len(racks), count)
		}
		runtime.Gosched()
	}

	return racks, nil
}

// GenerateAsync runs GenerateChunked off the caller's goroutine. The channel receives
// exactly one Result and is then closed.
func GenerateAsync(ctx context.Context, count int, cat catalog.Repository, opts Options, chunkSize int, progress ProgressFunc) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		defer close(out)
		racks, err := GenerateChunked(ctx, count, cat, opts, chunkSize, progress)
		out <- Result{Racks: racks, Err: err}
	}()
	return out
}
