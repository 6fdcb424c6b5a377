package activity

import (
	"context"
	"errors"
	"io"
	"runtime"
	"sync"

	"github.com/Sumatoshi-tech/osmfang/internal/source"
)

// eventBufferSize is the capacity of the channel between the source reader
// and the fold workers.
const eventBufferSize = 4096

// Aggregate drains the source with a pool of fold workers and merges their
// partial triples into one. A single reader goroutine pulls events in order;
// workers own their partial exclusively until merge time, so no state is
// shared during the fold. workers <= 0 selects runtime.NumCPU().
//
// Any source error aborts the whole run: the reports assume complete
// indexes, so there is no meaningful partial result to salvage.
func Aggregate(ctx context.Context, src source.Source, workers int) (*Stats, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	events := make(chan source.Event, eventBufferSize)
	readErr := make(chan error, 1)

	go func() {
		defer close(events)

		for {
			ev, err := src.Next()
			if err != nil {
				if errors.Is(err, io.EOF) {
					readErr <- nil
				} else {
					readErr <- err
				}

				return
			}

			select {
			case events <- ev:
			case <-ctx.Done():
				readErr <- ctx.Err()

				return
			}
		}
	}()

	partials := make([]*Stats, workers)

	var wg sync.WaitGroup

	for i := range workers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			local := NewStats()
			for ev := range events {
				local.Fold(ev)
			}

			partials[i] = local
		}()
	}

	wg.Wait()

	err := <-readErr
	if err != nil {
		return nil, err
	}

	global := partials[0]
	for _, partial := range partials[1:] {
		global.Merge(partial)
	}

	if global.Events == 0 {
		return nil, ErrEmptyInput
	}

	return global, nil
}
