package pipeline

import (
	"context"
	"fmt"
	"runtime"
	"sync"
)

// RunBatch runs independent configurations on up to workers goroutines and
// returns the results in input order. workers <= 0 selects GOMAXPROCS.
//
// The first failing run, or ctx cancellation, stops the batch: no further
// runs start and that error is returned.
func RunBatch(ctx context.Context, cfgs []Config, workers int, opts ...Option) ([]Result, error) {
	if len(cfgs) == 0 {
		return nil, nil
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, len(cfgs))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		results  = make([]Result, len(cfgs))
		jobs     = make(chan int)
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	fail := func(err error) {
		errOnce.Do(func() {
			firstErr = err
			cancel()
		})
	}

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if ctx.Err() != nil {
					continue
				}
				res, err := Run(cfgs[i], opts...)
				if err != nil {
					fail(fmt.Errorf("run %d: %w", i, err))
					continue
				}
				results[i] = res
			}
		}()
	}

feed:
	for i := range cfgs {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
