// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"runtime"
	"sync"
)

// Config controls the worker pool.
type Config struct {
	Threads int // number of worker goroutines; <= 0 uses all CPUs
}

type result[T any] struct {
	i   int
	v   T
	err error
}

// Map calls fn for every index in [0, n) on cfg.Threads workers and returns
// the values in index order. The first error stops the feed and is returned;
// cancellation of ctx returns ctx.Err().
func Map[T any](ctx context.Context, cfg Config, n int, fn func(i int) (T, error)) ([]T, error) {
	if n == 0 {
		return nil, ctx.Err()
	}
	threads := cfg.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	if threads > n {
		threads = n
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan int, threads*2)
	results := make(chan result[T], threads*2)

	// Workers
	var wg sync.WaitGroup
	wg.Add(threads)
	for w := 0; w < threads; w++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case i, ok := <-jobs:
					if !ok {
						return
					}
					v, err := fn(i)
					select {
					case results <- result[T]{i: i, v: v, err: err}:
					case <-ctx.Done():
						return
					}
				}
			}
		}()
	}

	// Collector
	out := make([]T, n)
	var (
		cerr error
		cwg  sync.WaitGroup
	)
	cwg.Add(1)
	go func() {
		defer cwg.Done()
		for r := range results {
			if cerr != nil {
				continue
			}
			if r.err != nil {
				cerr = r.err
				cancel()
				continue
			}
			out[r.i] = r.v
		}
	}()

	// Feed work
feed:
	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- i:
		}
	}

	close(jobs)
	wg.Wait()
	close(results)
	cwg.Wait()

	if cerr != nil {
		return nil, cerr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
