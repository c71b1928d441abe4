// Package pipeline fans independent work items over a bounded worker pool.
// Gene models (and rescue regions) share no scratch state, so resolution
// parallelizes freely; results are delivered to the caller in input order
// so ledger merges keep deterministic first-seen precedence.
package pipeline

import (
	"context"
	"runtime"
	"sync"
)

// Config controls the worker pool.
type Config struct {
	Threads int // number of worker goroutines; 0 = all CPUs
}

// ForEach runs fn over items with cfg.Threads workers and hands results
// to visit sequentially, in input order. The first error from fn or visit
// is returned; context cancellation wins over work errors.
func ForEach[T, R any](ctx context.Context, cfg Config, items []T, fn func(T) (R, error), visit func(R) error) error {
	threads := cfg.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	if threads > len(items) {
		threads = len(items)
	}
	if threads < 1 {
		threads = 1
	}

	jobs := make(chan int)
	outs := make([]R, len(items))
	errs := make([]error, len(items))

	var wg sync.WaitGroup
	wg.Add(threads)
	for w := 0; w < threads; w++ {
		go func() {
			defer wg.Done()
			for idx := range jobs {
				outs[idx], errs[idx] = fn(items[idx])
			}
		}()
	}

feed:
	for i := range items {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return err
	}
	for i := range items {
		if errs[i] != nil {
			return errs[i]
		}
		if err := visit(outs[i]); err != nil {
			return err
		}
	}
	return nil
}
