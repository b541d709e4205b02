package analysis

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/san-kum/colloc/internal/collocation"
)

// Sizes returns the inclusive range [min, max].
func Sizes(min, max int) []int {
	if max < min {
		return nil
	}
	out := make([]int, 0, max-min+1)
	for n := min; n <= max; n++ {
		out = append(out, n)
	}
	return out
}

// sweepWorkers bounds the number of sizes evaluated at once.
var sweepWorkers = runtime.GOMAXPROCS(0)

// Sweep evaluates fn for every size, at most sweepWorkers at a time.
// Reports are returned in the order of sizes. The first error aborts the
// sweep; a cancelled context stops sizes that have not started yet.
func Sweep[S collocation.Scalar](ctx context.Context, sizes []int, dist collocation.Distribution, fn Function) ([]*Report, error) {
	reports := make([]*Report, len(sizes))
	errs := make([]error, len(sizes))

	workers := sweepWorkers
	if workers < 1 {
		workers = 1
	}
	sem := make(chan struct{}, workers)

	var wg sync.WaitGroup
launch:
	for i, n := range sizes {
		select {
		case <-ctx.Done():
			break launch
		case sem <- struct{}{}:
		}
		if ctx.Err() != nil {
			<-sem
			break
		}

		wg.Add(1)
		go func(idx, n int) {
			defer wg.Done()
			defer func() { <-sem }()
			reports[idx], errs[idx] = Evaluate[S](n, dist, fn)
		}(i, n)
	}

	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("sweep n=%d: %w", sizes[i], err)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return reports, nil
}
