// SPDX-License-Identifier: MIT

package markov

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// forEachShard splits [0,n) into at most workers contiguous ranges and runs fn
// on each concurrently. Ranges are disjoint, so fn may write its own output
// cells without locking. The first error cancels the shared context.
func forEachShard(ctx context.Context, n, workers int, fn func(ctx context.Context, lo, hi int) error) error {
	if n == 0 {
		return nil
	}
	if workers > n {
		workers = n
	}
	size := (n + workers - 1) / workers

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for lo := 0; lo < n; lo += size {
		lo, hi := lo, min(lo+size, n)
		g.Go(func() error { return fn(gctx, lo, hi) })
	}

	return g.Wait()
}
