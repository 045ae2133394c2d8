// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package graph

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Parallel sweep configuration.
const (
	// parallelThreshold is the node count below which per-source sweeps
	// run sequentially. Goroutine overhead dominates on small graphs.
	parallelThreshold = 32

	// maxParallelWorkers caps concurrency for parallel sweeps.
	maxParallelWorkers = 8
)

// chunkRanges splits [0, n) into at most maxParallelWorkers contiguous
// ranges of near-equal size. The layout depends only on n, never on worker
// scheduling, so per-chunk accumulators always merge in the same order and
// floating-point sums are reproducible run to run.
func chunkRanges(n int) [][2]int {
	if n <= 0 {
		return nil
	}
	count := maxParallelWorkers
	if n < count {
		count = n
	}
	size := (n + count - 1) / count

	ranges := make([][2]int, 0, count)
	for lo := 0; lo < n; lo += size {
		hi := lo + size
		if hi > n {
			hi = n
		}
		ranges = append(ranges, [2]int{lo, hi})
	}
	return ranges
}

// runSweep executes worker over every chunk of [0, n).
//
// Each per-source sweep (betweenness, closeness, shortest paths) only reads
// the immutable graph and writes to its own chunk accumulator, so chunks are
// independent. Below parallelThreshold the chunks run sequentially on the
// calling goroutine; above it they run concurrently, capped at
// min(GOMAXPROCS-style CPU count, maxParallelWorkers). Worker panics are
// logged with their stack and surfaced as errors instead of taking down the
// process.
func runSweep(ctx context.Context, n int, worker func(ctx context.Context, chunk, lo, hi int) error) error {
	chunks := chunkRanges(n)
	if len(chunks) == 0 {
		return nil
	}

	if n < parallelThreshold {
		for c, r := range chunks {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := worker(ctx, c, r[0], r[1]); err != nil {
				return err
			}
		}
		return nil
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(min(runtime.NumCPU(), maxParallelWorkers))

	for c, r := range chunks {
		c, r := c, r // Capture loop variables
		eg.Go(func() (err error) {
			defer func() {
				if rec := recover(); rec != nil {
					buf := make([]byte, 64<<10)
					buf = buf[:runtime.Stack(buf, false)]
					slog.Error("sweep worker panic",
						slog.Int("chunk", c),
						slog.Any("panic", rec),
						slog.String("stack", string(buf)),
					)
					err = fmt.Errorf("sweep worker panic in chunk %d: %v", c, rec)
				}
			}()
			return worker(egCtx, c, r[0], r[1])
		})
	}

	return eg.Wait()
}
