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
	"log/slog"
	"time"
)

// =============================================================================
// Closeness Centrality
// =============================================================================

// Closeness computes outbound closeness centrality for every node.
//
// Description:
//
//	For each source, an unweighted BFS over outbound edges measures the
//	distance to every reachable node. The score is reachableCount divided
//	by the sum of those distances, i.e. the reciprocal of the average
//	distance from the node to the part of the network it can reach. The
//	source itself does not count as reachable; a node that reaches nothing
//	scores 0.
//
//	Direction matters: the score measures how efficiently a facility
//	reaches others, not how efficiently it is reached.
//
// Inputs:
//
//   - ctx: Context consulted between sources.
//   - g: The network snapshot. Must not be nil.
//
// Outputs:
//
//   - map[string]float64: Score per node ID, each in [0, 1].
//   - error: ErrNilGraph for a nil graph, or the context error if the
//     sweep was cancelled.
//
// Thread Safety: Safe for concurrent use.
//
// Complexity: O(V * (V+E)).
func Closeness(ctx context.Context, g *Graph) (map[string]float64, error) {
	if g == nil {
		return nil, ErrNilGraph
	}

	start := time.Now()
	ctx, span := startAnalysisSpan(ctx, "graph.Closeness", g)
	defer span.End()

	n := g.NodeCount()
	results := make([]float64, n)

	err := runSweep(ctx, n, func(ctx context.Context, chunk, lo, hi int) error {
		scratch := newBFSScratch(n)
		for s := lo; s < hi; s++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			sum, reached := scratch.distancesFrom(g, s)
			if reached > 0 {
				results[s] = float64(reached) / float64(sum)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	scores := make(map[string]float64, n)
	for i, id := range g.ids {
		scores[id] = results[i]
	}

	slog.Debug("closeness completed",
		slog.Int("node_count", n),
		slog.Duration("elapsed", time.Since(start)),
	)

	return scores, nil
}

// bfsScratch holds reusable BFS state for one worker.
type bfsScratch struct {
	dist  []int
	queue []int
}

func newBFSScratch(n int) *bfsScratch {
	return &bfsScratch{
		dist:  make([]int, n),
		queue: make([]int, 0, n),
	}
}

// distancesFrom runs an unweighted BFS from s over outbound edges and
// returns the sum of distances to reached nodes and the reached count.
// The source itself (distance 0) is excluded from both.
func (b *bfsScratch) distancesFrom(g *Graph, s int) (sum, reached int) {
	for i := range b.dist {
		b.dist[i] = -1
	}
	b.queue = b.queue[:0]

	b.dist[s] = 0
	b.queue = append(b.queue, s)

	for head := 0; head < len(b.queue); head++ {
		v := b.queue[head]
		for _, w := range g.succ[v] {
			if b.dist[w] >= 0 {
				continue
			}
			b.dist[w] = b.dist[v] + 1
			b.queue = append(b.queue, w)
			sum += b.dist[w]
			reached++
		}
	}
	return sum, reached
}
