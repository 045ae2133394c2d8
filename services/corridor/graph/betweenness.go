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

	"go.opentelemetry.io/otel/attribute"
)

// =============================================================================
// Betweenness Centrality (Brandes)
// =============================================================================

// Betweenness computes normalized betweenness centrality for every node.
//
// Description:
//
//	Runs Brandes' algorithm over unweighted directed shortest paths: one
//	breadth-first pass per source builds the shortest-path DAG (distances,
//	path counts, predecessor lists), then dependency scores propagate back
//	through the DAG in reverse discovery order. A node's raw score is the
//	number of source-target shortest paths passing through it, weighted by
//	path multiplicity; the final score divides by (V-1)(V-2).
//
//	Graphs with fewer than three nodes have no intermediate positions and
//	an undefined normalization, so every score is 0 there.
//
//	Sources are swept in chunks; each chunk accumulates into its own
//	private vector and chunks merge in fixed order, so repeated runs on
//	the same snapshot produce bit-identical scores.
//
// Inputs:
//
//   - ctx: Context consulted between sources. A caller-imposed deadline
//     wraps the whole computation.
//   - g: The network snapshot. Must not be nil.
//
// Outputs:
//
//   - map[string]float64: Normalized score per node ID, all >= 0.
//   - error: ErrNilGraph for a nil graph, or the context error if the
//     sweep was cancelled.
//
// Thread Safety: Safe for concurrent use.
//
// Complexity: O(V*E) time, O(V+E) memory per worker.
func Betweenness(ctx context.Context, g *Graph) (map[string]float64, error) {
	if g == nil {
		return nil, ErrNilGraph
	}

	start := time.Now()
	ctx, span := startAnalysisSpan(ctx, "graph.Betweenness", g)
	defer span.End()

	n := g.NodeCount()
	scores := make(map[string]float64, n)

	if n < 3 {
		for _, id := range g.ids {
			scores[id] = 0
		}
		span.AddEvent("degenerate_graph")
		return scores, nil
	}

	chunks := chunkRanges(n)
	partials := make([][]float64, len(chunks))

	err := runSweep(ctx, n, func(ctx context.Context, chunk, lo, hi int) error {
		scratch := newBrandesScratch(n)
		local := make([]float64, n)
		for s := lo; s < hi; s++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			scratch.accumulateFrom(g, s, local)
		}
		partials[chunk] = local
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Merge in chunk order so float accumulation is reproducible.
	raw := make([]float64, n)
	for _, local := range partials {
		for i, v := range local {
			raw[i] += v
		}
	}

	norm := float64((n - 1) * (n - 2))
	for i, id := range g.ids {
		scores[id] = raw[i] / norm
	}

	slog.Debug("betweenness completed",
		slog.Int("node_count", n),
		slog.Int("chunks", len(chunks)),
		slog.Duration("elapsed", time.Since(start)),
	)
	span.SetAttributes(attribute.Int("network.chunks", len(chunks)))

	return scores, nil
}

// brandesScratch holds the per-worker state for Brandes source iterations,
// reused across the sources of one chunk to avoid reallocating O(V) slices
// per source.
type brandesScratch struct {
	dist  []int
	sigma []float64
	delta []float64
	preds [][]int
	stack []int
	queue []int
}

func newBrandesScratch(n int) *brandesScratch {
	return &brandesScratch{
		dist:  make([]int, n),
		sigma: make([]float64, n),
		delta: make([]float64, n),
		preds: make([][]int, n),
		stack: make([]int, 0, n),
		queue: make([]int, 0, n),
	}
}

// accumulateFrom runs one Brandes source iteration from s and adds the
// resulting dependency scores into acc.
func (b *brandesScratch) accumulateFrom(g *Graph, s int, acc []float64) {
	n := len(b.dist)
	for i := 0; i < n; i++ {
		b.dist[i] = -1
		b.sigma[i] = 0
		b.delta[i] = 0
		b.preds[i] = b.preds[i][:0]
	}
	b.stack = b.stack[:0]
	b.queue = b.queue[:0]

	b.dist[s] = 0
	b.sigma[s] = 1
	b.queue = append(b.queue, s)

	// Forward BFS building the shortest-path DAG.
	for head := 0; head < len(b.queue); head++ {
		v := b.queue[head]
		b.stack = append(b.stack, v)

		for _, w := range g.succ[v] {
			if b.dist[w] < 0 {
				b.dist[w] = b.dist[v] + 1
				b.queue = append(b.queue, w)
			}
			if b.dist[w] == b.dist[v]+1 {
				b.sigma[w] += b.sigma[v]
				b.preds[w] = append(b.preds[w], v)
			}
		}
	}

	// Dependency accumulation in reverse discovery order. The source
	// itself never collects a score.
	for k := len(b.stack) - 1; k >= 0; k-- {
		w := b.stack[k]
		for _, v := range b.preds[w] {
			b.delta[v] += b.sigma[v] / b.sigma[w] * (1 + b.delta[w])
		}
		if w != s {
			acc[w] += b.delta[w]
		}
	}
}
