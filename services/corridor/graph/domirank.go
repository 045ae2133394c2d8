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
	"go.opentelemetry.io/otel/trace"
)

// =============================================================================
// DomiRank
// =============================================================================

// DomiRank configuration constants.
const (
	// DefaultDomiRankAlpha is the diffusion step size.
	DefaultDomiRankAlpha = 0.1

	// DefaultDomiRankBeta is the decay rate applied to a node's own value.
	DefaultDomiRankBeta = 0.1

	// DefaultDomiRankTheta scales the degree pressure term.
	DefaultDomiRankTheta = 1.0

	// DefaultDomiRankIterations is the fixed iteration count.
	DefaultDomiRankIterations = 100
)

// DomiRankOptions configures the DomiRank computation.
type DomiRankOptions struct {
	// Alpha is the diffusion step size. Must be > 0. Default: 0.1
	Alpha float64

	// Beta is the decay rate. Must be > 0. Default: 0.1
	Beta float64

	// Theta scales the degree pressure term. Must be > 0. Default: 1.0
	Theta float64

	// Iterations is the fixed number of update steps.
	// Must be > 0. Default: 100
	Iterations int
}

// Validate checks options and applies defaults for invalid values.
func (o *DomiRankOptions) Validate() {
	if o.Alpha <= 0 {
		o.Alpha = DefaultDomiRankAlpha
	}
	if o.Beta <= 0 {
		o.Beta = DefaultDomiRankBeta
	}
	if o.Theta <= 0 {
		o.Theta = DefaultDomiRankTheta
	}
	if o.Iterations <= 0 {
		o.Iterations = DefaultDomiRankIterations
	}
}

// DefaultDomiRankOptions returns sensible defaults.
func DefaultDomiRankOptions() *DomiRankOptions {
	return &DomiRankOptions{
		Alpha:      DefaultDomiRankAlpha,
		Beta:       DefaultDomiRankBeta,
		Theta:      DefaultDomiRankTheta,
		Iterations: DefaultDomiRankIterations,
	}
}

// DomiRankResult contains the output of a DomiRank computation.
type DomiRankResult struct {
	// Scores maps node ID to DomiRank score. Entries are non-negative and
	// sum to 1, or to 0 when the process accumulated no mass at all.
	Scores map[string]float64

	// Iterations is the number of update steps performed.
	Iterations int

	// TotalMass is the vector sum before normalization. Zero means the
	// decay term extinguished every node.
	TotalMass float64
}

// DomiRank computes dominance-diffusion centrality for all nodes.
//
// Description:
//
//	DomiRank models a bounded dominance process: each node's value grows
//	under pressure proportional to its total degree, is suppressed by the
//	values of its neighbors, and decays at a fixed rate. The discrete
//	update per step is
//
//	    new = max(0, old + alpha*(theta*k - sum(neighbors)) - beta*old)
//
//	where k is the node's total degree (in + out) and the neighbor sum
//	runs over the undirected union of its successors and predecessors.
//	All nodes update synchronously from the previous vector, values are
//	clamped non-negative at every step, and after the fixed iteration
//	count the vector is normalized to sum to 1. If the total mass is
//	exactly 0 the all-zero vector is returned as-is.
//
//	High scores mark facilities that dominate their neighborhood: well
//	connected nodes whose neighbors are comparatively weak.
//
// Inputs:
//
//   - ctx: Context consulted between iterations.
//   - g: The network snapshot. Must not be nil.
//   - opts: Configuration options. If nil, defaults are used.
//
// Outputs:
//
//   - *DomiRankResult: Non-negative scores per node ID.
//   - error: ErrNilGraph for a nil graph, or the context error if
//     cancelled mid-iteration.
//
// Thread Safety: Safe for concurrent use.
//
// Complexity: O(k * (V+E)) for k iterations, O(V+E) memory.
func DomiRank(ctx context.Context, g *Graph, opts *DomiRankOptions) (*DomiRankResult, error) {
	if g == nil {
		return nil, ErrNilGraph
	}

	start := time.Now()
	ctx, span := startAnalysisSpan(ctx, "graph.DomiRank", g)
	defer span.End()

	if opts == nil {
		opts = DefaultDomiRankOptions()
	} else {
		opts.Validate()
	}

	span.SetAttributes(
		attribute.Float64("domirank.alpha", opts.Alpha),
		attribute.Float64("domirank.beta", opts.Beta),
		attribute.Float64("domirank.theta", opts.Theta),
		attribute.Int("domirank.iterations", opts.Iterations),
	)

	n := g.NodeCount()
	if n == 0 {
		span.AddEvent("empty_graph")
		return &DomiRankResult{Scores: make(map[string]float64)}, nil
	}

	// Undirected neighbor union per node, deduplicated with a stamp
	// array. Self-loops keep the node in its own neighbor set.
	neigh := make([][]int, n)
	stamp := make([]int, n)
	for i := 0; i < n; i++ {
		marker := i + 1
		for _, w := range g.succ[i] {
			if stamp[w] != marker {
				stamp[w] = marker
				neigh[i] = append(neigh[i], w)
			}
		}
		for _, w := range g.pred[i] {
			if stamp[w] != marker {
				stamp[w] = marker
				neigh[i] = append(neigh[i], w)
			}
		}
	}

	degrees := g.totalDegrees()

	old := make([]float64, n)
	next := make([]float64, n)
	initial := 1.0 / float64(n)
	for i := range old {
		old[i] = initial
	}

	for iter := 0; iter < opts.Iterations; iter++ {
		if err := ctx.Err(); err != nil {
			span.AddEvent("cancelled", trace.WithAttributes(
				attribute.Int("domirank.iterations_completed", iter),
			))
			return nil, err
		}

		for i := 0; i < n; i++ {
			sum := 0.0
			for _, w := range neigh[i] {
				sum += old[w]
			}
			v := old[i] + opts.Alpha*(opts.Theta*degrees[i]-sum) - opts.Beta*old[i]
			if v < 0 {
				v = 0
			}
			next[i] = v
		}

		old, next = next, old
	}

	total := 0.0
	for _, v := range old {
		total += v
	}
	if total > 0 {
		for i := range old {
			old[i] /= total
		}
	}

	result := &DomiRankResult{
		Scores:     make(map[string]float64, n),
		Iterations: opts.Iterations,
		TotalMass:  total,
	}
	for i, id := range g.ids {
		result.Scores[id] = old[i]
	}

	slog.Debug("domirank completed",
		slog.Int("iterations", opts.Iterations),
		slog.Int("node_count", n),
		slog.Float64("total_mass", total),
		slog.Duration("elapsed", time.Since(start)),
	)

	return result, nil
}
