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
// PageRank
// =============================================================================

// PageRank configuration constants.
const (
	// DefaultDampingFactor is the probability of following a link (vs
	// random jump). Standard value from the original PageRank paper.
	DefaultDampingFactor = 0.85

	// DefaultPageRankIterations is the fixed iteration count. There is no
	// convergence check: a fixed count keeps the output deterministic and
	// the cost bounded, which matters more here than the last few digits
	// of precision.
	DefaultPageRankIterations = 50
)

// PageRankOptions configures the PageRank computation.
type PageRankOptions struct {
	// DampingFactor is the probability of following a link (vs random
	// jump). Must be in [0, 1]. Default: 0.85
	DampingFactor float64

	// Iterations is the fixed number of power iterations to run.
	// Must be > 0. Default: 50
	Iterations int
}

// Validate checks options and applies defaults for invalid values.
func (o *PageRankOptions) Validate() {
	if o.DampingFactor < 0 || o.DampingFactor > 1 {
		o.DampingFactor = DefaultDampingFactor
	}
	if o.Iterations <= 0 {
		o.Iterations = DefaultPageRankIterations
	}
}

// DefaultPageRankOptions returns sensible defaults.
func DefaultPageRankOptions() *PageRankOptions {
	return &PageRankOptions{
		DampingFactor: DefaultDampingFactor,
		Iterations:    DefaultPageRankIterations,
	}
}

// PageRankResult contains the output of a PageRank computation.
type PageRankResult struct {
	// Scores maps node ID to PageRank score.
	// Scores sum to approximately 1.0 for a non-empty graph.
	Scores map[string]float64

	// Iterations is the number of iterations performed.
	Iterations int
}

// PageRank computes PageRank scores for all nodes in the graph.
//
// Description:
//
//	Power iteration of the damped random walk along edge direction,
//	starting from the uniform distribution 1/V. Each iteration first
//	collects the rank mass sitting on sink nodes (out-degree 0) and
//	redistributes it evenly across all nodes, preventing rank leakage,
//	then combines teleport mass (1-d)/V with the inbound contributions
//	d * score/outDegree from each predecessor.
//
//	The iteration count is fixed; the result is a deterministic function
//	of the snapshot and the options.
//
// Inputs:
//
//   - ctx: Context consulted between iterations.
//   - g: The network snapshot. Must not be nil.
//   - opts: Configuration options. If nil, defaults are used.
//
// Outputs:
//
//   - *PageRankResult: Scores for all nodes. Empty scores for an empty
//     graph.
//   - error: ErrNilGraph for a nil graph, or the context error if
//     cancelled mid-iteration.
//
// Example:
//
//	result, err := graph.PageRank(ctx, g, nil)
//	if err != nil {
//	    return err
//	}
//	for id, score := range result.Scores {
//	    fmt.Println(id, score)
//	}
//
// Thread Safety: Safe for concurrent use.
//
// Complexity: O(k * (V+E)) for k iterations.
func PageRank(ctx context.Context, g *Graph, opts *PageRankOptions) (*PageRankResult, error) {
	if g == nil {
		return nil, ErrNilGraph
	}

	start := time.Now()
	ctx, span := startAnalysisSpan(ctx, "graph.PageRank", g)
	defer span.End()

	if opts == nil {
		opts = DefaultPageRankOptions()
	} else {
		opts.Validate()
	}

	span.SetAttributes(
		attribute.Float64("pagerank.damping_factor", opts.DampingFactor),
		attribute.Int("pagerank.iterations", opts.Iterations),
	)

	n := g.NodeCount()
	if n == 0 {
		span.AddEvent("empty_graph")
		return &PageRankResult{Scores: make(map[string]float64)}, nil
	}

	N := float64(n)
	d := opts.DampingFactor

	// Two dense vectors, swapped each iteration.
	scores := make([]float64, n)
	newScores := make([]float64, n)

	initial := 1.0 / N
	for i := range scores {
		scores[i] = initial
	}

	// Sink nodes have no outbound edges; their mass is redistributed
	// uniformly every iteration.
	sinks := make([]int, 0)
	for i := 0; i < n; i++ {
		if len(g.succ[i]) == 0 {
			sinks = append(sinks, i)
		}
	}
	span.SetAttributes(attribute.Int("pagerank.sink_count", len(sinks)))

	for iter := 0; iter < opts.Iterations; iter++ {
		if err := ctx.Err(); err != nil {
			span.AddEvent("cancelled", trace.WithAttributes(
				attribute.Int("pagerank.iterations_completed", iter),
			))
			return nil, err
		}

		sinkContribution := 0.0
		for _, s := range sinks {
			sinkContribution += scores[s]
		}
		sinkContribution = d * sinkContribution / N

		for i := 0; i < n; i++ {
			newScore := (1-d)/N + sinkContribution
			for _, p := range g.pred[i] {
				outDeg := len(g.succ[p])
				if outDeg > 0 {
					newScore += d * scores[p] / float64(outDeg)
				}
			}
			newScores[i] = newScore
		}

		scores, newScores = newScores, scores
	}

	result := &PageRankResult{
		Scores:     make(map[string]float64, n),
		Iterations: opts.Iterations,
	}
	for i, id := range g.ids {
		result.Scores[id] = scores[i]
	}

	slog.Debug("pagerank completed",
		slog.Int("iterations", opts.Iterations),
		slog.Int("node_count", n),
		slog.Int("sink_count", len(sinks)),
		slog.Duration("elapsed", time.Since(start)),
	)

	return result, nil
}
