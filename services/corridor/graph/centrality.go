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
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// =============================================================================
// Combined Centrality Analysis
// =============================================================================

// CentralityOptions configures a combined centrality run. Nil sub-options
// fall back to their defaults.
type CentralityOptions struct {
	// PageRank configures the PageRank pass.
	PageRank *PageRankOptions

	// DomiRank configures the DomiRank pass.
	DomiRank *DomiRankOptions
}

// CentralityMetrics holds every per-node centrality figure from one
// analysis run. Values are recomputed fresh on every call and never
// mutated afterwards.
type CentralityMetrics struct {
	// InDegree is the number of distinct inbound neighbors.
	InDegree int

	// OutDegree is the number of distinct outbound neighbors.
	OutDegree int

	// Degree is InDegree + OutDegree.
	Degree int

	// Betweenness is the normalized Brandes betweenness score.
	Betweenness float64

	// Closeness is reachable-count over total distance for outbound
	// traversal.
	Closeness float64

	// PageRank is the damped random-walk score. Sums to ~1 across all
	// nodes.
	PageRank float64

	// DomiRank is the dominance-diffusion score. Non-negative, sums to
	// 1 unless total mass collapsed to 0.
	DomiRank float64
}

// CentralityResult is the output of one combined centrality run.
type CentralityResult struct {
	// RunID uniquely identifies this analysis run.
	RunID string

	// ComputedAt is the UTC completion time.
	ComputedAt time.Time

	// Elapsed is the wall-clock duration of the run.
	Elapsed time.Duration

	// Metrics maps node ID to its full centrality figures.
	Metrics map[string]CentralityMetrics
}

// ComputeCentrality computes all per-node centrality metrics in one call.
//
// Description:
//
//	Runs the betweenness, closeness, PageRank, and DomiRank passes
//	concurrently against the shared immutable snapshot, each writing
//	into its own private accumulator, then merges them with the degree
//	figures into one metrics map. The first failing pass cancels the
//	rest. Repeated calls on the same snapshot produce bit-identical
//	results.
//
// Inputs:
//
//   - ctx: Context threaded into every pass.
//   - g: The network snapshot. Must not be nil.
//   - opts: Optional pass configuration. Nil means defaults everywhere.
//
// Outputs:
//
//   - *CentralityResult: Per-node metrics keyed by node ID, empty for
//     an empty graph.
//   - error: ErrNilGraph for a nil graph, or the first pass error.
//
// Example:
//
//	result, err := graph.ComputeCentrality(ctx, g, nil)
//	if err != nil {
//	    return err
//	}
//	hub := result.Metrics["ANC"]
//	fmt.Println(hub.PageRank, hub.Betweenness)
//
// Thread Safety: Safe for concurrent use.
//
// Complexity: O(V*E) dominated by the betweenness pass.
func ComputeCentrality(ctx context.Context, g *Graph, opts *CentralityOptions) (*CentralityResult, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if opts == nil {
		opts = &CentralityOptions{}
	}

	start := time.Now()
	ctx, span := startAnalysisSpan(ctx, "graph.ComputeCentrality", g)
	defer span.End()

	var (
		betweenness map[string]float64
		closeness   map[string]float64
		pageRank    *PageRankResult
		domiRank    *DomiRankResult
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		betweenness, err = Betweenness(egCtx, g)
		if err != nil {
			return fmt.Errorf("betweenness: %w", err)
		}
		return nil
	})
	eg.Go(func() error {
		var err error
		closeness, err = Closeness(egCtx, g)
		if err != nil {
			return fmt.Errorf("closeness: %w", err)
		}
		return nil
	})
	eg.Go(func() error {
		var err error
		pageRank, err = PageRank(egCtx, g, opts.PageRank)
		if err != nil {
			return fmt.Errorf("pagerank: %w", err)
		}
		return nil
	})
	eg.Go(func() error {
		var err error
		domiRank, err = DomiRank(egCtx, g, opts.DomiRank)
		if err != nil {
			return fmt.Errorf("domirank: %w", err)
		}
		return nil
	})

	if err := eg.Wait(); err != nil {
		recordCentralityMetrics(ctx, time.Since(start), false)
		return nil, err
	}

	metrics := make(map[string]CentralityMetrics, g.NodeCount())
	for i, id := range g.ids {
		metrics[id] = CentralityMetrics{
			InDegree:    len(g.pred[i]),
			OutDegree:   len(g.succ[i]),
			Degree:      len(g.pred[i]) + len(g.succ[i]),
			Betweenness: betweenness[id],
			Closeness:   closeness[id],
			PageRank:    pageRank.Scores[id],
			DomiRank:    domiRank.Scores[id],
		}
	}

	elapsed := time.Since(start)
	recordCentralityMetrics(ctx, elapsed, true)
	slog.Debug("centrality analysis completed",
		slog.Int("node_count", g.NodeCount()),
		slog.Int("edge_count", g.EdgeCount()),
		slog.Duration("elapsed", elapsed),
	)

	return &CentralityResult{
		RunID:      uuid.NewString(),
		ComputedAt: time.Now().UTC(),
		Elapsed:    elapsed,
		Metrics:    metrics,
	}, nil
}
