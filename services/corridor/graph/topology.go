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
// Aggregate Topology Statistics
// =============================================================================

// NetworkStats contains aggregate statistics for one network snapshot.
// It is a pure function of the snapshot, recomputed fresh on every call.
type NetworkStats struct {
	// NodeCount is the number of facilities.
	NodeCount int

	// EdgeCount is the number of distinct directed links.
	EdgeCount int

	// Density is EdgeCount / (V * (V-1)), 0 when V < 2.
	Density float64

	// AvgClustering is the average clustering coefficient over all nodes.
	AvgClustering float64

	// AvgShortestPath is the mean BFS distance over all reachable ordered
	// pairs, 0 when no pair is reachable.
	AvgShortestPath float64

	// GiantComponentFraction is the fraction of nodes in the largest
	// undirected component.
	GiantComponentFraction float64
}

// Density returns the edge density E / (V * (V-1)).
//
// With fewer than two nodes the denominator degenerates, so the density of
// an empty or single-node graph is 0. Self-loops count toward E but not
// toward the V*(V-1) possible ordered pairs, so graphs with self-loops can
// exceed 1.
func Density(g *Graph) float64 {
	if g == nil {
		return 0
	}
	v := g.NodeCount()
	if v < 2 {
		return 0
	}
	return float64(g.EdgeCount()) / float64(v*(v-1))
}

// NetworkStatistics computes all aggregate topology statistics.
//
// Description:
//
//	Bundles density, average clustering coefficient, average shortest
//	path length, and the giant-component fraction into one snapshot
//	summary. Each figure is computed independently from the immutable
//	index; no intermediate state is shared or retained.
//
// Inputs:
//
//   - ctx: Context consulted during the shortest-path sweep.
//   - g: The network snapshot. Must not be nil.
//
// Outputs:
//
//   - *NetworkStats: The aggregate figures. All zero for an empty graph.
//   - error: ErrNilGraph for a nil graph, or the context error if the
//     path sweep was cancelled.
//
// Thread Safety: Safe for concurrent use.
//
// Complexity: O(V*(V+E)) dominated by the all-sources BFS.
func NetworkStatistics(ctx context.Context, g *Graph) (*NetworkStats, error) {
	if g == nil {
		return nil, ErrNilGraph
	}

	start := time.Now()
	ctx, span := startAnalysisSpan(ctx, "graph.NetworkStatistics", g)
	defer span.End()

	avgPath, err := avgShortestPath(ctx, g)
	if err != nil {
		return nil, err
	}

	ngc, err := GiantComponentFraction(g)
	if err != nil {
		return nil, err
	}

	stats := &NetworkStats{
		NodeCount:              g.NodeCount(),
		EdgeCount:              g.EdgeCount(),
		Density:                Density(g),
		AvgClustering:          avgClustering(g),
		AvgShortestPath:        avgPath,
		GiantComponentFraction: ngc,
	}

	recordTopologyMetrics(ctx, time.Since(start))
	span.SetAttributes(
		attribute.Float64("network.density", stats.Density),
		attribute.Float64("network.giant_component", stats.GiantComponentFraction),
	)
	slog.Debug("topology statistics computed",
		slog.Int("node_count", stats.NodeCount),
		slog.Int("edge_count", stats.EdgeCount),
		slog.Duration("elapsed", time.Since(start)),
	)

	return stats, nil
}

// avgClustering computes the average clustering coefficient.
//
// Each node's neighborhood is the undirected union of its successors and
// predecessors, excluding itself. Nodes with fewer than two neighbors
// contribute 0 and still count in the denominator: the average divides by
// V, not by the number of eligible nodes. A neighbor pair (a, b) counts as
// connected when the directed edge a->b exists.
func avgClustering(g *Graph) float64 {
	n := g.NodeCount()
	if n == 0 {
		return 0
	}

	neighborhood := make([]int, 0, 16)
	stamp := make([]int, n)
	total := 0.0

	for i := 0; i < n; i++ {
		marker := i + 1
		neighborhood = neighborhood[:0]
		for _, w := range g.succ[i] {
			if w != i && stamp[w] != marker {
				stamp[w] = marker
				neighborhood = append(neighborhood, w)
			}
		}
		for _, w := range g.pred[i] {
			if w != i && stamp[w] != marker {
				stamp[w] = marker
				neighborhood = append(neighborhood, w)
			}
		}

		k := len(neighborhood)
		if k < 2 {
			continue
		}

		connected := 0
		for _, a := range neighborhood {
			for _, b := range neighborhood {
				if a != b && g.hasEdge(a, b) {
					connected++
				}
			}
		}
		total += float64(connected) / float64(k*(k-1))
	}

	return total / float64(n)
}

// avgShortestPath computes the mean unweighted directed distance over all
// reachable ordered pairs, excluding the zero self-distances. Returns 0
// when no pair is reachable.
func avgShortestPath(ctx context.Context, g *Graph) (float64, error) {
	n := g.NodeCount()
	if n == 0 {
		return 0, nil
	}

	sums := make([]int, n)
	counts := make([]int, n)

	err := runSweep(ctx, n, func(ctx context.Context, chunk, lo, hi int) error {
		scratch := newBFSScratch(n)
		for s := lo; s < hi; s++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			sums[s], counts[s] = scratch.distancesFrom(g, s)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	totalDist, pairs := 0, 0
	for i := 0; i < n; i++ {
		totalDist += sums[i]
		pairs += counts[i]
	}
	if pairs == 0 {
		return 0, nil
	}
	return float64(totalDist) / float64(pairs), nil
}
