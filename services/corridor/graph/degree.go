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

// Degree holds the degree counts of a single node.
type Degree struct {
	// In is the number of distinct inbound neighbors.
	In int

	// Out is the number of distinct outbound neighbors.
	Out int

	// Total is In + Out.
	Total int
}

// Degrees computes in-degree, out-degree, and total degree for every node.
//
// Description:
//
//	In-degree is the size of the predecessor set and out-degree the size
//	of the successor set, so duplicate input edges between the same pair
//	count once. Summed over all nodes, in-degrees and out-degrees each
//	equal the graph's edge count.
//
// Outputs:
//
//	map[string]Degree - Degree counts keyed by node ID. Empty for an
//	empty graph.
//	error - ErrNilGraph if g is nil.
//
// Complexity: O(V).
func Degrees(g *Graph) (map[string]Degree, error) {
	if g == nil {
		return nil, ErrNilGraph
	}

	out := make(map[string]Degree, len(g.ids))
	for i, id := range g.ids {
		in := len(g.pred[i])
		outd := len(g.succ[i])
		out[id] = Degree{In: in, Out: outd, Total: in + outd}
	}
	return out, nil
}

// totalDegrees returns total degree per dense index. Used by the robustness
// simulator's degree strategy and by DomiRank's pressure term.
func (g *Graph) totalDegrees() []float64 {
	out := make([]float64, len(g.ids))
	for i := range g.ids {
		out[i] = float64(len(g.pred[i]) + len(g.succ[i]))
	}
	return out
}
