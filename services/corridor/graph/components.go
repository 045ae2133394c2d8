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

// =============================================================================
// Connectivity (undirected view)
// =============================================================================
//
// Component analysis ignores edge direction: a link between two facilities
// keeps them in the same component regardless of which way traffic flows.
// The same primitive serves GiantComponentFraction on the full snapshot and
// the robustness simulator on progressively pruned subgraphs.

// largestComponentSize computes the size of the largest undirected component
// among the nodes still alive, plus the alive node count itself.
//
// removed marks nodes excluded from the induced subgraph; nil means every
// node is alive. Edges with a removed endpoint are ignored. Self-loops never
// affect connectivity.
//
// Complexity: O(V + E).
func (g *Graph) largestComponentSize(removed []bool) (largest, alive int) {
	n := len(g.ids)
	if n == 0 {
		return 0, 0
	}

	for i := 0; i < n; i++ {
		if removed != nil && removed[i] {
			continue
		}
		alive++
	}
	if alive == 0 {
		return 0, 0
	}

	visited := make([]bool, n)
	queue := make([]int, 0, alive)

	for start := 0; start < n; start++ {
		if visited[start] || (removed != nil && removed[start]) {
			continue
		}

		queue = queue[:0]
		queue = append(queue, start)
		visited[start] = true
		size := 0

		for head := 0; head < len(queue); head++ {
			v := queue[head]
			size++

			for _, w := range g.succ[v] {
				if visited[w] || (removed != nil && removed[w]) {
					continue
				}
				visited[w] = true
				queue = append(queue, w)
			}
			for _, w := range g.pred[v] {
				if visited[w] || (removed != nil && removed[w]) {
					continue
				}
				visited[w] = true
				queue = append(queue, w)
			}
		}

		if size > largest {
			largest = size
		}
	}

	return largest, alive
}

// ConnectedComponents returns the undirected components of the graph, each
// as a list of node IDs in discovery order. Components are ordered by their
// first node's input position.
//
// Outputs:
//
//	[][]string - One slice of node IDs per component. Empty for an empty
//	graph.
//	error - ErrNilGraph if g is nil.
func ConnectedComponents(g *Graph) ([][]string, error) {
	if g == nil {
		return nil, ErrNilGraph
	}

	n := len(g.ids)
	components := make([][]string, 0)
	if n == 0 {
		return components, nil
	}

	visited := make([]bool, n)
	queue := make([]int, 0, n)

	for start := 0; start < n; start++ {
		if visited[start] {
			continue
		}

		queue = queue[:0]
		queue = append(queue, start)
		visited[start] = true
		component := make([]string, 0, 1)

		for head := 0; head < len(queue); head++ {
			v := queue[head]
			component = append(component, g.ids[v])

			for _, w := range g.succ[v] {
				if !visited[w] {
					visited[w] = true
					queue = append(queue, w)
				}
			}
			for _, w := range g.pred[v] {
				if !visited[w] {
					visited[w] = true
					queue = append(queue, w)
				}
			}
		}

		components = append(components, component)
	}

	return components, nil
}

// GiantComponentFraction returns the fraction of nodes that belong to the
// largest undirected component.
//
// Description:
//
//	The normalized giant component is the headline connectivity figure for
//	a transport network: 1.0 means every facility can reach every other
//	when direction is ignored, and it decays toward 0 as the network
//	fragments. An empty graph yields 0; a single isolated node yields 1.
//
// Outputs:
//
//	float64 - Largest component size divided by node count, in [0, 1].
//	error - ErrNilGraph if g is nil.
func GiantComponentFraction(g *Graph) (float64, error) {
	if g == nil {
		return 0, ErrNilGraph
	}

	largest, alive := g.largestComponentSize(nil)
	if alive == 0 {
		return 0, nil
	}
	return float64(largest) / float64(alive), nil
}
