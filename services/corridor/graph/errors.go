// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package graph provides transport-network graph types and analytics.
//
// The graph package represents a transportation network as a directed,
// weighted graph: nodes are facilities (stations, terminals, interchanges)
// and edges are directional links carrying a positive weight. On top of the
// adjacency index it implements per-node centrality measures (degree,
// betweenness, closeness, PageRank, DomiRank), aggregate topology statistics
// (density, clustering, average shortest path, giant-component fraction),
// and a robustness simulator that measures connectivity decay under ranked
// node removal.
//
// # Ownership Model
//
// NewGraph copies the supplied node and edge slices into its own dense
// index; callers may reuse or mutate their slices afterwards. Query methods
// return copies, never views into internal storage.
//
// # Thread Safety
//
// A Graph is immutable after NewGraph returns and safe for unbounded
// concurrent reads. All analytics are pure functions of the graph snapshot:
// they allocate private accumulators and never write shared state, so any
// number of computations may run against the same Graph concurrently.
//
// # Lifecycle
//
// A typical analysis session:
//  1. Build once with NewGraph(nodes, edges)
//  2. Query adjacency with Successors(), Predecessors(), Weight()
//  3. Analyze with ComputeCentrality(), NetworkStatistics(), or a Simulator
//
// Derived results are value objects recomputed fresh on every call; nothing
// is cached between calls and repeated runs on the same snapshot produce
// identical output.
package graph

import "errors"

// Sentinel errors for graph construction and analytics.
var (
	// ErrUnknownNode is returned when an edge references a node ID that is
	// absent from the node list. Construction rejects such edges outright
	// rather than dropping them, so a malformed edge list is visible to the
	// caller instead of silently thinning the adjacency structure.
	ErrUnknownNode = errors.New("edge references unknown node")

	// ErrDuplicateNode is returned when the node list contains two nodes
	// with the same ID.
	ErrDuplicateNode = errors.New("duplicate node ID")

	// ErrInvalidNode is returned when a node has an empty ID.
	ErrInvalidNode = errors.New("invalid node")

	// ErrInvalidEdge is returned when an edge has an empty source or
	// target ID.
	ErrInvalidEdge = errors.New("invalid edge")

	// ErrMaxNodesExceeded is returned when the node list is larger than the
	// configured maximum node capacity.
	ErrMaxNodesExceeded = errors.New("maximum node count exceeded")

	// ErrMaxEdgesExceeded is returned when the edge list is larger than the
	// configured maximum edge capacity.
	ErrMaxEdgesExceeded = errors.New("maximum edge count exceeded")

	// ErrNilGraph is returned by analytics entry points invoked with a nil
	// graph.
	ErrNilGraph = errors.New("graph is nil")

	// ErrUnknownStrategy is returned by the robustness simulator when asked
	// to run a removal strategy it does not recognize.
	ErrUnknownStrategy = errors.New("unknown removal strategy")
)
