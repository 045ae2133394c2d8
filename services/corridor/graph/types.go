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
	"fmt"
	"log/slog"
	"time"
)

// Default configuration values.
const (
	// DefaultMaxNodes is the default maximum number of nodes a graph can hold.
	DefaultMaxNodes = 1_000_000

	// DefaultMaxEdges is the default maximum number of edges a graph can hold.
	DefaultMaxEdges = 10_000_000
)

// Node represents a facility in the transportation network.
//
// Only the ID participates in analytics; Name and coordinates are display
// attributes carried through untouched for the presentation layer.
type Node struct {
	// ID is the unique identifier of the facility.
	ID string

	// Name is the human-readable facility name.
	Name string

	// Lat is the facility latitude in decimal degrees.
	Lat float64

	// Lon is the facility longitude in decimal degrees.
	Lon float64
}

// Edge represents a directed link between two facilities.
//
// Multiple edges between the same ordered pair are allowed in the input;
// the index keeps the last weight written for the pair. Self-loops are
// structurally permitted and contribute no connectivity signal.
type Edge struct {
	// Source is the ID of the origin facility.
	Source string

	// Target is the ID of the destination facility.
	Target string

	// Weight is the link weight (distance, travel time, capacity).
	// Expected to be positive; see the validation package for the
	// caller-side gate.
	Weight float64
}

// GraphOptions configures Graph behavior and limits.
type GraphOptions struct {
	// MaxNodes is the maximum number of nodes the graph can hold.
	// Default: 1,000,000
	MaxNodes int

	// MaxEdges is the maximum number of edges the graph can hold.
	// Default: 10,000,000
	MaxEdges int
}

// DefaultGraphOptions returns sensible defaults for graph configuration.
func DefaultGraphOptions() GraphOptions {
	return GraphOptions{
		MaxNodes: DefaultMaxNodes,
		MaxEdges: DefaultMaxEdges,
	}
}

// GraphOption is a functional option for configuring Graph.
type GraphOption func(*GraphOptions)

// WithMaxNodes sets the maximum number of nodes the graph can hold.
func WithMaxNodes(n int) GraphOption {
	return func(o *GraphOptions) {
		o.MaxNodes = n
	}
}

// WithMaxEdges sets the maximum number of edges the graph can hold.
func WithMaxEdges(n int) GraphOption {
	return func(o *GraphOptions) {
		o.MaxEdges = n
	}
}

// edgeKey identifies a directed node pair in the weight lookup.
type edgeKey struct {
	from int
	to   int
}

// Graph is the immutable adjacency index of one network snapshot.
//
// Nodes are assigned dense integer indexes in input order at construction,
// and all adjacency is stored as index slices. Algorithms iterate those
// slices in a fixed order, which is what makes repeated computations on the
// same snapshot bit-identical.
//
// Thread Safety:
//
//	Graph is immutable after NewGraph returns and safe for concurrent use.
type Graph struct {
	// ids maps dense index to node ID, in input order.
	ids []string

	// nodes maps dense index to the node value, in input order.
	nodes []Node

	// index maps node ID to its dense index.
	index map[string]int

	// succ holds, per node index, the distinct successor indexes in first
	// insertion order. Duplicate ordered pairs in the input collapse here.
	succ [][]int

	// pred holds, per node index, the distinct predecessor indexes in
	// first insertion order.
	pred [][]int

	// weights maps a directed node pair to its weight. Last write wins
	// for duplicate ordered pairs.
	weights map[edgeKey]float64

	// options contains configuration.
	options GraphOptions

	// BuiltAtMilli is the Unix timestamp in milliseconds when the graph
	// was constructed.
	BuiltAtMilli int64
}

// NewGraph builds the adjacency index for one network snapshot.
//
// Description:
//
//	Assigns each node a dense index in input order, then folds the edge
//	list into successor sets, predecessor sets, and the pair-to-weight
//	lookup. Construction is O(V+E) and the result is immutable.
//
//	Edges referencing IDs absent from the node list are rejected, not
//	dropped: a partial adjacency structure built from a malformed edge
//	list would skew every downstream metric without any visible signal.
//
// Inputs:
//
//	nodes - Facility list. IDs must be non-empty and unique.
//	edges - Directed link list. Both endpoints must appear in nodes.
//	opts - Optional configuration options.
//
// Outputs:
//
//	*Graph - The immutable index.
//	error - Non-nil if the input violates the structural contract.
//
// Errors:
//
//	ErrInvalidNode - A node has an empty ID
//	ErrDuplicateNode - Two nodes share an ID
//	ErrInvalidEdge - An edge has an empty endpoint ID
//	ErrUnknownNode - An edge references an ID not in the node list
//	ErrMaxNodesExceeded - Node list exceeds the configured capacity
//	ErrMaxEdgesExceeded - Edge list exceeds the configured capacity
//
// Example:
//
//	g, err := graph.NewGraph(nodes, edges)
//	if err != nil {
//	    return fmt.Errorf("build network index: %w", err)
//	}
//	metrics, err := graph.ComputeCentrality(ctx, g, nil)
func NewGraph(nodes []Node, edges []Edge, opts ...GraphOption) (*Graph, error) {
	start := time.Now()

	options := DefaultGraphOptions()
	for _, opt := range opts {
		opt(&options)
	}

	if len(nodes) > options.MaxNodes {
		return nil, fmt.Errorf("%w: %d nodes, limit %d", ErrMaxNodesExceeded, len(nodes), options.MaxNodes)
	}
	if len(edges) > options.MaxEdges {
		return nil, fmt.Errorf("%w: %d edges, limit %d", ErrMaxEdgesExceeded, len(edges), options.MaxEdges)
	}

	g := &Graph{
		ids:     make([]string, len(nodes)),
		nodes:   make([]Node, len(nodes)),
		index:   make(map[string]int, len(nodes)),
		succ:    make([][]int, len(nodes)),
		pred:    make([][]int, len(nodes)),
		weights: make(map[edgeKey]float64, len(edges)),
		options: options,
	}

	for i, n := range nodes {
		if n.ID == "" {
			return nil, fmt.Errorf("node %d: %w: empty ID", i, ErrInvalidNode)
		}
		if _, exists := g.index[n.ID]; exists {
			return nil, fmt.Errorf("node %d: %w: %s", i, ErrDuplicateNode, n.ID)
		}
		g.ids[i] = n.ID
		g.nodes[i] = n
		g.index[n.ID] = i
	}

	for i, e := range edges {
		if e.Source == "" || e.Target == "" {
			return nil, fmt.Errorf("edge %d: %w: empty endpoint", i, ErrInvalidEdge)
		}
		from, ok := g.index[e.Source]
		if !ok {
			return nil, fmt.Errorf("edge %d: %w: source %q", i, ErrUnknownNode, e.Source)
		}
		to, ok := g.index[e.Target]
		if !ok {
			return nil, fmt.Errorf("edge %d: %w: target %q", i, ErrUnknownNode, e.Target)
		}

		key := edgeKey{from: from, to: to}
		if _, seen := g.weights[key]; !seen {
			g.succ[from] = append(g.succ[from], to)
			g.pred[to] = append(g.pred[to], from)
		}
		// Last write wins for duplicate ordered pairs.
		g.weights[key] = e.Weight
	}

	g.BuiltAtMilli = time.Now().UnixMilli()

	recordBuildMetrics(len(nodes), len(g.weights), time.Since(start))

	slog.Debug("network index built",
		slog.Int("nodes", len(nodes)),
		slog.Int("edges", len(g.weights)),
		slog.Int("input_edges", len(edges)),
		slog.Duration("elapsed", time.Since(start)),
	)

	return g, nil
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int {
	return len(g.ids)
}

// EdgeCount returns the number of distinct directed node pairs in the graph.
// Duplicate ordered pairs in the input collapse to one edge here.
func (g *Graph) EdgeCount() int {
	return len(g.weights)
}

// Contains reports whether a node with the given ID exists.
func (g *Graph) Contains(id string) bool {
	_, ok := g.index[id]
	return ok
}

// Node retrieves a node value by its ID.
func (g *Graph) Node(id string) (Node, bool) {
	i, ok := g.index[id]
	if !ok {
		return Node{}, false
	}
	return g.nodes[i], true
}

// NodeIDs returns all node IDs in input order. The returned slice is a copy.
func (g *Graph) NodeIDs() []string {
	out := make([]string, len(g.ids))
	copy(out, g.ids)
	return out
}

// Nodes returns an iterator over (ID, Node) pairs in input order.
//
// Example:
//
//	for id, n := range g.Nodes() {
//	    fmt.Println(id, n.Name)
//	}
func (g *Graph) Nodes() func(yield func(string, Node) bool) {
	return func(yield func(string, Node) bool) {
		for i, id := range g.ids {
			if !yield(id, g.nodes[i]) {
				return
			}
		}
	}
}

// Successors returns the distinct outbound neighbor IDs of a node, in first
// insertion order. Returns nil if the node does not exist.
func (g *Graph) Successors(id string) []string {
	i, ok := g.index[id]
	if !ok {
		return nil
	}
	out := make([]string, len(g.succ[i]))
	for k, j := range g.succ[i] {
		out[k] = g.ids[j]
	}
	return out
}

// Predecessors returns the distinct inbound neighbor IDs of a node, in first
// insertion order. Returns nil if the node does not exist.
func (g *Graph) Predecessors(id string) []string {
	i, ok := g.index[id]
	if !ok {
		return nil
	}
	out := make([]string, len(g.pred[i]))
	for k, j := range g.pred[i] {
		out[k] = g.ids[j]
	}
	return out
}

// Weight returns the weight of the directed edge source->target.
// The second return value is false when no such edge exists.
func (g *Graph) Weight(source, target string) (float64, bool) {
	from, ok := g.index[source]
	if !ok {
		return 0, false
	}
	to, ok := g.index[target]
	if !ok {
		return 0, false
	}
	w, ok := g.weights[edgeKey{from: from, to: to}]
	return w, ok
}

// hasEdge reports whether the directed pair from->to exists, by dense index.
func (g *Graph) hasEdge(from, to int) bool {
	_, ok := g.weights[edgeKey{from: from, to: to}]
	return ok
}

// GraphStats contains summary statistics about a graph snapshot.
type GraphStats struct {
	// NodeCount is the total number of nodes.
	NodeCount int

	// EdgeCount is the number of distinct directed node pairs.
	EdgeCount int

	// Density is EdgeCount / (V * (V-1)), 0 when V < 2.
	Density float64

	// SelfLoops is the number of nodes with an edge to themselves.
	SelfLoops int

	// IsolatedNodes is the number of nodes with no edges in either
	// direction.
	IsolatedNodes int

	// MaxNodes is the configured maximum node capacity.
	MaxNodes int

	// MaxEdges is the configured maximum edge capacity.
	MaxEdges int

	// BuiltAtMilli is when the graph was constructed.
	BuiltAtMilli int64
}

// Stats returns summary statistics about the graph.
func (g *Graph) Stats() GraphStats {
	selfLoops := 0
	isolated := 0
	for i := range g.ids {
		if g.hasEdge(i, i) {
			selfLoops++
		}
		if len(g.succ[i]) == 0 && len(g.pred[i]) == 0 {
			isolated++
		}
	}

	return GraphStats{
		NodeCount:     g.NodeCount(),
		EdgeCount:     g.EdgeCount(),
		Density:       Density(g),
		SelfLoops:     selfLoops,
		IsolatedNodes: isolated,
		MaxNodes:      g.options.MaxNodes,
		MaxEdges:      g.options.MaxEdges,
		BuiltAtMilli:  g.BuiltAtMilli,
	}
}
