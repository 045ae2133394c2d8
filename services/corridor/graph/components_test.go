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
	"errors"
	"testing"
)

// =============================================================================
// Connected Component Tests
// =============================================================================

func TestConnectedComponents_DisjointPairs(t *testing.T) {
	g := disjointPairs(t)

	components, err := ConnectedComponents(g)
	if err != nil {
		t.Fatalf("ConnectedComponents: %v", err)
	}
	if len(components) != 2 {
		t.Fatalf("expected 2 components, got %d", len(components))
	}
	for _, c := range components {
		if len(c) != 2 {
			t.Errorf("component %v has size %d, want 2", c, len(c))
		}
	}
}

func TestConnectedComponents_DirectionIgnored(t *testing.T) {
	// A -> B with no return edge is still one undirected component.
	g := newTestNetwork().
		addNode("A").
		addNode("B").
		addEdge("A", "B", 1).
		build(t)

	components, err := ConnectedComponents(g)
	if err != nil {
		t.Fatalf("ConnectedComponents: %v", err)
	}
	if len(components) != 1 || len(components[0]) != 2 {
		t.Errorf("components = %v, want one component of 2", components)
	}
}

func TestGiantComponentFraction_FourCycle(t *testing.T) {
	g := fourCycle(t)

	ngc, err := GiantComponentFraction(g)
	if err != nil {
		t.Fatalf("GiantComponentFraction: %v", err)
	}
	if ngc != 1.0 {
		t.Errorf("NGC = %v, want 1.0", ngc)
	}
}

func TestGiantComponentFraction_DisjointPairs(t *testing.T) {
	g := disjointPairs(t)

	ngc, err := GiantComponentFraction(g)
	if err != nil {
		t.Fatalf("GiantComponentFraction: %v", err)
	}
	if ngc != 0.5 {
		t.Errorf("NGC = %v, want 0.5", ngc)
	}
}

func TestGiantComponentFraction_Degenerate(t *testing.T) {
	tests := []struct {
		name     string
		nodes    []Node
		expected float64
	}{
		{
			name:     "empty graph",
			nodes:    nil,
			expected: 0,
		},
		{
			name:     "single isolated node",
			nodes:    []Node{{ID: "A"}},
			expected: 1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewGraph(tt.nodes, nil)
			if err != nil {
				t.Fatalf("NewGraph: %v", err)
			}
			ngc, err := GiantComponentFraction(g)
			if err != nil {
				t.Fatalf("GiantComponentFraction: %v", err)
			}
			if ngc != tt.expected {
				t.Errorf("NGC = %v, want %v", ngc, tt.expected)
			}
		})
	}
}

func TestGiantComponentFraction_NilGraph(t *testing.T) {
	_, err := GiantComponentFraction(nil)
	if !errors.Is(err, ErrNilGraph) {
		t.Errorf("expected ErrNilGraph, got %v", err)
	}
}

func TestLargestComponentSize_RemovedMask(t *testing.T) {
	// A <-> B bridged to C <-> D through B -> C. Removing the bridge
	// endpoint C splits the survivors into {A, B} and {D}.
	g := newTestNetwork().
		addNode("A").
		addNode("B").
		addNode("C").
		addNode("D").
		addEdge("A", "B", 1).
		addEdge("B", "A", 1).
		addEdge("B", "C", 1).
		addEdge("C", "D", 1).
		addEdge("D", "C", 1).
		build(t)

	largest, alive := g.largestComponentSize(nil)
	if largest != 4 || alive != 4 {
		t.Errorf("intact graph: largest=%d alive=%d, want 4, 4", largest, alive)
	}

	removed := make([]bool, g.NodeCount())
	removed[2] = true // C in input order
	largest, alive = g.largestComponentSize(removed)
	if largest != 2 || alive != 3 {
		t.Errorf("after removing C: largest=%d alive=%d, want 2, 3", largest, alive)
	}

	for i := range removed {
		removed[i] = true
	}
	largest, alive = g.largestComponentSize(removed)
	if largest != 0 || alive != 0 {
		t.Errorf("all removed: largest=%d alive=%d, want 0, 0", largest, alive)
	}
}
