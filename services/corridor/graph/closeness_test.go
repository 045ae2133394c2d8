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
	"errors"
	"math"
	"testing"
)

// =============================================================================
// Closeness Tests
// =============================================================================

func TestCloseness_FourCycle(t *testing.T) {
	g := fourCycle(t)

	scores, err := Closeness(context.Background(), g)
	if err != nil {
		t.Fatalf("Closeness: %v", err)
	}

	// Each node reaches 3 others at distances 1+2+3: 3/6 = 0.5.
	for _, id := range []string{"A", "B", "C", "D"} {
		if math.Abs(scores[id]-0.5) > 1e-9 {
			t.Errorf("closeness of %s = %v, want 0.5", id, scores[id])
		}
	}
}

func TestCloseness_Path(t *testing.T) {
	// A -> B -> C
	g := newTestNetwork().
		addNode("A").
		addNode("B").
		addNode("C").
		addEdge("A", "B", 1).
		addEdge("B", "C", 1).
		build(t)

	scores, err := Closeness(context.Background(), g)
	if err != nil {
		t.Fatalf("Closeness: %v", err)
	}

	// A reaches B at 1 and C at 2: 2/3. B reaches C at 1: 1/1. C
	// reaches nobody: 0.
	if math.Abs(scores["A"]-2.0/3.0) > 1e-9 {
		t.Errorf("closeness of A = %v, want 2/3", scores["A"])
	}
	if math.Abs(scores["B"]-1.0) > 1e-9 {
		t.Errorf("closeness of B = %v, want 1.0", scores["B"])
	}
	if scores["C"] != 0 {
		t.Errorf("closeness of C = %v, want 0", scores["C"])
	}
}

func TestCloseness_IsolatedNode(t *testing.T) {
	g := newTestNetwork().
		addNode("A").
		addNode("B").
		addNode("isolated").
		addEdge("A", "B", 1).
		build(t)

	scores, err := Closeness(context.Background(), g)
	if err != nil {
		t.Fatalf("Closeness: %v", err)
	}
	if scores["isolated"] != 0 {
		t.Errorf("closeness of isolated = %v, want 0", scores["isolated"])
	}
}

func TestCloseness_SelfLoopOnly(t *testing.T) {
	// A node whose only edge is a self-loop reaches nobody beyond its
	// own zero-distance origin.
	g := newTestNetwork().
		addNode("A").
		addEdge("A", "A", 1).
		build(t)

	scores, err := Closeness(context.Background(), g)
	if err != nil {
		t.Fatalf("Closeness: %v", err)
	}
	if scores["A"] != 0 {
		t.Errorf("closeness of A = %v, want 0", scores["A"])
	}
}

func TestCloseness_EmptyGraph(t *testing.T) {
	g := newTestNetwork().build(t)

	scores, err := Closeness(context.Background(), g)
	if err != nil {
		t.Fatalf("Closeness: %v", err)
	}
	if len(scores) != 0 {
		t.Errorf("expected 0 scores, got %d", len(scores))
	}
}

func TestCloseness_Deterministic(t *testing.T) {
	g := benchmarkNetwork(t, 120)

	first, err := Closeness(context.Background(), g)
	if err != nil {
		t.Fatalf("Closeness: %v", err)
	}
	second, err := Closeness(context.Background(), g)
	if err != nil {
		t.Fatalf("Closeness: %v", err)
	}

	for id, s := range first {
		if second[id] != s {
			t.Errorf("closeness of %s differs between runs: %v vs %v", id, s, second[id])
		}
	}
}

func TestCloseness_ContextCancelled(t *testing.T) {
	g := benchmarkNetwork(t, 50)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Closeness(ctx, g)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestCloseness_NilGraph(t *testing.T) {
	_, err := Closeness(context.Background(), nil)
	if !errors.Is(err, ErrNilGraph) {
		t.Errorf("expected ErrNilGraph, got %v", err)
	}
}

// =============================================================================
// Benchmark
// =============================================================================

func BenchmarkCloseness_1000Nodes(b *testing.B) {
	g := benchmarkNetwork(b, 1000)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Closeness(ctx, g); err != nil {
			b.Fatal(err)
		}
	}
}
