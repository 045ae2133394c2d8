// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package validation

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/CorridorFOSS/services/corridor/graph"
)

// -----------------------------------------------------------------------------
// Node Tests
// -----------------------------------------------------------------------------

func TestValidateNode(t *testing.T) {
	t.Run("valid node", func(t *testing.T) {
		node := graph.Node{
			ID:   "anchorage-port",
			Name: "Port of Anchorage",
			Lat:  61.2381,
			Lon:  -149.8876,
		}
		assert.NoError(t, ValidateNode(node))
	})

	t.Run("valid node without coordinates", func(t *testing.T) {
		node := graph.Node{ID: "hub-1"}
		assert.NoError(t, ValidateNode(node))
	})

	t.Run("empty id", func(t *testing.T) {
		err := ValidateNode(graph.Node{Name: "Nameless"})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "id must not be empty")
	})

	t.Run("oversized id", func(t *testing.T) {
		node := graph.Node{ID: strings.Repeat("x", MaxIDLength+1)}
		err := ValidateNode(node)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "id exceeds 128 characters")
	})

	t.Run("oversized name", func(t *testing.T) {
		node := graph.Node{
			ID:   "hub-1",
			Name: strings.Repeat("n", MaxNameLength+1),
		}
		err := ValidateNode(node)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "name exceeds 256 characters")
	})

	t.Run("latitude out of range", func(t *testing.T) {
		err := ValidateNode(graph.Node{ID: "hub-1", Lat: 91.0})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "lat must be a valid latitude")
	})

	t.Run("longitude out of range", func(t *testing.T) {
		err := ValidateNode(graph.Node{ID: "hub-1", Lon: -190.5})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "lon must be a valid longitude")
	})

	t.Run("NaN coordinates", func(t *testing.T) {
		err := ValidateNode(graph.Node{ID: "hub-1", Lat: math.NaN()})
		assert.Error(t, err)
	})

	t.Run("reports every failed field", func(t *testing.T) {
		err := ValidateNode(graph.Node{Lat: 200.0})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "id must not be empty")
		assert.Contains(t, err.Error(), "lat must be a valid latitude")
	})
}

// -----------------------------------------------------------------------------
// Edge Tests
// -----------------------------------------------------------------------------

func TestValidateEdge(t *testing.T) {
	t.Run("valid edge", func(t *testing.T) {
		edge := graph.Edge{Source: "a", Target: "b", Weight: 12.5}
		assert.NoError(t, ValidateEdge(edge))
	})

	t.Run("self loop", func(t *testing.T) {
		edge := graph.Edge{Source: "a", Target: "a", Weight: 1.0}
		assert.NoError(t, ValidateEdge(edge))
	})

	t.Run("empty source", func(t *testing.T) {
		err := ValidateEdge(graph.Edge{Target: "b", Weight: 1.0})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "source must not be empty")
	})

	t.Run("empty target", func(t *testing.T) {
		err := ValidateEdge(graph.Edge{Source: "a", Weight: 1.0})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "target must not be empty")
	})

	t.Run("zero weight", func(t *testing.T) {
		err := ValidateEdge(graph.Edge{Source: "a", Target: "b"})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "weight must be greater than 0")
	})

	t.Run("negative weight", func(t *testing.T) {
		err := ValidateEdge(graph.Edge{Source: "a", Target: "b", Weight: -3.0})
		assert.Error(t, err)
	})

	t.Run("NaN weight", func(t *testing.T) {
		err := ValidateEdge(graph.Edge{Source: "a", Target: "b", Weight: math.NaN()})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "weight must be finite")
	})

	t.Run("infinite weight", func(t *testing.T) {
		// +Inf would sail past a bare gt=0 check
		err := ValidateEdge(graph.Edge{Source: "a", Target: "b", Weight: math.Inf(1)})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "weight must be finite")
	})
}

// -----------------------------------------------------------------------------
// Network Tests
// -----------------------------------------------------------------------------

func TestValidateNetwork(t *testing.T) {
	t.Run("valid network", func(t *testing.T) {
		nodes := []graph.Node{
			{ID: "a", Name: "Alpha", Lat: 61.2, Lon: -149.9},
			{ID: "b", Name: "Bravo", Lat: 64.8, Lon: -147.7},
		}
		edges := []graph.Edge{
			{Source: "a", Target: "b", Weight: 577.0},
			{Source: "b", Target: "a", Weight: 577.0},
		}
		assert.NoError(t, ValidateNetwork(nodes, edges))
	})

	t.Run("empty network", func(t *testing.T) {
		assert.NoError(t, ValidateNetwork(nil, nil))
	})

	t.Run("reports node index", func(t *testing.T) {
		nodes := []graph.Node{
			{ID: "a"},
			{ID: ""},
		}
		err := ValidateNetwork(nodes, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "node 1")
	})

	t.Run("reports edge index and endpoints", func(t *testing.T) {
		nodes := []graph.Node{{ID: "a"}, {ID: "b"}}
		edges := []graph.Edge{
			{Source: "a", Target: "b", Weight: 1.0},
			{Source: "a", Target: "b", Weight: -1.0},
		}
		err := ValidateNetwork(nodes, edges)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "edge 1")
		assert.Contains(t, err.Error(), `"a" -> "b"`)
	})

	t.Run("aggregates all failures", func(t *testing.T) {
		nodes := []graph.Node{{ID: ""}}
		edges := []graph.Edge{{Source: "a", Target: "b", Weight: 0}}
		err := ValidateNetwork(nodes, edges)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "node 0")
		assert.Contains(t, err.Error(), "edge 0")
	})

	t.Run("unknown endpoints pass the gate", func(t *testing.T) {
		// Per-record checks pass; graph construction owns referential
		// integrity and rejects the dangling edge.
		nodes := []graph.Node{{ID: "a"}}
		edges := []graph.Edge{{Source: "a", Target: "ghost", Weight: 1.0}}
		require.NoError(t, ValidateNetwork(nodes, edges))

		_, err := graph.NewGraph(nodes, edges)
		assert.Error(t, err)
	})
}
