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
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

// =============================================================================
// Robustness Simulation
// =============================================================================

// Strategy selects the node-removal ordering for a robustness run.
type Strategy string

const (
	// StrategyRandom removes nodes in uniformly shuffled order. This is
	// the only non-deterministic strategy; seed the simulator for
	// reproducible runs.
	StrategyRandom Strategy = "random"

	// StrategyDegree removes nodes by descending total degree.
	StrategyDegree Strategy = "degree"

	// StrategyBetweenness removes nodes by descending betweenness.
	StrategyBetweenness Strategy = "betweenness"

	// StrategyPageRank removes nodes by descending PageRank.
	StrategyPageRank Strategy = "pageRank"

	// StrategyDomiRank removes nodes by descending DomiRank.
	StrategyDomiRank Strategy = "domiRank"
)

// DefaultRobustnessSteps partitions the removal sweep from 0% to 100%.
// A sweep of S steps emits S+1 points.
const DefaultRobustnessSteps = 20

// AllStrategies returns every supported removal strategy in a fixed order.
func AllStrategies() []Strategy {
	return []Strategy{
		StrategyRandom,
		StrategyDegree,
		StrategyBetweenness,
		StrategyPageRank,
		StrategyDomiRank,
	}
}

// Valid reports whether s names a supported removal strategy.
func (s Strategy) Valid() bool {
	switch s {
	case StrategyRandom, StrategyDegree, StrategyBetweenness, StrategyPageRank, StrategyDomiRank:
		return true
	}
	return false
}

// RobustnessPoint is one sample of the connectivity decay curve.
type RobustnessPoint struct {
	// Ratio is the fraction of nodes targeted for removal, in [0, 1].
	Ratio float64

	// GiantFraction is the giant-component fraction of the induced
	// subgraph on the surviving nodes, 0 once no node survives.
	GiantFraction float64
}

// RobustnessResult is the decay curve for one strategy.
type RobustnessResult struct {
	// RunID uniquely identifies this simulation run.
	RunID string

	// Strategy is the removal ordering that produced the curve.
	Strategy Strategy

	// Points holds steps+1 samples ordered by non-decreasing Ratio.
	Points []RobustnessPoint

	// Elapsed is the wall-clock duration of the run.
	Elapsed time.Duration
}

// Simulator measures connectivity decay under progressive node removal.
//
// Description:
//
//	A Simulator is bound to one immutable network snapshot. Each Run
//	ranks the nodes by the chosen strategy, then sweeps the removal
//	ratio from 0% to 100% in fixed steps, recording the giant-component
//	fraction of the surviving subgraph at every step. Targeted
//	strategies compute their centrality ranking once per run; the
//	random strategy draws a fresh shuffle from the simulator's random
//	source.
//
// Thread Safety: Safe for concurrent use. The random source is guarded
// by a mutex; everything else is read-only.
type Simulator struct {
	graph *Graph
	steps int

	mu  sync.Mutex
	rng *rand.Rand
}

// SimulatorOption configures a Simulator.
type SimulatorOption func(*Simulator)

// WithSteps sets the number of sweep steps. Values below 1 keep the
// default.
func WithSteps(steps int) SimulatorOption {
	return func(s *Simulator) {
		if steps > 0 {
			s.steps = steps
		}
	}
}

// WithSeed makes the random strategy reproducible by seeding the
// simulator's random source.
func WithSeed(seed int64) SimulatorOption {
	return func(s *Simulator) {
		s.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRandSource replaces the simulator's random source entirely. Nil
// sources keep the default.
func WithRandSource(src rand.Source) SimulatorOption {
	return func(s *Simulator) {
		if src != nil {
			s.rng = rand.New(src)
		}
	}
}

// NewSimulator creates a Simulator for the given network snapshot.
//
// Inputs:
//
//   - g: The network snapshot. Must not be nil.
//   - opts: Optional configuration. Defaults: 20 steps, time-seeded
//     random source.
//
// Outputs:
//
//   - *Simulator: The configured simulator.
//   - error: ErrNilGraph when g is nil.
//
// Example:
//
//	sim, err := graph.NewSimulator(g, graph.WithSeed(42))
//	if err != nil {
//	    return err
//	}
//	result, err := sim.Run(ctx, graph.StrategyDegree)
func NewSimulator(g *Graph, opts ...SimulatorOption) (*Simulator, error) {
	if g == nil {
		return nil, ErrNilGraph
	}

	s := &Simulator{
		graph: g,
		steps: DefaultRobustnessSteps,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Steps returns the configured number of sweep steps.
func (s *Simulator) Steps() int {
	return s.steps
}

// Run executes one removal sweep for the given strategy.
//
// Description:
//
//	Ranks all nodes by the strategy, then for each step i in [0, steps]
//	removes the floor(i*V/steps) highest-ranked nodes and records the
//	giant-component fraction of the induced subgraph on the survivors.
//	Targeted strategies break score ties by original node order, so
//	repeated runs produce identical curves. Removal is cumulative
//	across steps; the underlying snapshot is never modified.
//
// Inputs:
//
//   - ctx: Context checked between steps and threaded into the
//     centrality pass for targeted strategies.
//   - strategy: One of the Strategy constants.
//
// Outputs:
//
//   - *RobustnessResult: The decay curve with steps+1 points.
//   - error: ErrUnknownStrategy for an unrecognized strategy, or the
//     context error if cancelled mid-sweep.
//
// Thread Safety: Safe for concurrent use.
//
// Complexity: O(V*E) for the betweenness strategy's ranking pass, then
// O(steps * (V+E)) for the sweep itself.
func (s *Simulator) Run(ctx context.Context, strategy Strategy) (*RobustnessResult, error) {
	if !strategy.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
	}

	start := time.Now()
	ctx, span := startAnalysisSpan(ctx, "graph.Robustness", s.graph)
	defer span.End()
	span.SetAttributes(
		attribute.String("robustness.strategy", string(strategy)),
		attribute.Int("robustness.steps", s.steps),
	)

	order, err := s.removalOrder(ctx, strategy)
	if err != nil {
		recordRobustnessMetrics(ctx, strategy, time.Since(start), false)
		return nil, err
	}

	n := s.graph.NodeCount()
	removed := make([]bool, n)
	removedCount := 0
	points := make([]RobustnessPoint, 0, s.steps+1)

	for i := 0; i <= s.steps; i++ {
		if err := ctx.Err(); err != nil {
			recordRobustnessMetrics(ctx, strategy, time.Since(start), false)
			return nil, err
		}

		// Integer arithmetic keeps floor(ratio*V) exact at every step.
		target := i * n / s.steps
		for removedCount < target {
			removed[order[removedCount]] = true
			removedCount++
		}

		largest, alive := s.graph.largestComponentSize(removed)
		fraction := 0.0
		if alive > 0 {
			fraction = float64(largest) / float64(alive)
		}
		points = append(points, RobustnessPoint{
			Ratio:         float64(i) / float64(s.steps),
			GiantFraction: fraction,
		})
	}

	elapsed := time.Since(start)
	recordRobustnessMetrics(ctx, strategy, elapsed, true)
	slog.Debug("robustness sweep completed",
		slog.String("strategy", string(strategy)),
		slog.Int("node_count", n),
		slog.Int("points", len(points)),
		slog.Duration("elapsed", elapsed),
	)

	return &RobustnessResult{
		RunID:    uuid.NewString(),
		Strategy: strategy,
		Points:   points,
		Elapsed:  elapsed,
	}, nil
}

// RunAll executes one sweep per strategy concurrently and returns the
// results in the same order as the input. With no strategies given it
// runs every supported strategy.
//
// The sweeps only read the shared snapshot, so they are independent;
// the first failure cancels the remaining sweeps.
func (s *Simulator) RunAll(ctx context.Context, strategies ...Strategy) ([]*RobustnessResult, error) {
	if len(strategies) == 0 {
		strategies = AllStrategies()
	}

	results := make([]*RobustnessResult, len(strategies))
	eg, ctx := errgroup.WithContext(ctx)
	for i, strategy := range strategies {
		i, strategy := i, strategy // Capture loop variables
		eg.Go(func() error {
			result, err := s.Run(ctx, strategy)
			if err != nil {
				return fmt.Errorf("strategy %s: %w", strategy, err)
			}
			results[i] = result
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// removalOrder produces the node removal order for a strategy as dense
// indexes, highest-priority first.
func (s *Simulator) removalOrder(ctx context.Context, strategy Strategy) ([]int, error) {
	n := s.graph.NodeCount()
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}

	if strategy == StrategyRandom {
		s.mu.Lock()
		s.rng.Shuffle(n, func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})
		s.mu.Unlock()
		return order, nil
	}

	scores, err := s.strategyScores(ctx, strategy)
	if err != nil {
		return nil, err
	}

	// Descending score; ties break by original node order so targeted
	// runs stay reproducible.
	sort.Slice(order, func(a, b int) bool {
		ia, ib := order[a], order[b]
		if scores[ia] != scores[ib] {
			return scores[ia] > scores[ib]
		}
		return ia < ib
	})
	return order, nil
}

// strategyScores computes the per-node ranking score for a targeted
// strategy, indexed by dense node index.
func (s *Simulator) strategyScores(ctx context.Context, strategy Strategy) ([]float64, error) {
	switch strategy {
	case StrategyDegree:
		return s.graph.totalDegrees(), nil

	case StrategyBetweenness:
		byID, err := Betweenness(ctx, s.graph)
		if err != nil {
			return nil, err
		}
		return s.denseScores(byID), nil

	case StrategyPageRank:
		result, err := PageRank(ctx, s.graph, nil)
		if err != nil {
			return nil, err
		}
		return s.denseScores(result.Scores), nil

	case StrategyDomiRank:
		result, err := DomiRank(ctx, s.graph, nil)
		if err != nil {
			return nil, err
		}
		return s.denseScores(result.Scores), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
}

// denseScores converts a per-id score map into index order.
func (s *Simulator) denseScores(byID map[string]float64) []float64 {
	scores := make([]float64, len(s.graph.ids))
	for i, id := range s.graph.ids {
		scores[i] = byID[id]
	}
	return scores
}
