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
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Package-level tracer and meter for network graph operations.
var (
	tracer = otel.Tracer("corridor.graph")
	meter  = otel.Meter("corridor.graph")
)

// Metrics for index construction and analytics.
var (
	buildLatency      metric.Float64Histogram
	buildTotal        metric.Int64Counter
	nodesIndexed      metric.Int64Histogram
	edgesIndexed      metric.Int64Histogram
	centralityLatency metric.Float64Histogram
	centralityTotal   metric.Int64Counter
	topologyLatency   metric.Float64Histogram
	robustnessLatency metric.Float64Histogram
	robustnessTotal   metric.Int64Counter

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics initializes the metrics. Safe to call multiple times.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		buildLatency, err = meter.Float64Histogram(
			"network_build_duration_seconds",
			metric.WithDescription("Duration of network index construction"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		buildTotal, err = meter.Int64Counter(
			"network_build_total",
			metric.WithDescription("Total number of network index constructions"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		nodesIndexed, err = meter.Int64Histogram(
			"network_nodes_indexed",
			metric.WithDescription("Number of nodes indexed per construction"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		edgesIndexed, err = meter.Int64Histogram(
			"network_edges_indexed",
			metric.WithDescription("Number of distinct edges indexed per construction"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		centralityLatency, err = meter.Float64Histogram(
			"centrality_duration_seconds",
			metric.WithDescription("Duration of centrality computations"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		centralityTotal, err = meter.Int64Counter(
			"centrality_runs_total",
			metric.WithDescription("Total number of centrality computations"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		topologyLatency, err = meter.Float64Histogram(
			"topology_duration_seconds",
			metric.WithDescription("Duration of aggregate topology computations"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		robustnessLatency, err = meter.Float64Histogram(
			"robustness_run_duration_seconds",
			metric.WithDescription("Duration of robustness simulation runs"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		robustnessTotal, err = meter.Int64Counter(
			"robustness_runs_total",
			metric.WithDescription("Total number of robustness simulation runs"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})
	return metricsErr
}

// recordBuildMetrics records metrics for a successful index construction.
func recordBuildMetrics(nodeCount, edgeCount int, elapsed time.Duration) {
	if err := initMetrics(); err != nil {
		return
	}

	ctx := context.Background()
	buildLatency.Record(ctx, elapsed.Seconds())
	buildTotal.Add(ctx, 1)
	nodesIndexed.Record(ctx, int64(nodeCount))
	edgesIndexed.Record(ctx, int64(edgeCount))
}

// recordCentralityMetrics records metrics for one centrality computation.
func recordCentralityMetrics(ctx context.Context, elapsed time.Duration, success bool) {
	if err := initMetrics(); err != nil {
		return
	}

	attrs := metric.WithAttributes(attribute.Bool("success", success))
	centralityLatency.Record(ctx, elapsed.Seconds(), attrs)
	centralityTotal.Add(ctx, 1, attrs)
}

// recordTopologyMetrics records metrics for one topology computation.
func recordTopologyMetrics(ctx context.Context, elapsed time.Duration) {
	if err := initMetrics(); err != nil {
		return
	}

	topologyLatency.Record(ctx, elapsed.Seconds())
}

// recordRobustnessMetrics records metrics for one simulation run.
func recordRobustnessMetrics(ctx context.Context, strategy Strategy, elapsed time.Duration, success bool) {
	if err := initMetrics(); err != nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String("strategy", string(strategy)),
		attribute.Bool("success", success),
	)
	robustnessLatency.Record(ctx, elapsed.Seconds(), attrs)
	robustnessTotal.Add(ctx, 1, attrs)
}

// startAnalysisSpan creates a span for an analytics operation, annotated
// with the snapshot dimensions.
func startAnalysisSpan(ctx context.Context, op string, g *Graph) (context.Context, trace.Span) {
	nodeCount, edgeCount := 0, 0
	if g != nil {
		nodeCount = g.NodeCount()
		edgeCount = g.EdgeCount()
	}
	return tracer.Start(ctx, op,
		trace.WithAttributes(
			attribute.Int("network.node_count", nodeCount),
			attribute.Int("network.edge_count", edgeCount),
		),
	)
}
