// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/metric"
)

// Metrics contains pre-defined metrics for the Corridor analytics engine.
//
// Description:
//
//	Provides standard counters, histograms, and gauges for network index
//	construction, centrality runs, and robustness simulations. All metrics
//	use the "corridor_" prefix for consistent naming.
//
// Thread Safety: Safe for concurrent use after creation.
type Metrics struct {
	// --- Index Metrics ---

	// GraphBuildsTotal counts total network index constructions by status.
	GraphBuildsTotal metric.Int64Counter

	// GraphBuildDuration records index construction duration in seconds.
	GraphBuildDuration metric.Float64Histogram

	// IndexedNodes tracks the node count of the active network snapshot.
	IndexedNodes metric.Int64ObservableGauge

	// --- Centrality Metrics ---

	// CentralityRunsTotal counts total centrality computations by status.
	CentralityRunsTotal metric.Int64Counter

	// CentralityDuration records centrality computation duration in seconds.
	CentralityDuration metric.Float64Histogram

	// --- Robustness Metrics ---

	// RobustnessRunsTotal counts total robustness sweeps by strategy and status.
	RobustnessRunsTotal metric.Int64Counter

	// RobustnessDuration records robustness sweep duration in seconds.
	RobustnessDuration metric.Float64Histogram

	// --- Error Metrics ---

	// ErrorsTotal counts total errors by type and component.
	ErrorsTotal metric.Int64Counter
}

// NewMetrics creates a new Metrics instance with all metrics registered.
//
// Description:
//
//	Registers all pre-defined metrics with the provided meter.
//	Returns an error if any metric registration fails.
//
// Inputs:
//
//	meter - The OTel meter to use for metric registration.
//
// Outputs:
//
//	*Metrics - The metrics instance with all counters and histograms initialized.
//	error - Non-nil if metric registration fails.
//
// Example:
//
//	meter := otel.Meter("corridor")
//	metrics, err := telemetry.NewMetrics(meter)
//	if err != nil {
//	    return fmt.Errorf("create metrics: %w", err)
//	}
//	metrics.GraphBuildsTotal.Add(ctx, 1, ...)
//
// Thread Safety: Safe for concurrent use after creation.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}
	var err error

	// --- Index Metrics ---
	m.GraphBuildsTotal, err = meter.Int64Counter(
		"corridor_graph_builds_total",
		metric.WithDescription("Total network index constructions"),
		metric.WithUnit("{build}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create graph_builds_total: %w", err)
	}

	m.GraphBuildDuration, err = meter.Float64Histogram(
		"corridor_graph_build_duration_seconds",
		metric.WithDescription("Network index construction duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5),
	)
	if err != nil {
		return nil, fmt.Errorf("create graph_build_duration: %w", err)
	}

	// Note: IndexedNodes requires a callback registration, handled separately

	// --- Centrality Metrics ---
	m.CentralityRunsTotal, err = meter.Int64Counter(
		"corridor_centrality_runs_total",
		metric.WithDescription("Total centrality computations"),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create centrality_runs_total: %w", err)
	}

	m.CentralityDuration, err = meter.Float64Histogram(
		"corridor_centrality_duration_seconds",
		metric.WithDescription("Centrality computation duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60, 120),
	)
	if err != nil {
		return nil, fmt.Errorf("create centrality_duration: %w", err)
	}

	// --- Robustness Metrics ---
	m.RobustnessRunsTotal, err = meter.Int64Counter(
		"corridor_robustness_runs_total",
		metric.WithDescription("Total robustness sweeps"),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create robustness_runs_total: %w", err)
	}

	m.RobustnessDuration, err = meter.Float64Histogram(
		"corridor_robustness_duration_seconds",
		metric.WithDescription("Robustness sweep duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120),
	)
	if err != nil {
		return nil, fmt.Errorf("create robustness_duration: %w", err)
	}

	// --- Error Metrics ---
	m.ErrorsTotal, err = meter.Int64Counter(
		"corridor_errors_total",
		metric.WithDescription("Total errors by type and component"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create errors_total: %w", err)
	}

	return m, nil
}

// RegisterIndexedNodes registers a callback for the indexed-nodes gauge.
//
// Description:
//
//	Sets up an observable gauge that reports the node count of the
//	currently active network snapshot. The callback is invoked each
//	time metrics are scraped.
//
// Inputs:
//
//	meter - The OTel meter to use for registration.
//	countFunc - A function that returns the current node count.
//
// Outputs:
//
//	metric.Registration - Registration handle for cleanup.
//	error - Non-nil if registration fails.
func (m *Metrics) RegisterIndexedNodes(meter metric.Meter, countFunc func() int64) (metric.Registration, error) {
	var err error
	m.IndexedNodes, err = meter.Int64ObservableGauge(
		"corridor_graph_indexed_nodes",
		metric.WithDescription("Node count of the active network snapshot"),
		metric.WithUnit("{node}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create graph_indexed_nodes: %w", err)
	}

	return meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		o.ObserveInt64(m.IndexedNodes, countFunc())
		return nil
	}, m.IndexedNodes)
}
