// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package config loads and validates engine configuration for Corridor.
//
// Configuration is layered with priority: environment > file > defaults.
// Files may be YAML or JSON. Mapping helpers convert config sections into
// the option structs the graph package consumes, so callers never hand-wire
// individual fields.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/AleutianAI/CorridorFOSS/services/corridor/graph"
)

// Config contains all engine configuration.
// This is the top-level config struct that can be loaded from files/env.
//
// Thread Safety: Safe to read concurrently. Not safe to modify after creation.
type Config struct {
	// Index contains network index construction limits.
	Index IndexConfig `json:"index" yaml:"index"`

	// Analysis contains centrality algorithm settings.
	Analysis AnalysisConfig `json:"analysis" yaml:"analysis"`

	// Robustness contains robustness simulation settings.
	Robustness RobustnessConfig `json:"robustness" yaml:"robustness"`

	// Observability contains observability settings.
	Observability ObservabilityConfig `json:"observability" yaml:"observability"`
}

// IndexConfig contains network index construction limits.
type IndexConfig struct {
	MaxNodes int `json:"max_nodes" yaml:"max_nodes"`
	MaxEdges int `json:"max_edges" yaml:"max_edges"`
}

// AnalysisConfig contains centrality algorithm settings.
type AnalysisConfig struct {
	PageRankDamping    float64 `json:"pagerank_damping" yaml:"pagerank_damping"`
	PageRankIterations int     `json:"pagerank_iterations" yaml:"pagerank_iterations"`
	DomiRankAlpha      float64 `json:"domirank_alpha" yaml:"domirank_alpha"`
	DomiRankBeta       float64 `json:"domirank_beta" yaml:"domirank_beta"`
	DomiRankTheta      float64 `json:"domirank_theta" yaml:"domirank_theta"`
	DomiRankIterations int     `json:"domirank_iterations" yaml:"domirank_iterations"`
	CriticalityAlpha   float64 `json:"criticality_alpha" yaml:"criticality_alpha"`
}

// RobustnessConfig contains robustness simulation settings.
type RobustnessConfig struct {
	// Steps is the number of removal fractions per sweep.
	Steps int `json:"steps" yaml:"steps"`

	// Seed seeds the random removal strategy. Zero selects a
	// time-based seed.
	Seed int64 `json:"seed" yaml:"seed"`

	// Strategies lists the removal strategies to simulate. Empty
	// selects all of them.
	Strategies []string `json:"strategies" yaml:"strategies"`
}

// ObservabilityConfig contains observability settings.
type ObservabilityConfig struct {
	TracingEnabled bool    `json:"tracing_enabled" yaml:"tracing_enabled"`
	MetricsEnabled bool    `json:"metrics_enabled" yaml:"metrics_enabled"`
	LogLevel       string  `json:"log_level" yaml:"log_level"`
	SampleRate     float64 `json:"sample_rate" yaml:"sample_rate"`
	ServiceName    string  `json:"service_name" yaml:"service_name"`
}

// DefaultConfig returns the default configuration.
//
// Outputs:
//   - Config: Default configuration with sensible values.
func DefaultConfig() Config {
	return Config{
		Index: IndexConfig{
			MaxNodes: graph.DefaultMaxNodes,
			MaxEdges: graph.DefaultMaxEdges,
		},
		Analysis: AnalysisConfig{
			PageRankDamping:    graph.DefaultDampingFactor,
			PageRankIterations: graph.DefaultPageRankIterations,
			DomiRankAlpha:      graph.DefaultDomiRankAlpha,
			DomiRankBeta:       graph.DefaultDomiRankBeta,
			DomiRankTheta:      graph.DefaultDomiRankTheta,
			DomiRankIterations: graph.DefaultDomiRankIterations,
			CriticalityAlpha:   graph.DefaultCriticalityAlpha,
		},
		Robustness: RobustnessConfig{
			Steps: graph.DefaultRobustnessSteps,
			Seed:  0,
		},
		Observability: ObservabilityConfig{
			TracingEnabled: true,
			MetricsEnabled: true,
			LogLevel:       "info",
			SampleRate:     1.0,
			ServiceName:    "corridor",
		},
	}
}

// Load loads configuration with priority: env > file > defaults.
//
// Inputs:
//   - configPath: Path to YAML/JSON config file (optional, can be empty).
//
// Outputs:
//   - Config: Merged configuration.
//   - error: Non-nil if file exists but is invalid.
func Load(configPath string) (Config, error) {
	// Start with defaults
	config := DefaultConfig()

	// Load from file if specified
	if configPath != "" {
		if err := loadConfigFile(configPath, &config); err != nil {
			return config, fmt.Errorf("load config file: %w", err)
		}
	}

	// Override from environment variables
	loadConfigFromEnv(&config)

	// Validate
	if err := config.Validate(); err != nil {
		return config, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

func loadConfigFile(path string, config *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return err
	}

	// Try YAML first, then JSON
	if err := yaml.Unmarshal(data, config); err != nil {
		if jsonErr := json.Unmarshal(data, config); jsonErr != nil {
			return fmt.Errorf("parse config (tried YAML and JSON): YAML error: %v, JSON error: %w", err, jsonErr)
		}
	}

	return nil
}

func loadConfigFromEnv(config *Config) {
	// Index
	if v := os.Getenv("CORRIDOR_MAX_NODES"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			config.Index.MaxNodes = i
		}
	}
	if v := os.Getenv("CORRIDOR_MAX_EDGES"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			config.Index.MaxEdges = i
		}
	}

	// Analysis
	if v := os.Getenv("CORRIDOR_PAGERANK_DAMPING"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			config.Analysis.PageRankDamping = f
		}
	}
	if v := os.Getenv("CORRIDOR_PAGERANK_ITERATIONS"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			config.Analysis.PageRankIterations = i
		}
	}
	if v := os.Getenv("CORRIDOR_DOMIRANK_ALPHA"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			config.Analysis.DomiRankAlpha = f
		}
	}
	if v := os.Getenv("CORRIDOR_DOMIRANK_BETA"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			config.Analysis.DomiRankBeta = f
		}
	}
	if v := os.Getenv("CORRIDOR_DOMIRANK_THETA"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			config.Analysis.DomiRankTheta = f
		}
	}
	if v := os.Getenv("CORRIDOR_DOMIRANK_ITERATIONS"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			config.Analysis.DomiRankIterations = i
		}
	}
	if v := os.Getenv("CORRIDOR_CRITICALITY_ALPHA"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			config.Analysis.CriticalityAlpha = f
		}
	}

	// Robustness
	if v := os.Getenv("CORRIDOR_ROBUSTNESS_STEPS"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			config.Robustness.Steps = i
		}
	}
	if v := os.Getenv("CORRIDOR_ROBUSTNESS_SEED"); v != "" {
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			config.Robustness.Seed = i
		}
	}

	// Observability
	if v := os.Getenv("CORRIDOR_TRACING_ENABLED"); v != "" {
		config.Observability.TracingEnabled = v == "true" || v == "1"
	}
	if v := os.Getenv("CORRIDOR_METRICS_ENABLED"); v != "" {
		config.Observability.MetricsEnabled = v == "true" || v == "1"
	}
	if v := os.Getenv("CORRIDOR_LOG_LEVEL"); v != "" {
		config.Observability.LogLevel = v
	}
	if v := os.Getenv("CORRIDOR_TRACE_SAMPLE_RATE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			config.Observability.SampleRate = f
		}
	}
}

// Validate checks that the configuration is valid.
//
// Outputs:
//   - error: Non-nil if configuration is invalid.
func (c Config) Validate() error {
	if c.Index.MaxNodes < 1 {
		return fmt.Errorf("max_nodes must be >= 1")
	}
	if c.Index.MaxEdges < 1 {
		return fmt.Errorf("max_edges must be >= 1")
	}
	if c.Analysis.PageRankDamping < 0 || c.Analysis.PageRankDamping > 1 {
		return fmt.Errorf("pagerank_damping must be between 0 and 1")
	}
	if c.Analysis.PageRankIterations < 1 {
		return fmt.Errorf("pagerank_iterations must be >= 1")
	}
	if c.Analysis.DomiRankAlpha <= 0 {
		return fmt.Errorf("domirank_alpha must be > 0")
	}
	if c.Analysis.DomiRankBeta <= 0 {
		return fmt.Errorf("domirank_beta must be > 0")
	}
	if c.Analysis.DomiRankTheta <= 0 {
		return fmt.Errorf("domirank_theta must be > 0")
	}
	if c.Analysis.DomiRankIterations < 1 {
		return fmt.Errorf("domirank_iterations must be >= 1")
	}
	if c.Analysis.CriticalityAlpha <= 0 || c.Analysis.CriticalityAlpha > 1 {
		return fmt.Errorf("criticality_alpha must be in (0, 1]")
	}
	if c.Robustness.Steps < 1 {
		return fmt.Errorf("robustness steps must be >= 1")
	}
	for _, s := range c.Robustness.Strategies {
		if !graph.Strategy(s).Valid() {
			return fmt.Errorf("unknown robustness strategy: %q", s)
		}
	}
	if c.Observability.SampleRate < 0 || c.Observability.SampleRate > 1 {
		return fmt.Errorf("sample_rate must be between 0 and 1")
	}
	return nil
}

// GraphOptions converts index limits to graph construction options.
//
// Outputs:
//   - []graph.GraphOption: Options for graph.NewGraph.
func (c IndexConfig) GraphOptions() []graph.GraphOption {
	return []graph.GraphOption{
		graph.WithMaxNodes(c.MaxNodes),
		graph.WithMaxEdges(c.MaxEdges),
	}
}

// PageRankOptions converts analysis settings to PageRank options.
//
// Outputs:
//   - *graph.PageRankOptions: Options for graph.PageRank.
func (c AnalysisConfig) PageRankOptions() *graph.PageRankOptions {
	return &graph.PageRankOptions{
		DampingFactor: c.PageRankDamping,
		Iterations:    c.PageRankIterations,
	}
}

// DomiRankOptions converts analysis settings to DomiRank options.
//
// Outputs:
//   - *graph.DomiRankOptions: Options for graph.DomiRank.
func (c AnalysisConfig) DomiRankOptions() *graph.DomiRankOptions {
	return &graph.DomiRankOptions{
		Alpha:      c.DomiRankAlpha,
		Beta:       c.DomiRankBeta,
		Theta:      c.DomiRankTheta,
		Iterations: c.DomiRankIterations,
	}
}

// CentralityOptions converts analysis settings to centrality options.
//
// Outputs:
//   - *graph.CentralityOptions: Options for graph.ComputeCentrality.
func (c AnalysisConfig) CentralityOptions() *graph.CentralityOptions {
	return &graph.CentralityOptions{
		PageRank: c.PageRankOptions(),
		DomiRank: c.DomiRankOptions(),
	}
}

// CriticalityOptions converts analysis settings to criticality options.
//
// Outputs:
//   - *graph.CriticalityOptions: Options for graph.Criticality.
func (c AnalysisConfig) CriticalityOptions() *graph.CriticalityOptions {
	return &graph.CriticalityOptions{
		Alpha:    c.CriticalityAlpha,
		PageRank: c.PageRankOptions(),
	}
}

// SimulatorOptions converts robustness settings to simulator options.
//
// Outputs:
//   - []graph.SimulatorOption: Options for graph.NewSimulator.
func (c RobustnessConfig) SimulatorOptions() []graph.SimulatorOption {
	opts := []graph.SimulatorOption{
		graph.WithSteps(c.Steps),
	}
	if c.Seed != 0 {
		opts = append(opts, graph.WithSeed(c.Seed))
	}
	return opts
}

// StrategyList converts configured strategy names to typed strategies.
//
// Outputs:
//   - []graph.Strategy: Strategies to simulate. Empty means all.
func (c RobustnessConfig) StrategyList() []graph.Strategy {
	if len(c.Strategies) == 0 {
		return nil
	}
	strategies := make([]graph.Strategy, 0, len(c.Strategies))
	for _, s := range c.Strategies {
		strategies = append(strategies, graph.Strategy(s))
	}
	return strategies
}
