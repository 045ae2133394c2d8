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
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.ServiceName != "corridor" {
		t.Errorf("ServiceName = %q, want %q", cfg.ServiceName, "corridor")
	}
	if cfg.TraceExporter != "otlp" {
		t.Errorf("TraceExporter = %q, want %q", cfg.TraceExporter, "otlp")
	}
	if cfg.MetricExporter != "prometheus" {
		t.Errorf("MetricExporter = %q, want %q", cfg.MetricExporter, "prometheus")
	}
	if cfg.OTLPEndpoint != "localhost:4317" {
		t.Errorf("OTLPEndpoint = %q, want %q", cfg.OTLPEndpoint, "localhost:4317")
	}
	if cfg.SampleRate != 1.0 {
		t.Errorf("SampleRate = %v, want 1.0", cfg.SampleRate)
	}
}

func TestInit_NilContext(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TraceExporter = "none"

	_, err := Init(nil, cfg)
	if err != ErrNilContext {
		t.Errorf("Init(nil, cfg) error = %v, want %v", err, ErrNilContext)
	}
}

func TestInit_NoopExporter(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TraceExporter = "none"
	cfg.MetricExporter = "none"

	shutdown, err := Init(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	if shutdown == nil {
		t.Fatal("shutdown function is nil")
	}

	// Verify shutdown works
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("shutdown() error = %v", err)
	}
}

func TestInit_StdoutExporter(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TraceExporter = "stdout"
	cfg.MetricExporter = "none"

	shutdown, err := Init(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer shutdown(context.Background())

	// Verify tracer is configured
	tracer := otel.Tracer("test")
	if tracer == nil {
		t.Error("tracer is nil")
	}
}

func TestInit_UnknownExporter(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TraceExporter = "unknown_exporter"

	_, err := Init(context.Background(), cfg)
	if err == nil {
		t.Error("Init() with unknown exporter should fail")
	}
	if !strings.Contains(err.Error(), "unknown exporter type") {
		t.Errorf("error = %v, want to contain 'unknown exporter type'", err)
	}
}

func TestInit_UnknownMetricExporter(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TraceExporter = "none"
	cfg.MetricExporter = "unknown_metric_exporter"

	_, err := Init(context.Background(), cfg)
	if err == nil {
		t.Error("Init() with unknown metric exporter should fail")
	}
	if !strings.Contains(err.Error(), "unknown exporter type") {
		t.Errorf("error = %v, want to contain 'unknown exporter type'", err)
	}
}

func TestInit_StdoutMetricExporter(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TraceExporter = "none"
	cfg.MetricExporter = "stdout"

	shutdown, err := Init(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer shutdown(context.Background())

	// Verify meter is configured
	meter := otel.Meter("test")
	if meter == nil {
		t.Error("meter is nil")
	}
}

// TestInit_PrometheusExporter covers the only prometheus Init in the test
// binary. The OTel prometheus exporter registers with the process-global
// default registry, so a second Init would duplicate target_info and break
// the scrape below.
func TestInit_PrometheusExporter(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TraceExporter = "none"
	cfg.MetricExporter = "prometheus"

	shutdown, err := Init(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer shutdown(context.Background())

	// Verify meter is configured
	meter := otel.Meter("corridor_prometheus_test")
	if meter == nil {
		t.Error("meter is nil")
	}

	// Create and increment a counter to ensure metrics work
	counter, err := meter.Int64Counter("corridor_telemetry_test_requests_total")
	if err != nil {
		t.Fatalf("creating counter: %v", err)
	}
	counter.Add(context.Background(), 42)

	handler := MetricsHandler()
	if handler == nil {
		t.Fatal("MetricsHandler() returned nil")
	}

	t.Run("scrape returns prometheus format", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		resp := rec.Result()
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			t.Fatalf("reading body: %v", err)
		}

		// Verify it's Prometheus format (should contain # HELP or # TYPE)
		output := string(body)
		if !strings.Contains(output, "# HELP") && !strings.Contains(output, "# TYPE") {
			t.Errorf("output should be Prometheus format: %s", output[:min(200, len(output))])
		}
	})
}

func TestMetricsHandler_NilBeforeInit(t *testing.T) {
	// Reset the handler to simulate fresh state
	prometheusHandlerMu.Lock()
	oldHandler := prometheusHandler
	prometheusHandler = nil
	prometheusHandlerMu.Unlock()

	defer func() {
		prometheusHandlerMu.Lock()
		prometheusHandler = oldHandler
		prometheusHandlerMu.Unlock()
	}()

	handler := MetricsHandler()
	if handler != nil {
		t.Error("MetricsHandler() should return nil before Prometheus init")
	}
}

func TestInit_PropagatorIsSet(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TraceExporter = "none"
	cfg.MetricExporter = "none"

	shutdown, err := Init(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer shutdown(context.Background())

	// Verify propagator is set by checking that it can extract/inject
	propagator := otel.GetTextMapPropagator()
	if propagator == nil {
		t.Error("expected propagator to be set")
	}

	// Propagator should support TraceContext and Baggage
	fields := propagator.Fields()
	hasTraceParent := false
	for _, f := range fields {
		if f == "traceparent" {
			hasTraceParent = true
			break
		}
	}
	if !hasTraceParent {
		t.Error("expected propagator to include traceparent field")
	}
}

func TestGetSampler(t *testing.T) {
	tests := []struct {
		name     string
		rate     float64
		expected string
	}{
		{"full sampling", 1.0, "AlwaysOnSampler"},
		{"above 100%", 1.5, "AlwaysOnSampler"},
		{"no sampling", 0.0, "AlwaysOffSampler"},
		{"below 0%", -0.5, "AlwaysOffSampler"},
		{"partial sampling", 0.5, "TraceIDRatioBased"},
		{"10% sampling", 0.1, "TraceIDRatioBased"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sampler := getSampler(tt.rate)
			description := sampler.Description()

			// Verify the sampler type based on description
			switch tt.expected {
			case "AlwaysOnSampler":
				if description != "AlwaysOnSampler" {
					t.Errorf("getSampler(%v) = %q, want %q", tt.rate, description, tt.expected)
				}
			case "AlwaysOffSampler":
				if description != "AlwaysOffSampler" {
					t.Errorf("getSampler(%v) = %q, want %q", tt.rate, description, tt.expected)
				}
			case "TraceIDRatioBased":
				if !strings.Contains(description, "TraceIDRatioBased") {
					t.Errorf("getSampler(%v) = %q, want to contain %q", tt.rate, description, tt.expected)
				}
			}
		})
	}
}

func TestInit_WithSampleRate(t *testing.T) {
	t.Run("full sampling (1.0)", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.TraceExporter = "stdout"
		cfg.MetricExporter = "none"
		cfg.SampleRate = 1.0

		shutdown, err := Init(context.Background(), cfg)
		if err != nil {
			t.Fatalf("Init() error = %v", err)
		}
		defer shutdown(context.Background())

		// Create a span and verify it's sampled
		tracer := otel.Tracer("test")
		_, span := tracer.Start(context.Background(), "test-span")
		defer span.End()

		if !span.SpanContext().IsSampled() {
			t.Error("expected span to be sampled with rate 1.0")
		}
	})

	t.Run("no sampling (0.0)", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.TraceExporter = "stdout"
		cfg.MetricExporter = "none"
		cfg.SampleRate = 0.0

		shutdown, err := Init(context.Background(), cfg)
		if err != nil {
			t.Fatalf("Init() error = %v", err)
		}
		defer shutdown(context.Background())

		// Create spans and verify none are sampled
		tracer := otel.Tracer("test")
		sampledCount := 0
		for i := 0; i < 10; i++ {
			_, span := tracer.Start(context.Background(), "test-span")
			if span.SpanContext().IsSampled() {
				sampledCount++
			}
			span.End()
		}

		if sampledCount > 0 {
			t.Errorf("expected no spans sampled with rate 0.0, got %d", sampledCount)
		}
	})

	t.Run("partial sampling (0.5)", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.TraceExporter = "stdout"
		cfg.MetricExporter = "none"
		cfg.SampleRate = 0.5

		shutdown, err := Init(context.Background(), cfg)
		if err != nil {
			t.Fatalf("Init() error = %v", err)
		}
		defer shutdown(context.Background())

		// Create many spans and verify sampling is probabilistic
		tracer := otel.Tracer("test")
		sampledCount := 0
		totalSpans := 100
		for i := 0; i < totalSpans; i++ {
			_, span := tracer.Start(context.Background(), "test-span")
			if span.SpanContext().IsSampled() {
				sampledCount++
			}
			span.End()
		}

		// With 50% sampling, we expect roughly half to be sampled
		// Allow for statistical variance (20-80%)
		sampledRatio := float64(sampledCount) / float64(totalSpans)
		if sampledRatio < 0.2 || sampledRatio > 0.8 {
			t.Errorf("expected ~50%% sampling with rate 0.5, got %.1f%%", sampledRatio*100)
		}
	})
}

func TestLoggerWithTrace_NoSpan(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	// No span in context
	result := LoggerWithTrace(context.Background(), logger)

	// Should return original logger (no trace fields added)
	result.Info("test message")
	output := buf.String()

	if strings.Contains(output, "trace_id") {
		t.Errorf("output should not contain trace_id when no span: %s", output)
	}
}

func TestLoggerWithTrace_NilContext(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	result := LoggerWithTrace(nil, logger)

	// Should return original logger
	result.Info("test message")
	output := buf.String()

	if !strings.Contains(output, "test message") {
		t.Errorf("output should contain message: %s", output)
	}
}

func TestLoggerWithTrace_NilLogger(t *testing.T) {
	result := LoggerWithTrace(context.Background(), nil)

	// Should return slog.Default() instead of panicking
	if result == nil {
		t.Error("result should not be nil")
	}
}

func TestLoggerWithTrace_WithSpan(t *testing.T) {
	// Create a mock span context for testing
	traceID := trace.TraceID{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f, 0x10}
	spanID := trace.SpanID{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}
	spanCtx := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	})

	ctx := trace.ContextWithSpanContext(context.Background(), spanCtx)

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	result := LoggerWithTrace(ctx, logger)
	result.Info("test message")

	output := buf.String()

	if !strings.Contains(output, "trace_id") {
		t.Errorf("output should contain trace_id: %s", output)
	}
	if !strings.Contains(output, "span_id") {
		t.Errorf("output should contain span_id: %s", output)
	}
	if !strings.Contains(output, traceID.String()) {
		t.Errorf("output should contain actual trace ID: %s", output)
	}
}

func TestLoggerWithRun(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	result := LoggerWithRun(context.Background(), logger, "run-42")
	result.Info("test message")

	output := buf.String()

	if !strings.Contains(output, `"run_id":"run-42"`) {
		t.Errorf("output should contain run_id field: %s", output)
	}
}

func TestLoggerWithStrategy(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	result := LoggerWithStrategy(context.Background(), logger, "betweenness")
	result.Info("test message")

	output := buf.String()

	if !strings.Contains(output, `"strategy":"betweenness"`) {
		t.Errorf("output should contain strategy field: %s", output)
	}
}

func TestGetEnvOr(t *testing.T) {
	t.Run("returns fallback when env not set", func(t *testing.T) {
		result := getEnvOr("TELEMETRY_TEST_NONEXISTENT_VAR_12345", "fallback")
		if result != "fallback" {
			t.Errorf("getEnvOr() = %q, want %q", result, "fallback")
		}
	})

	t.Run("returns env value when set", func(t *testing.T) {
		t.Setenv("TELEMETRY_TEST_VAR", "custom_value")
		result := getEnvOr("TELEMETRY_TEST_VAR", "fallback")
		if result != "custom_value" {
			t.Errorf("getEnvOr() = %q, want %q", result, "custom_value")
		}
	})
}
