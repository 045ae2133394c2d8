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
	"strings"
	"sync/atomic"
	"testing"
)

// =============================================================================
// Parallel Sweep Tests
// =============================================================================

func TestChunkRanges(t *testing.T) {
	tests := []struct {
		name           string
		n              int
		expectedChunks int
	}{
		{name: "zero", n: 0, expectedChunks: 0},
		{name: "one", n: 1, expectedChunks: 1},
		{name: "below worker count", n: 5, expectedChunks: 5},
		{name: "equal to worker count", n: 8, expectedChunks: 8},
		{name: "just above worker count", n: 9, expectedChunks: 5},
		{name: "large", n: 100, expectedChunks: 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := chunkRanges(tt.n)
			if len(chunks) != tt.expectedChunks {
				t.Errorf("got %d chunks, want %d", len(chunks), tt.expectedChunks)
			}

			// Chunks must tile [0, n) exactly, in order.
			next := 0
			for _, r := range chunks {
				if r[0] != next {
					t.Errorf("chunk starts at %d, want %d", r[0], next)
				}
				if r[1] <= r[0] {
					t.Errorf("empty chunk [%d, %d)", r[0], r[1])
				}
				next = r[1]
			}
			if next != tt.n {
				t.Errorf("chunks cover [0, %d), want [0, %d)", next, tt.n)
			}
		})
	}
}

func TestRunSweep_CoversAllSources(t *testing.T) {
	tests := []struct {
		name string
		n    int
	}{
		{name: "sequential path", n: 10},
		{name: "parallel path", n: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			visits := make([]int32, tt.n)
			err := runSweep(context.Background(), tt.n, func(ctx context.Context, chunk, lo, hi int) error {
				for s := lo; s < hi; s++ {
					atomic.AddInt32(&visits[s], 1)
				}
				return nil
			})
			if err != nil {
				t.Fatalf("runSweep: %v", err)
			}
			for s, v := range visits {
				if v != 1 {
					t.Errorf("source %d visited %d times, want 1", s, v)
				}
			}
		})
	}
}

func TestRunSweep_ZeroSources(t *testing.T) {
	called := false
	err := runSweep(context.Background(), 0, func(ctx context.Context, chunk, lo, hi int) error {
		called = true
		return nil
	})
	if err != nil {
		t.Fatalf("runSweep: %v", err)
	}
	if called {
		t.Error("worker called for empty range")
	}
}

func TestRunSweep_ErrorPropagates(t *testing.T) {
	sentinel := errors.New("worker failed")
	err := runSweep(context.Background(), 100, func(ctx context.Context, chunk, lo, hi int) error {
		if chunk == 2 {
			return sentinel
		}
		return nil
	})
	if !errors.Is(err, sentinel) {
		t.Errorf("expected worker error, got %v", err)
	}
}

func TestRunSweep_PanicRecovered(t *testing.T) {
	err := runSweep(context.Background(), 100, func(ctx context.Context, chunk, lo, hi int) error {
		if chunk == 1 {
			panic("boom")
		}
		return nil
	})
	if err == nil {
		t.Fatal("expected error from panicking worker")
	}
	if !strings.Contains(err.Error(), "panic") {
		t.Errorf("error %q does not mention the panic", err)
	}
}

func TestRunSweep_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := runSweep(ctx, 10, func(ctx context.Context, chunk, lo, hi int) error {
		return ctx.Err()
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
