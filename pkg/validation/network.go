// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package validation provides input validation for raw network data.
//
// This package gates node and edge lists before graph construction. It
// catches malformed records (empty or oversized IDs, non-finite or
// non-positive weights, out-of-range coordinates) and reports them with
// per-record context so callers can reject bad uploads early.
//
// Structural integrity across records (duplicate IDs, edges referencing
// unknown facilities) is enforced by graph construction itself; this
// package checks each record in isolation.
package validation

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/AleutianAI/CorridorFOSS/services/corridor/graph"
)

const (
	// MaxIDLength is the maximum length of a facility ID in characters.
	MaxIDLength = 128

	// MaxNameLength is the maximum length of a facility display name
	// in characters.
	MaxNameLength = 256
)

// netValidate is the validator instance for network inputs.
// Initialized in init() with custom validators.
var netValidate *validator.Validate

func init() {
	netValidate = validator.New()

	// Register custom validator for finite floating-point fields
	_ = netValidate.RegisterValidation("finite", validateFinite)
}

// validateFinite reports whether a float field is neither NaN nor infinite.
//
// The built-in comparison tags let +Inf through (+Inf > 0 holds), so
// weights need an explicit finiteness check.
func validateFinite(fl validator.FieldLevel) bool {
	f := fl.Field().Float()
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// nodeView mirrors graph.Node with validation tags.
type nodeView struct {
	ID   string  `validate:"required,max=128"`
	Name string  `validate:"max=256"`
	Lat  float64 `validate:"latitude"`
	Lon  float64 `validate:"longitude"`
}

// edgeView mirrors graph.Edge with validation tags.
type edgeView struct {
	Source string  `validate:"required,max=128"`
	Target string  `validate:"required,max=128"`
	Weight float64 `validate:"finite,gt=0"`
}

// ValidateNode validates a single facility record.
//
// Valid nodes:
//   - Non-empty ID up to 128 characters
//   - Name up to 256 characters (may be empty)
//   - Coordinates within WGS84 range (zero is fine for unknown positions)
//
// Returns an error describing every failed field.
//
// Example:
//
//	if err := validation.ValidateNode(node); err != nil {
//	    return fmt.Errorf("invalid facility: %w", err)
//	}
func ValidateNode(node graph.Node) error {
	view := nodeView{ID: node.ID, Name: node.Name, Lat: node.Lat, Lon: node.Lon}
	return describeErrors(netValidate.Struct(&view))
}

// ValidateEdge validates a single link record.
//
// Valid edges:
//   - Non-empty Source and Target IDs up to 128 characters
//   - Finite, strictly positive Weight
//
// Self-loops pass; they are structurally permitted. Endpoint existence is
// not checked here, graph construction rejects edges referencing unknown
// facilities.
func ValidateEdge(edge graph.Edge) error {
	view := edgeView{Source: edge.Source, Target: edge.Target, Weight: edge.Weight}
	return describeErrors(netValidate.Struct(&view))
}

// ValidateNetwork validates raw node and edge lists before graph construction.
//
// All records are checked; failures are aggregated with their list index so
// a single pass reports every malformed record.
//
// Example:
//
//	if err := validation.ValidateNetwork(nodes, edges); err != nil {
//	    return nil, fmt.Errorf("invalid network data: %w", err)
//	}
//	g, err := graph.NewGraph(nodes, edges)
func ValidateNetwork(nodes []graph.Node, edges []graph.Edge) error {
	var errs []error

	for i, node := range nodes {
		if err := ValidateNode(node); err != nil {
			errs = append(errs, fmt.Errorf("node %d (%q): %w", i, node.ID, err))
		}
	}
	for i, edge := range edges {
		if err := ValidateEdge(edge); err != nil {
			errs = append(errs, fmt.Errorf("edge %d (%q -> %q): %w", i, edge.Source, edge.Target, err))
		}
	}

	return errors.Join(errs...)
}

// describeErrors rewrites validator errors into field-level messages.
func describeErrors(err error) error {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, errors.New(describeFieldError(fe)))
	}
	return errors.Join(msgs...)
}

// describeFieldError produces a readable message for one failed field.
func describeFieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s must not be empty", field)
	case "max":
		return fmt.Sprintf("%s exceeds %s characters", field, fe.Param())
	case "finite":
		return fmt.Sprintf("%s must be finite", field)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "latitude":
		return fmt.Sprintf("%s must be a valid latitude", field)
	case "longitude":
		return fmt.Sprintf("%s must be a valid longitude", field)
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
