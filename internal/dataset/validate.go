// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package dataset

import (
	"errors"
	"fmt"
	"strings"
)

// SchemaError reports a dataset that violates its own declared structure.
type SchemaError struct {
	Variable  string
	Dimension string
	Reason    string
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	var sb strings.Builder
	sb.WriteString("dataset schema")
	if e.Variable != "" {
		sb.WriteString(fmt.Sprintf(": variable %q", e.Variable))
	}
	if e.Dimension != "" {
		sb.WriteString(fmt.Sprintf(": dimension %q", e.Dimension))
	}
	sb.WriteString(": ")
	sb.WriteString(e.Reason)
	return sb.String()
}

// checkVariable verifies a single variable against the declared dimensions.
func (d *Dataset) checkVariable(v *Variable) error {
	if len(v.Shape) != len(v.Dims) {
		return &SchemaError{Variable: v.Name, Reason: fmt.Sprintf("shape %v does not match dimensions %v", v.Shape, v.Dims)}
	}
	size := 1
	seen := make(map[string]struct{}, len(v.Dims))
	for i, name := range v.Dims {
		if _, dup := seen[name]; dup {
			return &SchemaError{Variable: v.Name, Dimension: name, Reason: "dimension used twice"}
		}
		seen[name] = struct{}{}

		dim, ok := d.Dimension(name)
		if !ok {
			return &SchemaError{Variable: v.Name, Dimension: name, Reason: "dimension is not declared"}
		}
		open := dim.Unlimited && dim.Length == 0
		if !open && v.Shape[i] != dim.Length {
			return &SchemaError{Variable: v.Name, Dimension: name, Reason: fmt.Sprintf("length %d does not match declared length %d", v.Shape[i], dim.Length)}
		}
		size *= v.Shape[i]
	}
	if size != len(v.Data) {
		return &SchemaError{Variable: v.Name, Reason: fmt.Sprintf("shape %v holds %d values, got %d", v.Shape, size, len(v.Data))}
	}
	if _, _, err := v.fillValue(); err != nil {
		return &SchemaError{Variable: v.Name, Reason: err.Error()}
	}
	return nil
}

// Validate checks every dataset invariant: declared dimensions, matching
// shapes, consistent unlimited dimension lengths and coordinate lengths.
// Variables are mutable through the pointers handed out by Variable, so the
// engine calls Validate before every run rather than trusting AddVariable.
func (d *Dataset) Validate() error {
	var errs []error
	for _, v := range d.vars {
		if err := d.checkVariable(v); err != nil {
			errs = append(errs, err)
			continue
		}
		if v.IsCoord() {
			dim, _ := d.Dimension(v.Name)
			if dim.Length != 0 && v.Len() != dim.Length {
				errs = append(errs, &SchemaError{Variable: v.Name, Dimension: dim.Name, Reason: fmt.Sprintf("coordinate has %d values for dimension length %d", v.Len(), dim.Length)})
			}
		}
	}
	return errors.Join(errs...)
}
