// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package checkers

import (
	"context"

	"github.com/specialistvlad/qcgrid/internal/dataset"
	"github.com/specialistvlad/qcgrid/internal/qc"
)

// Directions accepted by CheckMonotonic.
const (
	Increasing = "increasing"
	Decreasing = "decreasing"
)

// MonotonicParams configures CheckMonotonic.
type MonotonicParams struct {
	Direction string `mapstructure:"direction" validate:"omitempty,oneof=increasing decreasing"`
}

// Monotonic flags every element that does not strictly continue the
// configured direction relative to the previous non-missing element of its
// column. The first element is never flagged.
type Monotonic struct {
	Direction string
}

// NewMonotonic builds a Monotonic checker, increasing by default.
func NewMonotonic(p MonotonicParams) (qc.Checker, error) {
	dir := p.Direction
	if dir == "" {
		dir = Increasing
	}
	return Monotonic{Direction: dir}, nil
}

// Check implements qc.Checker.
func (m Monotonic) Check(_ context.Context, ds *dataset.Dataset, variable string) (qc.Mask, error) {
	v, err := lookup(ds, variable)
	if err != nil {
		return nil, err
	}
	mask := qc.NewMask(v.Len())
	walkRows(v, func(i int, prev, cur float64) {
		if m.Direction == Decreasing {
			mask[i] = !(cur < prev)
		} else {
			mask[i] = !(cur > prev)
		}
	})
	return mask, nil
}
