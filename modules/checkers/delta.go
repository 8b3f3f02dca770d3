// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package checkers

import (
	"context"
	"fmt"
	"math"

	"github.com/specialistvlad/qcgrid/internal/dataset"
	"github.com/specialistvlad/qcgrid/internal/qc"
)

// Delta flags elements that differ from the previous non-missing element of
// their column by more than the scalar delta attribute Attr. Like Range it
// is a no-op for variables that do not declare the attribute.
type Delta struct {
	Attr string
}

// Check implements qc.Checker.
func (d Delta) Check(_ context.Context, ds *dataset.Dataset, variable string) (qc.Mask, error) {
	v, err := lookup(ds, variable)
	if err != nil {
		return nil, err
	}
	mask := qc.NewMask(v.Len())

	limit, ok, err := v.AttrFloat(d.Attr)
	if err != nil {
		return nil, err
	}
	if !ok {
		return mask, nil
	}
	if limit < 0 || math.IsNaN(limit) {
		return nil, fmt.Errorf("variable %q: attribute %s must be a non-negative number, got %v", variable, d.Attr, limit)
	}

	walkRows(v, func(i int, prev, cur float64) {
		mask[i] = math.Abs(cur-prev) > limit
	})
	return mask, nil
}
