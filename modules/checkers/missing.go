// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package checkers

import (
	"context"

	"github.com/specialistvlad/qcgrid/internal/dataset"
	"github.com/specialistvlad/qcgrid/internal/qc"
)

// Missing flags elements equal to the fill value or NaN.
type Missing struct{}

// Check implements qc.Checker.
func (Missing) Check(_ context.Context, ds *dataset.Dataset, variable string) (qc.Mask, error) {
	v, err := lookup(ds, variable)
	if err != nil {
		return nil, err
	}
	mask := qc.NewMask(v.Len())
	missing := v.MissingFunc()
	for i := range mask {
		mask[i] = missing(i)
	}
	return mask, nil
}
