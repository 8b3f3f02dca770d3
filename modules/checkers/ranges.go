// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package checkers

import (
	"context"

	"github.com/specialistvlad/qcgrid/internal/dataset"
	"github.com/specialistvlad/qcgrid/internal/qc"
)

// Bound selects which end of a range attribute a checker enforces.
type Bound int

const (
	// Lower flags values below range[0].
	Lower Bound = iota
	// Upper flags values above range[1].
	Upper
)

// Range flags values outside one end of a two-element range attribute
// declared on the variable itself. A variable without the attribute yields
// an all-false mask; a malformed attribute is an error. Missing elements are
// never flagged.
type Range struct {
	Attr  string
	Bound Bound
}

// Check implements qc.Checker.
func (r Range) Check(_ context.Context, ds *dataset.Dataset, variable string) (qc.Mask, error) {
	v, err := lookup(ds, variable)
	if err != nil {
		return nil, err
	}
	mask := qc.NewMask(v.Len())

	lo, hi, ok, err := v.AttrRange(r.Attr)
	if err != nil {
		return nil, err
	}
	if !ok {
		return mask, nil
	}

	missing := v.MissingFunc()
	for i, x := range v.Data {
		if missing(i) {
			continue
		}
		if r.Bound == Lower {
			mask[i] = x < lo
		} else {
			mask[i] = x > hi
		}
	}
	return mask, nil
}
