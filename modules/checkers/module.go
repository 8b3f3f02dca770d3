// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package checkers implements the checker kinds: missing values,
// monotonicity, attribute-driven range limits and step deltas.
package checkers

import (
	"fmt"

	"github.com/specialistvlad/qcgrid/internal/dataset"
	"github.com/specialistvlad/qcgrid/internal/qc"
	"github.com/specialistvlad/qcgrid/internal/registry"
)

// Checker kinds provided by this module.
const (
	KindMissing    = "CheckMissing"
	KindMonotonic  = "CheckMonotonic"
	KindFailMin    = "CheckFailMin"
	KindFailMax    = "CheckFailMax"
	KindWarnMin    = "CheckWarnMin"
	KindWarnMax    = "CheckWarnMax"
	KindValidMin   = "CheckValidMin"
	KindValidMax   = "CheckValidMax"
	KindFailDelta  = "CheckFailDelta"
	KindWarnDelta  = "CheckWarnDelta"
	KindValidDelta = "CheckValidDelta"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers every checker kind with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterChecker(KindMissing, registry.Checker(func(struct{}) (qc.Checker, error) {
		return Missing{}, nil
	}))
	r.RegisterChecker(KindMonotonic, registry.Checker(NewMonotonic))

	for kind, rc := range map[string]Range{
		KindFailMin:  {Attr: "fail_range", Bound: Lower},
		KindFailMax:  {Attr: "fail_range", Bound: Upper},
		KindWarnMin:  {Attr: "warn_range", Bound: Lower},
		KindWarnMax:  {Attr: "warn_range", Bound: Upper},
		KindValidMin: {Attr: "valid_range", Bound: Lower},
		KindValidMax: {Attr: "valid_range", Bound: Upper},
	} {
		r.RegisterChecker(kind, registry.Checker(func(struct{}) (qc.Checker, error) {
			return rc, nil
		}))
	}

	for kind, attr := range map[string]string{
		KindFailDelta:  "fail_delta",
		KindWarnDelta:  "warn_delta",
		KindValidDelta: "valid_delta",
	} {
		dc := Delta{Attr: attr}
		r.RegisterChecker(kind, registry.Checker(func(struct{}) (qc.Checker, error) {
			return dc, nil
		}))
	}
}

func lookup(ds *dataset.Dataset, name string) (*dataset.Variable, error) {
	v, ok := ds.Variable(name)
	if !ok {
		return nil, fmt.Errorf("variable %q not in dataset", name)
	}
	return v, nil
}

// walkRows calls visit for every non-missing element that has an earlier
// non-missing element in the same column of the first dimension. The
// previous value is the nearest such element.
func walkRows(v *dataset.Variable, visit func(i int, prev, cur float64)) {
	stride := v.Stride()
	rows := v.Rows()
	missing := v.MissingFunc()
	for col := 0; col < stride; col++ {
		havePrev := false
		var prev float64
		for row := 0; row < rows; row++ {
			i := row*stride + col
			if missing(i) {
				continue
			}
			cur := v.Data[i]
			if havePrev {
				visit(i, prev, cur)
			}
			prev, havePrev = cur, true
		}
	}
}

