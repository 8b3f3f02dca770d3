// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package handlers

import (
	"context"

	"github.com/specialistvlad/qcgrid/internal/ctxlog"
	"github.com/specialistvlad/qcgrid/internal/qc"
)

// RemoveFailedValues overwrites flagged elements with the variable's fill
// value, or NaN when it declares none. The variable keeps its shape, so
// later checkers see the removed elements as missing.
type RemoveFailedValues struct{}

// Handle implements qc.Handler.
func (RemoveFailedValues) Handle(ctx context.Context, target qc.Target, mask qc.Mask) (qc.Outcome, error) {
	v, err := lookup(target)
	if err != nil {
		return qc.Continue, err
	}
	if err := checkLen(v, mask); err != nil {
		return qc.Continue, err
	}

	fill := v.MissingValue()
	missing := v.MissingFunc()
	removed := 0
	for i, failed := range mask {
		if failed && !missing(i) {
			v.Data[i] = fill
			removed++
		}
	}
	if removed > 0 {
		ctxlog.FromContext(ctx).Debug("Removed failed values.", "rule", target.Rule, "variable", target.Variable, "count", removed)
	}
	return qc.Continue, nil
}
