// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package handlers

import (
	"context"

	"github.com/specialistvlad/qcgrid/internal/ctxlog"
	"github.com/specialistvlad/qcgrid/internal/qc"
)

// FailParams configures FailPipeline.
type FailParams struct {
	// Tolerance is the fraction of failed elements allowed before the
	// pipeline is aborted. Zero aborts on any failure.
	Tolerance float64 `mapstructure:"tolerance" validate:"gte=0,lt=1"`
}

// FailPipeline aborts the run when the failure mask exceeds its tolerance.
type FailPipeline struct {
	Tolerance float64
}

// NewFailPipeline builds the handler from validated parameters.
func NewFailPipeline(p FailParams) (qc.Handler, error) {
	return FailPipeline{Tolerance: p.Tolerance}, nil
}

// Handle implements qc.Handler.
func (h FailPipeline) Handle(ctx context.Context, target qc.Target, mask qc.Mask) (qc.Outcome, error) {
	failed := mask.Count()
	if failed == 0 {
		return qc.Continue, nil
	}
	if h.Tolerance > 0 && float64(failed)/float64(len(mask)) <= h.Tolerance {
		return qc.Continue, nil
	}
	ctxlog.FromContext(ctx).Warn("Quality check failed the pipeline.",
		"rule", target.Rule, "variable", target.Variable, "failed", failed, "total", len(mask))
	return qc.AbortPipeline, nil
}
