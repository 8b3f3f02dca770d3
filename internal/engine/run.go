// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/specialistvlad/qcgrid/internal/ctxlog"
	"github.com/specialistvlad/qcgrid/internal/dataset"
	"github.com/specialistvlad/qcgrid/internal/flagstore"
	"github.com/specialistvlad/qcgrid/internal/qc"
)

// Run applies every rule to ds, mutating it in place. An aborted run returns
// a Result with State Aborted and a nil error.
func (e *Engine) Run(ctx context.Context, ds *dataset.Dataset) (*Result, error) {
	runID := e.newID()
	ctx, logger := ctxlog.With(ctx, "run_id", runID, "dataset", ds.Name)
	start := time.Now()

	if err := ds.Validate(); err != nil {
		e.metrics.observeRun("error", time.Since(start))
		return nil, fmt.Errorf("invalid dataset: %w", err)
	}
	plan, err := e.Plan(ds)
	if err != nil {
		e.metrics.observeRun("error", time.Since(start))
		return nil, err
	}
	logger.Info("▶️ Starting quality control run.", "rules", len(plan.Steps), "applications", plan.Len())

	res := &Result{
		RunID:        runID,
		State:        Running,
		Flags:        flagstore.New(),
		Applications: make([]Application, 0, plan.Len()),
	}

	for _, step := range plan.Steps {
		aborted, err := e.runStep(ctx, ds, res, step)
		if err != nil {
			e.metrics.observeRun("error", time.Since(start))
			return nil, err
		}
		if aborted {
			res.Duration = time.Since(start)
			e.metrics.observeRun(res.State.String(), res.Duration)
			logger.Warn("⛔ Quality control run aborted.",
				"rule", res.AbortedBy.Rule, "variable", res.AbortedBy.Variable, "handler", res.AbortedBy.Handler)
			return res, nil
		}
	}

	res.State = Completed
	res.Duration = time.Since(start)
	e.metrics.observeRun(res.State.String(), res.Duration)
	logger.Info("✅ Quality control run completed.", "duration", res.Duration)
	return res, nil
}

// runStep applies one rule to each of its variables in order. It reports
// true when a handler aborted the pipeline.
func (e *Engine) runStep(ctx context.Context, ds *dataset.Dataset, res *Result, step Step) (bool, error) {
	rule := step.Rule
	ctx, logger := ctxlog.With(ctx, "rule", rule.Name)
	logger.Debug("Applying rule.", "checker", rule.Checker.Kind, "variables", step.Variables)

	for _, name := range step.Variables {
		if err := ctx.Err(); err != nil {
			return false, err
		}

		v, _ := ds.Variable(name)
		mask, err := rule.Checker.Checker.Check(ctx, ds, name)
		if err != nil {
			return false, qc.Wrap(rule.Name, rule.Checker.Kind, fmt.Sprintf("checking %q", name), err)
		}
		if len(mask) != v.Len() {
			return false, qc.Errorf(rule.Name, rule.Checker.Kind, "mask for %q has %d entries, want %d", name, len(mask), v.Len())
		}

		app := Application{
			Rule:     rule.Name,
			Variable: name,
			Checker:  rule.Checker.Kind,
			Failed:   mask.Count(),
			Total:    len(mask),
			Outcome:  qc.Continue,
		}
		e.metrics.observeCheck(rule.Name, rule.Checker.Kind, app.Failed)

		target := qc.Target{Rule: rule.Name, Variable: name, Dataset: ds, Flags: res.Flags}
		for _, h := range rule.Handlers {
			out, err := h.Handler.Handle(ctx, target, mask)
			if err != nil {
				return false, qc.Wrap(rule.Name, h.Kind, fmt.Sprintf("handling %q", name), err)
			}
			if out == qc.AbortPipeline {
				app.Outcome = qc.AbortPipeline
				res.Applications = append(res.Applications, app)
				res.State = Aborted
				res.AbortedBy = &AbortInfo{Rule: rule.Name, Variable: name, Handler: h.Kind, Failed: app.Failed}
				return true, nil
			}
		}

		res.Applications = append(res.Applications, app)
		if app.Failed > 0 {
			logger.Debug("Rule flagged elements.", "variable", name, "failed", app.Failed, "total", app.Total)
		}
	}
	return false, nil
}
