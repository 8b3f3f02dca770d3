// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package app

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/specialistvlad/qcgrid/internal/ctxlog"
	"github.com/specialistvlad/qcgrid/internal/dataset"
	"github.com/specialistvlad/qcgrid/internal/engine"
)

// Run reads the configured dataset, applies the rules, and writes the
// snapshot and metrics outputs. An aborted run still writes its outputs and
// returns a nil error; callers inspect Result.State.
func (a *App) Run(ctx context.Context) (*engine.Result, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	ds, err := dataset.ReadFile(a.config.DatasetPath)
	if err != nil {
		return nil, err
	}
	a.logger.Info("📦 Dataset loaded.", "dataset", ds.Name, "variables", len(ds.Variables()))

	res, runErr := a.engine.Run(ctx, ds)
	// Metrics describe failed runs too.
	if err := a.writeMetrics(); err != nil {
		if runErr != nil {
			return nil, runErr
		}
		return nil, err
	}
	if runErr != nil {
		return nil, fmt.Errorf("quality control run failed: %w", runErr)
	}

	if a.config.QCVars {
		if err := res.ExportTo(ds); err != nil {
			return nil, fmt.Errorf("failed to export quality variables: %w", err)
		}
	}
	if err := a.writeOutput(ds); err != nil {
		return nil, err
	}

	a.logger.Debug("App.Run method finished.", "state", res.State.String())
	return res, nil
}

func (a *App) writeOutput(ds *dataset.Dataset) error {
	switch a.config.OutputPath {
	case "":
		return nil
	case StdoutPath:
		return dataset.Encode(a.outW, ds)
	default:
		if err := dataset.WriteFile(a.config.OutputPath, ds); err != nil {
			return err
		}
		a.logger.Info("💾 Snapshot written.", "path", a.config.OutputPath)
		return nil
	}
}

func (a *App) writeMetrics() error {
	if a.config.MetricsFile == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(a.config.MetricsFile, a.metrics); err != nil {
		return fmt.Errorf("failed to write metrics file: %w", err)
	}
	a.logger.Debug("Metrics written.", "path", a.config.MetricsFile)
	return nil
}
