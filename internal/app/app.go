// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/specialistvlad/qcgrid/internal/builder"
	"github.com/specialistvlad/qcgrid/internal/config"
	"github.com/specialistvlad/qcgrid/internal/ctxlog"
	"github.com/specialistvlad/qcgrid/internal/engine"
	"github.com/specialistvlad/qcgrid/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	registry *registry.Registry
	engine   *engine.Engine
	metrics  *prometheus.Registry
}

// NewApp is the constructor for the main application. It loads and builds the
// rule set, so every configuration problem surfaces here, before any dataset
// is read. Logs go to logW; a snapshot written to StdoutPath goes to outW.
func NewApp(outW, logW io.Writer, cfg *Config, loader config.Loader, modules ...registry.Module) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	model, err := loader.Load(ctx, cfg.RulesPaths...)
	if err != nil {
		return nil, fmt.Errorf("failed to load rules: %w", err)
	}
	logger.Debug("Rules loaded and translated into unified model.", "rules", len(model.Rules))

	if len(modules) == 0 {
		modules = coreModules
	}
	reg := registry.New().Load(modules...)
	logger.Debug("All Go modules registered.", "count", len(modules),
		"checkers", reg.CheckerKinds(), "handlers", reg.HandlerKinds())

	rules, err := builder.Build(ctx, model, reg)
	if err != nil {
		return nil, err
	}

	metrics := prometheus.NewRegistry()
	eng, err := engine.New(rules, engine.WithMetrics(engine.NewMetrics(metrics)))
	if err != nil {
		return nil, err
	}
	logger.Debug("Engine validation passed.", "rules", len(rules))

	return &App{
		outW:     outW,
		logger:   logger,
		config:   cfg,
		registry: reg,
		engine:   eng,
		metrics:  metrics,
	}, nil
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Engine returns the configured engine.
func (a *App) Engine() *engine.Engine {
	return a.engine
}

// Metrics returns the gatherer holding the engine metrics.
func (a *App) Metrics() prometheus.Gatherer {
	return a.metrics
}
