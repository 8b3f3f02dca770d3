// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package builder

import (
	"context"
	"errors"
	"fmt"

	"github.com/specialistvlad/qcgrid/internal/config"
	"github.com/specialistvlad/qcgrid/internal/ctxlog"
	"github.com/specialistvlad/qcgrid/internal/qc"
	"github.com/specialistvlad/qcgrid/internal/registry"
	"github.com/specialistvlad/qcgrid/internal/selector"
)

// Build constructs the rules of a config model, in model order.
func Build(ctx context.Context, model *config.Model, reg *registry.Registry) ([]*qc.Rule, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Build: Starting rule construction.", "rule_count", len(model.Rules))

	rules := make([]*qc.Rule, 0, len(model.Rules))
	var errs []error
	for _, cr := range model.Rules {
		rule, err := buildRule(cr, reg)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		rules = append(rules, rule)
		logger.Debug("Build: Rule constructed.", "rule", rule.Name, "checker", rule.Checker.Kind, "handlers", len(rule.Handlers))
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	logger.Info("Build: Rule construction successful.", "rules", len(rules))
	return rules, nil
}

// buildRule returns the first problem of a single rule.
func buildRule(cr *config.Rule, reg *registry.Registry) (*qc.Rule, error) {
	if cr.Name == "" {
		return nil, qc.Errorf("", "", "rule at %s has no name", cr.Source)
	}
	if cr.Checker.Class == "" {
		return nil, qc.Errorf(cr.Name, "", "no checker configured")
	}
	if len(cr.Variables) == 0 {
		return nil, qc.Errorf(cr.Name, "", "no variables configured")
	}

	vars, err := selector.ParseAll(cr.Variables)
	if err != nil {
		return nil, qc.Wrap(cr.Name, "", "variables", err)
	}
	exclude, err := selector.ParseAll(cr.Exclude)
	if err != nil {
		return nil, qc.Wrap(cr.Name, "", "exclude", err)
	}

	checkerKind := registry.KindName(cr.Checker.Class)
	checker, err := reg.NewChecker(cr.Checker.Class, cr.Checker.Params)
	if err != nil {
		return nil, qc.Wrap(cr.Name, checkerKind, "building checker", err)
	}

	rule := &qc.Rule{
		Name:      cr.Name,
		Checker:   qc.BoundChecker{Kind: checkerKind, Checker: checker},
		Variables: vars,
		Exclude:   exclude,
	}
	for i, hc := range cr.Handlers {
		kind := registry.KindName(hc.Class)
		if kind == "" {
			return nil, qc.Errorf(cr.Name, "", "handler %d has no classname", i)
		}
		h, err := reg.NewHandler(hc.Class, hc.Params)
		if err != nil {
			return nil, qc.Wrap(cr.Name, kind, fmt.Sprintf("building handler %d", i), err)
		}
		rule.Handlers = append(rule.Handlers, qc.BoundHandler{Kind: kind, Handler: h})
	}
	return rule, nil
}
