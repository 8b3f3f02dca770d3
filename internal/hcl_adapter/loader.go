// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package hcl_adapter loads quality rules written in HCL:
//
//	rule "manage_fail_min" {
//	  variables = ["DATA_VARS"]
//	  exclude   = ["data_availability"]
//
//	  checker "CheckFailMin" {}
//
//	  handler "RecordQualityResults" {
//	    bit        = 4
//	    assessment = "Bad"
//	    meaning    = "Value is less than the fail_range."
//	  }
//	}
//
// Handlers run in block order; rules are evaluated in file order, then
// block order.
package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/qcgrid/internal/config"
	"github.com/specialistvlad/qcgrid/internal/ctxlog"
	"github.com/specialistvlad/qcgrid/internal/fsutil"
)

// Extensions handled by this loader.
var Extensions = []string{".hcl"}

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load orchestrates the HCL configuration loading process.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := fsutil.FindFiles(paths, Extensions...)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	parser := hclparse.NewParser()
	model := &config.Model{}

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}
		if err := l.decodeInto(ctx, model, hclFile.Body, file); err != nil {
			return nil, err
		}
	}

	logger.Debug("HCL loading complete.", "rules", len(model.Rules))
	return model, nil
}

// Parse decodes rules from HCL source held in memory.
func Parse(ctx context.Context, src []byte, filename string) (*config.Model, error) {
	hclFile, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}
	model := &config.Model{}
	if err := NewLoader().decodeInto(ctx, model, hclFile.Body, filename); err != nil {
		return nil, err
	}
	return model, nil
}

func (l *Loader) decodeInto(ctx context.Context, model *config.Model, body hcl.Body, file string) error {
	var root fileRoot
	if diags := gohcl.DecodeBody(body, nil, &root); diags.HasErrors() {
		return fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
	}

	for _, block := range root.Rules {
		rule, err := l.translateRule(ctx, block)
		if err != nil {
			return fmt.Errorf("rule %q: %w", block.Name, err)
		}
		rule.Source = file
		if err := model.Append(rule); err != nil {
			return err
		}
	}
	return nil
}

// translateRule converts the HCL-specific rule schema into the agnostic model.
func (l *Loader) translateRule(ctx context.Context, b *RuleBlock) (*config.Rule, error) {
	logger := ctxlog.FromContext(ctx).With("rule", b.Name)
	logger.Debug("Translating HCL rule to internal config model.")

	rule := &config.Rule{
		Name:      b.Name,
		Variables: b.Variables,
		Exclude:   b.Exclude,
	}
	if b.Checker != nil {
		c, err := translateComponent(b.Checker)
		if err != nil {
			return nil, fmt.Errorf("checker %q: %w", b.Checker.Kind, err)
		}
		rule.Checker = c
	}
	for i, h := range b.Handlers {
		c, err := translateComponent(h)
		if err != nil {
			return nil, fmt.Errorf("handler %d (%s): %w", i, h.Kind, err)
		}
		rule.Handlers = append(rule.Handlers, c)
	}
	return rule, nil
}

func translateComponent(b *ComponentBlock) (config.Component, error) {
	params, err := bodyParams(b.Body)
	if err != nil {
		return config.Component{}, err
	}
	return config.Component{Class: b.Kind, Params: params}, nil
}
