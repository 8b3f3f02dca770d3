// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package engine

import (
	"errors"

	"github.com/google/uuid"
	"github.com/specialistvlad/qcgrid/internal/qc"
	"github.com/specialistvlad/qcgrid/internal/selector"
)

// Engine applies an immutable, ordered rule set to datasets.
type Engine struct {
	rules   []*qc.Rule
	metrics *Metrics
	newID   func() string
	schema  selector.Schema
}

// Option configures an Engine.
type Option func(*Engine)

// WithMetrics records run statistics into m.
func WithMetrics(m *Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// WithRunIDs overrides the run ID generator. Run IDs are random UUIDs by
// default.
func WithRunIDs(gen func() string) Option {
	return func(e *Engine) {
		e.newID = gen
	}
}

// WithSchema makes New plan the rules against schema, so that unknown
// literals and every per-variable bit collision fail construction.
func WithSchema(schema selector.Schema) Option {
	return func(e *Engine) {
		e.schema = schema
	}
}

// New validates the rule set and returns an engine for it. Every problem is
// reported as a *qc.ConfigurationError, joined when there are several.
//
// Without WithSchema, New rejects bit collisions that hold for any dataset:
// two rules recording the same bit on literal names they share, or on
// groups that always overlap, with no excludes on either rule. Whether a
// group such as DATA_VARS contains a literal depends on the dataset, so a
// collision like DATA_VARS and wind_speed both recording bit 1 is rejected
// by Plan at the start of Run, before any rule executes.
func New(rules []*qc.Rule, opts ...Option) (*Engine, error) {
	e := &Engine{
		rules: append([]*qc.Rule(nil), rules...),
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	if err := validateRules(e.rules); err != nil {
		return nil, err
	}
	if e.schema != nil {
		if _, err := e.Plan(e.schema); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// Rules returns the engine's rules in evaluation order.
func (e *Engine) Rules() []*qc.Rule {
	return append([]*qc.Rule(nil), e.rules...)
}

func validateRules(rules []*qc.Rule) error {
	var errs []error
	seen := make(map[string]struct{}, len(rules))

	for i, r := range rules {
		if r == nil {
			errs = append(errs, qc.Errorf("", "", "rule %d is nil", i))
			continue
		}
		if _, dup := seen[r.Name]; dup {
			errs = append(errs, qc.Errorf(r.Name, "", "duplicate rule name"))
		}
		seen[r.Name] = struct{}{}

		if r.Checker.Checker == nil {
			errs = append(errs, qc.Errorf(r.Name, r.Checker.Kind, "no checker"))
		}
		if err := checkOwnBits(r); err != nil {
			errs = append(errs, err)
		}
	}

	// A bit recorded by two rules collides whenever the rules share a
	// variable. Without a schema that is only certain for overlapping
	// selectors and no exclusions; the rest is left to Plan.
	for i, a := range rules {
		for _, b := range rules[i+1:] {
			if a == nil || b == nil || len(a.Exclude) > 0 || len(b.Exclude) > 0 {
				continue
			}
			if bit, ok := sharedBit(a, b); ok && selectorsOverlap(a.Variables, b.Variables) {
				errs = append(errs, qc.Errorf(b.Name, "", "bit %d is already recorded by rule %q on the same variables", bit, a.Name))
			}
		}
	}
	return errors.Join(errs...)
}

// checkOwnBits rejects a rule recording the same bit twice.
func checkOwnBits(r *qc.Rule) error {
	seen := make(map[int]struct{})
	for _, bit := range r.Bits() {
		if _, dup := seen[bit]; dup {
			return qc.Errorf(r.Name, "", "bit %d is recorded by more than one handler", bit)
		}
		seen[bit] = struct{}{}
	}
	return nil
}

func sharedBit(a, b *qc.Rule) (int, bool) {
	for _, x := range a.Bits() {
		for _, y := range b.Bits() {
			if x == y {
				return x, true
			}
		}
	}
	return 0, false
}

func selectorsOverlap(a, b []selector.Selector) bool {
	for _, x := range a {
		for _, y := range b {
			if selector.Overlaps(x, y) {
				return true
			}
		}
	}
	return false
}
