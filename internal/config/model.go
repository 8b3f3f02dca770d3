// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package config

import (
	"fmt"
)

// Model is the unified, format-agnostic representation of a rule set.
type Model struct {
	// Rules in evaluation order: file order, then document order.
	Rules []*Rule
}

// Rule is the format-agnostic representation of one quality rule.
type Rule struct {
	Name      string
	Checker   Component
	Handlers  []Component
	Variables []string
	Exclude   []string
	// Source locates the rule in its file for error messages.
	Source string
}

// Component is a configured checker or handler: a class name, possibly
// fully qualified, and its raw parameters.
type Component struct {
	Class  string
	Params map[string]any
}

// DuplicateRuleError is returned when two rules share a name.
type DuplicateRuleError struct {
	Name           string
	First, Second string
}

// Error implements the error interface.
func (e *DuplicateRuleError) Error() string {
	return fmt.Sprintf("rule %q defined twice (%s and %s)", e.Name, e.First, e.Second)
}

// Append adds rules to the model, rejecting names already present.
func (m *Model) Append(rules ...*Rule) error {
	for _, r := range rules {
		if prev := m.Rule(r.Name); prev != nil {
			return &DuplicateRuleError{Name: r.Name, First: prev.Source, Second: r.Source}
		}
		m.Rules = append(m.Rules, r)
	}
	return nil
}

// Merge appends every rule of other.
func (m *Model) Merge(other *Model) error {
	if other == nil {
		return nil
	}
	return m.Append(other.Rules...)
}

// Rule returns the rule with the given name, or nil.
func (m *Model) Rule(name string) *Rule {
	for _, r := range m.Rules {
		if r.Name == name {
			return r
		}
	}
	return nil
}
