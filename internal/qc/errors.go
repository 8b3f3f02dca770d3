// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package qc

import (
	"fmt"
	"strings"
)

// ConfigurationError reports a malformed rule set or a checker/handler fault
// that makes the produced flags meaningless. It is always fatal to the run.
type ConfigurationError struct {
	// Rule is the offending rule, empty for rule-set-wide problems.
	Rule string
	// Kind is the checker or handler kind involved, if any.
	Kind   string
	Reason string
	Err    error
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	var b strings.Builder
	b.WriteString("configuration error")
	if e.Rule != "" {
		fmt.Fprintf(&b, " in rule %q", e.Rule)
	}
	if e.Kind != "" {
		fmt.Fprintf(&b, " (%s)", e.Kind)
	}
	if e.Reason != "" {
		b.WriteString(": ")
		b.WriteString(e.Reason)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap returns the underlying cause.
func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// Errorf builds a ConfigurationError for rule with a formatted reason.
func Errorf(rule, kind, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Rule: rule, Kind: kind, Reason: fmt.Sprintf(format, args...)}
}

// Wrap builds a ConfigurationError for rule around err. A nil err yields nil.
func Wrap(rule, kind, reason string, err error) error {
	if err == nil {
		return nil
	}
	return &ConfigurationError{Rule: rule, Kind: kind, Reason: reason, Err: err}
}
