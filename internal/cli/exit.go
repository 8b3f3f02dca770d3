// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package cli

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/qcgrid/internal/config"
	"github.com/specialistvlad/qcgrid/internal/engine"
	"github.com/specialistvlad/qcgrid/internal/qc"
	"github.com/specialistvlad/qcgrid/internal/registry"
)

// Exit maps the outcome of a run to an error carrying the process exit code.
// It returns nil for a completed run.
func Exit(res *engine.Result, err error) error {
	if err != nil {
		var (
			exitErr *ExitError
			cfgErr  *qc.ConfigurationError
			kindErr *registry.UnknownKindError
			dupErr  *config.DuplicateRuleError
		)
		switch {
		case errors.As(err, &exitErr):
			return exitErr
		case errors.As(err, &cfgErr), errors.As(err, &kindErr), errors.As(err, &dupErr):
			return &ExitError{Code: ExitUsage, Message: err.Error()}
		default:
			return &ExitError{Code: ExitFailure, Message: err.Error()}
		}
	}
	if res != nil && res.Aborted() {
		by := res.AbortedBy
		return &ExitError{
			Code:    ExitAborted,
			Message: fmt.Sprintf("quality control aborted by rule %q (%s) on variable %q: %d failed elements", by.Rule, by.Handler, by.Variable, by.Failed),
		}
	}
	return nil
}
