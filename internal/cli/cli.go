// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/qcgrid/internal/app"
	"github.com/spf13/pflag"
)

// Process exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
	ExitAborted = 3
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := pflag.NewFlagSet("qcgrid", pflag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.SortFlags = false

	flagSet.Usage = func() {
		fmt.Fprint(output, `
qcgrid - Declarative quality control for buoy lidar datasets.

Usage:
  qcgrid [options] --dataset SNAPSHOT [RULES_PATH...]

Arguments:
  RULES_PATH
    Path to a rule file (.yaml, .yml, .hcl) or a directory containing them.

Options:
`)
		flagSet.PrintDefaults()
	}

	rulesFlag := flagSet.StringArrayP("rules", "r", nil, "Rule file or directory. Repeatable.")
	datasetFlag := flagSet.StringP("dataset", "d", "", "Dataset snapshot to check (YAML or JSON).")
	outputFlag := flagSet.StringP("output", "o", "", "Where to write the checked snapshot. '-' is stdout.")
	qcVarsFlag := flagSet.Bool("qc-vars", true, "Add qc_<variable> flag variables to the output snapshot.")
	metricsFlag := flagSet.String("metrics-file", "", "Write run metrics in the Prometheus text format.")
	logFormatFlag := flagSet.String("log-format", "json", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	paths := append(append([]string(nil), *rulesFlag...), flagSet.Args()...)
	slog.Debug("Rule paths determined.", "paths", paths)

	if len(paths) == 0 && *datasetFlag == "" {
		slog.Debug("No arguments provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	config, err := app.NewConfig(app.Config{
		RulesPaths:  paths,
		DatasetPath: *datasetFlag,
		OutputPath:  *outputFlag,
		QCVars:      *qcVarsFlag,
		MetricsFile: *metricsFlag,
		LogFormat:   strings.ToLower(*logFormatFlag),
		LogLevel:    strings.ToLower(*logLevelFlag),
	})
	if err != nil {
		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
