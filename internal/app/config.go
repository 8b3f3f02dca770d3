// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// StdoutPath selects standard output for OutputPath.
const StdoutPath = "-"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// RulesPaths are rule files or directories holding .yaml, .yml or .hcl
	// files.
	RulesPaths  []string `validate:"min=1,dive,required"`
	DatasetPath string   `validate:"required"`
	// OutputPath receives the checked snapshot. Empty means no output.
	OutputPath string
	// QCVars adds qc_<variable> companions to the output snapshot.
	QCVars bool
	// MetricsFile receives the run metrics in the Prometheus text format.
	MetricsFile string

	LogFormat string `validate:"oneof=text json"`
	LogLevel  string `validate:"oneof=debug info warn error"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return nil, err
		}
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, describe(fe))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
	}
	return &cfg, nil
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "min":
		return fmt.Sprintf("%s is required", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", fe.Field(), fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag())
	}
}
