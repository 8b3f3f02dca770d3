// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package handlers implements the handler kinds that react to a checker's
// failure mask: removing failed values, recording quality bits and failing
// the pipeline.
package handlers

import (
	"fmt"

	"github.com/specialistvlad/qcgrid/internal/dataset"
	"github.com/specialistvlad/qcgrid/internal/qc"
	"github.com/specialistvlad/qcgrid/internal/registry"
)

// Handler kinds provided by this module.
const (
	KindRemoveFailedValues   = "RemoveFailedValues"
	KindRecordQualityResults = "RecordQualityResults"
	KindFailPipeline         = "FailPipeline"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers every handler kind with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterHandler(KindRemoveFailedValues, registry.Handler(func(struct{}) (qc.Handler, error) {
		return RemoveFailedValues{}, nil
	}))
	r.RegisterHandler(KindRecordQualityResults, registry.Handler(NewRecordQualityResults))
	r.RegisterHandler(KindFailPipeline, registry.Handler(NewFailPipeline))
}

func lookup(target qc.Target) (*dataset.Variable, error) {
	v, ok := target.Dataset.Variable(target.Variable)
	if !ok {
		return nil, fmt.Errorf("variable %q not in dataset", target.Variable)
	}
	return v, nil
}

func checkLen(v *dataset.Variable, mask qc.Mask) error {
	if len(mask) != v.Len() {
		return fmt.Errorf("mask has %d entries, variable %q has %d elements", len(mask), v.Name, v.Len())
	}
	return nil
}
