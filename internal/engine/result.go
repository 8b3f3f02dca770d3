// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package engine

import (
	"time"

	"github.com/specialistvlad/qcgrid/internal/dataset"
	"github.com/specialistvlad/qcgrid/internal/flagstore"
	"github.com/specialistvlad/qcgrid/internal/qc"
)

// Application records one (rule, variable) step of a run.
type Application struct {
	Rule     string
	Variable string
	Checker  string
	// Failed is the number of elements the checker flagged.
	Failed  int
	Total   int
	Outcome qc.Outcome
}

// AbortInfo identifies the handler that stopped a run.
type AbortInfo struct {
	Rule     string
	Variable string
	Handler  string
	Failed   int
}

// Result is the outcome of one run.
type Result struct {
	RunID string
	State State
	// Flags holds the quality bits recorded by the run, including those
	// recorded before an abort.
	Flags *flagstore.Store
	// AbortedBy is set when State is Aborted.
	AbortedBy    *AbortInfo
	Applications []Application
	Duration     time.Duration
}

// Aborted reports whether a handler stopped the run.
func (r *Result) Aborted() bool {
	return r.State == Aborted
}

// ExportTo writes the run's flags into ds as qc_<variable> companions.
func (r *Result) ExportTo(ds *dataset.Dataset) error {
	return r.Flags.Export(ds)
}
