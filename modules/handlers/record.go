// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package handlers

import (
	"context"

	"github.com/specialistvlad/qcgrid/internal/flagstore"
	"github.com/specialistvlad/qcgrid/internal/qc"
)

// RecordParams configures RecordQualityResults.
type RecordParams struct {
	Bit        int    `mapstructure:"bit" validate:"required,min=1,max=32"`
	Assessment string `mapstructure:"assessment" validate:"required,oneof=Bad Indeterminate"`
	Meaning    string `mapstructure:"meaning" validate:"required"`
}

// RecordQualityResults sets its bit in the flag store for every flagged
// element and documents the bit once per variable.
type RecordQualityResults struct {
	info flagstore.BitInfo
}

// NewRecordQualityResults builds the handler from validated parameters.
func NewRecordQualityResults(p RecordParams) (qc.Handler, error) {
	return &RecordQualityResults{info: flagstore.BitInfo{
		Bit:        p.Bit,
		Assessment: p.Assessment,
		Meaning:    p.Meaning,
	}}, nil
}

// RecordsBit implements qc.BitRecorder.
func (h *RecordQualityResults) RecordsBit() int {
	return h.info.Bit
}

// Info returns the bit metadata the handler records.
func (h *RecordQualityResults) Info() flagstore.BitInfo {
	return h.info
}

// Handle implements qc.Handler.
func (h *RecordQualityResults) Handle(_ context.Context, target qc.Target, mask qc.Mask) (qc.Outcome, error) {
	v, err := lookup(target)
	if err != nil {
		return qc.Continue, err
	}
	if err := checkLen(v, mask); err != nil {
		return qc.Continue, err
	}
	if err := target.Flags.Describe(target.Variable, h.info); err != nil {
		return qc.Continue, err
	}
	if err := target.Flags.Set(target.Variable, h.info.Bit, mask); err != nil {
		return qc.Continue, err
	}
	return qc.Continue, nil
}
