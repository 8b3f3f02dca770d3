// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package flagstore holds the per-element quality flags produced by a run.
//
// # Layout
//
// Each flagged variable owns one uint32 per element, laid out in the same
// flat row-major order as the variable's data. Bit N (1..32) of a rule is
// stored as the value 1<<(N-1), so bit 1 is 1, bit 2 is 2 and bit 3 is 4.
//
// The assessment ("Bad", "Indeterminate") and meaning of a bit are recorded
// once per (variable, bit), never per element.
//
// # Concurrency
//
// The store is guarded by a RWMutex. The engine is its only writer during a
// run; readers (exporters, metrics, tests) may inspect it afterwards or from
// other goroutines.
//
// # Output
//
// Export writes the flags back into a dataset as companion qc_<variable>
// variables carrying flag_masks, flag_meanings and flag_assessments
// attributes, the layout downstream NetCDF writers expect.
package flagstore
