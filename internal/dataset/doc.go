// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package dataset is the in-memory representation of a standardised
// time-series dataset: ordered dimensions, ordered variables holding flat
// row-major float64 values, and free-form attributes.
//
// # Core Concepts
//
//   - Dimension: a named axis with a declared length, or an unlimited axis
//     whose length is taken from the data that uses it.
//
//   - Variable: values plus the dimensions they are laid out on. A 1-D
//     variable named after its own dimension is a coordinate variable (the
//     xarray convention); every other variable is a data variable.
//
//   - Attributes: per-variable metadata such as `_FillValue`, `fail_range`
//     or `valid_delta`. Values are kept as decoded (numbers, strings, lists)
//     and coerced on access.
//
// A Dataset also implements the schema view the selector package resolves
// variable groups against, so the same value is both the data and its schema.
//
// Snapshots (Decode/Encode) are the YAML/JSON form of a Dataset used by the
// command-line harness in place of instrument readers and file writers.
package dataset
