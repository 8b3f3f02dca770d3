// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package registry provides the central "glue" for the module system.
//
// The Registry maps the kind names used in rule configuration (e.g.
// "CheckFailMin", "RecordQualityResults") to the Go constructors that build
// checker and handler instances. It is a closed set: only kinds compiled into
// the binary and registered at startup can be configured, and registering the
// same kind twice is a programming error that panics.
//
// Factories receive the raw, format-agnostic parameter map from the
// configuration model. DecodeParams turns that map into a typed parameter
// struct and validates it, so every module reports bad parameters the same
// way.
package registry
