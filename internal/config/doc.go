// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package config defines the format-agnostic configuration model for quality
// rules, along with the Loader interface for reading it from various sources.
//
// The config.Model is the single source of truth for the builder package,
// which turns it into executable rules. Concrete loaders, for YAML and HCL,
// live in separate adapter packages; ExtensionLoader dispatches between them
// by file extension so one invocation can mix both formats.
package config
