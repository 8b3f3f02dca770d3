// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package app contains the core application logic. It wires the rule
// loaders, the module registry and the engine together, and runs one quality
// control pass over a dataset snapshot, decoupled from any specific
// entrypoint like a CLI.
package app
