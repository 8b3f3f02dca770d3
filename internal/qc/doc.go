// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package qc defines the vocabulary shared by the engine and the checker and
// handler modules: failure masks, the Checker and Handler contracts, handler
// outcomes, immutable rules and the configuration error kind.
package qc
