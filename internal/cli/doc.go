// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package cli turns command-line arguments into an app.Config and turns run
// outcomes into process exit codes.
package cli
