// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package selector parses the variable selector tokens used by quality rules
// and resolves them against a dataset schema.
//
// A token is either a literal variable name or one of the reserved group
// names COORDS, DATA_VARS and ALL. Groups are resolved lazily, against the
// schema handed to Resolve, because the variable set is only known once a
// dataset has been loaded.
package selector
