// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

/*
Package engine orchestrates an ordered set of quality rules against a dataset.

# Lifecycle

An Engine is created once per rule configuration with New, which performs the
checks that need no dataset: unique rule names, a checker on every rule, and
bit collisions between rules whose selectors are certain to overlap.

Each call to Run then:

 1. Validates the dataset schema.
 2. Plans the run: every rule's selectors are resolved once against the
    schema, and the exact per-variable bit assignments are checked for
    collisions. Nothing has been mutated if planning fails.
 3. Executes rules strictly in declaration order and, within a rule, variables
    strictly in resolution order. For each (rule, variable) step the checker
    computes the failure mask once, and every handler sees that same mask.

# States

A run starts Running and ends either Completed or Aborted. Aborted is the
designed outcome of a FailPipeline handler: it is reported through
Result.State with a nil error, so callers can tell a data-quality gate apart
from a configuration problem. Checker and handler faults are returned as
*qc.ConfigurationError and stop the run.

# Concurrency

Execution is single-threaded and synchronous. The dataset and the flag store
belong to the run while it executes; no other goroutine may write them.
*/
package engine
