// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

/*
Package builder is the bridge between the static configuration model (defined
in the 'config' package) and the engine (the 'engine' package).

The primary artifact produced by this package is an ordered, validated slice
of immutable *qc.Rule values.

Construction is eager and happens once, at pipeline initialization:

 1. Selector parsing: every variables and exclude token is checked for shape
    (non-empty, no surrounding whitespace). Tokens are not resolved here: the
    dataset schema is not known until a run starts.

 2. Instantiation: the checker and each handler are looked up in the registry
    by kind and constructed from their parameters, which decodes and validates
    them. Unknown kinds and bad parameters surface now, before any data is
    touched.

Every problem found is reported, not only the first, as a joined error whose
members are *qc.ConfigurationError values naming the offending rule.
*/
package builder
