// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package selector

import "fmt"

// Kind classifies a selector token.
type Kind int

const (
	// Literal names exactly one variable.
	Literal Kind = iota
	// Coords selects every coordinate variable.
	Coords
	// DataVars selects every non-coordinate variable.
	DataVars
	// All selects every variable.
	All
)

// Reserved group tokens.
const (
	TokenCoords   = "COORDS"
	TokenDataVars = "DATA_VARS"
	TokenAll      = "ALL"
)

// String returns the token form of a group kind, or "literal".
func (k Kind) String() string {
	switch k {
	case Coords:
		return TokenCoords
	case DataVars:
		return TokenDataVars
	case All:
		return TokenAll
	default:
		return "literal"
	}
}

// Selector is a parsed variable selector token.
type Selector struct {
	Kind Kind
	// Name is set for Literal selectors only.
	Name string
}

// LiteralOf returns a selector for a single named variable.
func LiteralOf(name string) Selector {
	return Selector{Kind: Literal, Name: name}
}

// IsGroup reports whether the selector is a reserved group token.
func (s Selector) IsGroup() bool {
	return s.Kind != Literal
}

// String returns the canonical token for the selector.
func (s Selector) String() string {
	if s.Kind == Literal {
		return s.Name
	}
	return s.Kind.String()
}

// Schema is the view of a dataset that selectors resolve against.
type Schema interface {
	// VariableNames returns every variable in declaration order.
	VariableNames() []string
	HasVariable(name string) bool
	IsCoord(name string) bool
	// IsQuality reports whether name holds quality flags for another
	// variable. Such variables are left out of DATA_VARS and ALL.
	IsQuality(name string) bool
}

// UnknownVariableError is returned when a literal selector names a variable
// that the schema does not contain.
type UnknownVariableError struct {
	Name string
}

// Error implements the error interface.
func (e *UnknownVariableError) Error() string {
	return fmt.Sprintf("unknown variable %q", e.Name)
}
