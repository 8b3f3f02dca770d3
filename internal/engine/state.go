// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package engine

// State is the state of one engine run.
type State int

const (
	// Running means rules are being applied.
	Running State = iota
	// Aborted means a handler stopped the pipeline.
	Aborted
	// Completed means every rule was applied to every variable.
	Completed
)

// String returns the lower-case name of the state.
func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Aborted:
		return "aborted"
	case Completed:
		return "completed"
	default:
		return "unknown"
	}
}
