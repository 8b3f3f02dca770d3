// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package qc

import (
	"context"

	"github.com/specialistvlad/qcgrid/internal/dataset"
	"github.com/specialistvlad/qcgrid/internal/flagstore"
	"github.com/specialistvlad/qcgrid/internal/selector"
)

// Outcome is the control decision returned by a handler.
type Outcome int

const (
	// Continue lets the engine move on to the next handler.
	Continue Outcome = iota
	// AbortPipeline stops the run immediately.
	AbortPipeline
)

func (o Outcome) String() string {
	if o == AbortPipeline {
		return "abort"
	}
	return "continue"
}

// Checker evaluates one variable and reports which elements fail. A checker
// reads the current dataset state on every call and must not mutate it.
type Checker interface {
	Check(ctx context.Context, ds *dataset.Dataset, variable string) (Mask, error)
}

// Target is the state a handler acts upon for one (rule, variable) step.
type Target struct {
	Rule     string
	Variable string
	Dataset  *dataset.Dataset
	Flags    *flagstore.Store
}

// Handler reacts to a failure mask. The mask is shared by every handler of a
// rule and must not be modified.
type Handler interface {
	Handle(ctx context.Context, target Target, mask Mask) (Outcome, error)
}

// BitRecorder is implemented by handlers that write a bit into the flag
// store. The engine uses it to detect bit collisions before a run.
type BitRecorder interface {
	RecordsBit() int
}

// CheckerFunc adapts a function to the Checker interface.
type CheckerFunc func(ctx context.Context, ds *dataset.Dataset, variable string) (Mask, error)

// Check calls f.
func (f CheckerFunc) Check(ctx context.Context, ds *dataset.Dataset, variable string) (Mask, error) {
	return f(ctx, ds, variable)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, target Target, mask Mask) (Outcome, error)

// Handle calls f.
func (f HandlerFunc) Handle(ctx context.Context, target Target, mask Mask) (Outcome, error) {
	return f(ctx, target, mask)
}

// BoundChecker is a checker instance together with the kind it was built from.
type BoundChecker struct {
	Kind    string
	Checker Checker
}

// BoundHandler is a handler instance together with the kind it was built from.
type BoundHandler struct {
	Kind    string
	Handler Handler
}

// Bit returns the flag bit the handler records, if any.
func (h BoundHandler) Bit() (int, bool) {
	if r, ok := h.Handler.(BitRecorder); ok {
		return r.RecordsBit(), true
	}
	return 0, false
}

// Rule binds a checker to an ordered chain of handlers and the variables they
// apply to. Rules are built once and never modified afterwards.
type Rule struct {
	Name      string
	Checker   BoundChecker
	Handlers  []BoundHandler
	Variables []selector.Selector
	Exclude   []selector.Selector
}

// Bits returns the flag bits recorded by the rule's handlers, in handler order.
func (r *Rule) Bits() []int {
	var bits []int
	for _, h := range r.Handlers {
		if bit, ok := h.Bit(); ok {
			bits = append(bits, bit)
		}
	}
	return bits
}

// Resolve expands the rule's selectors against schema.
func (r *Rule) Resolve(schema selector.Schema) ([]string, error) {
	return selector.ResolveExcluding(r.Variables, r.Exclude, schema)
}
