// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package registry

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/specialistvlad/qcgrid/internal/qc"
)

// Module is the interface that all checker and handler modules must
// implement to be registered.
type Module interface {
	Register(r *Registry)
}

// CheckerFactory builds a checker from its configured parameters.
type CheckerFactory func(params map[string]any) (qc.Checker, error)

// HandlerFactory builds a handler from its configured parameters.
type HandlerFactory func(params map[string]any) (qc.Handler, error)

// Registry holds the checker and handler kinds available to one application
// instance.
type Registry struct {
	checkers map[string]CheckerFactory
	handlers map[string]HandlerFactory
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		checkers: make(map[string]CheckerFactory),
		handlers: make(map[string]HandlerFactory),
	}
}

// Load registers every module in order.
func (r *Registry) Load(modules ...Module) *Registry {
	for _, m := range modules {
		m.Register(r)
	}
	return r
}

// KindName reduces a configured class name to its kind. Fully qualified
// names such as "tsdat.qc.checkers.CheckMissing" keep their last segment.
func KindName(classname string) string {
	name := strings.TrimSpace(classname)
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// RegisterChecker registers a checker kind.
func (r *Registry) RegisterChecker(kind string, factory CheckerFactory) {
	if _, exists := r.checkers[kind]; exists {
		panic(fmt.Sprintf("checker with kind '%s' already registered", kind))
	}
	slog.Debug("Registering checker.", "kind", kind)
	r.checkers[kind] = factory
}

// RegisterHandler registers a handler kind.
func (r *Registry) RegisterHandler(kind string, factory HandlerFactory) {
	if _, exists := r.handlers[kind]; exists {
		panic(fmt.Sprintf("handler with kind '%s' already registered", kind))
	}
	slog.Debug("Registering handler.", "kind", kind)
	r.handlers[kind] = factory
}

// UnknownKindError is returned when a configured kind was never registered.
type UnknownKindError struct {
	// Role is "checker" or "handler".
	Role  string
	Kind  string
	Known []string
}

// Error implements the error interface.
func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("unknown %s kind %q (known: %s)", e.Role, e.Kind, strings.Join(e.Known, ", "))
}

// NewChecker builds a checker of the given kind or class name.
func (r *Registry) NewChecker(classname string, params map[string]any) (qc.Checker, error) {
	kind := KindName(classname)
	factory, ok := r.checkers[kind]
	if !ok {
		return nil, &UnknownKindError{Role: "checker", Kind: kind, Known: r.CheckerKinds()}
	}
	return factory(params)
}

// NewHandler builds a handler of the given kind or class name.
func (r *Registry) NewHandler(classname string, params map[string]any) (qc.Handler, error) {
	kind := KindName(classname)
	factory, ok := r.handlers[kind]
	if !ok {
		return nil, &UnknownKindError{Role: "handler", Kind: kind, Known: r.HandlerKinds()}
	}
	return factory(params)
}

// CheckerKinds returns the registered checker kinds, sorted.
func (r *Registry) CheckerKinds() []string {
	return sortedKeys(r.checkers)
}

// HandlerKinds returns the registered handler kinds, sorted.
func (r *Registry) HandlerKinds() []string {
	return sortedKeys(r.handlers)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
