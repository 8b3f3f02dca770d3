// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/specialistvlad/qcgrid/internal/dataset"
	"github.com/specialistvlad/qcgrid/internal/qc"
	"github.com/specialistvlad/qcgrid/internal/registry"
)

// Spy kinds registered by SpyModule.
const (
	SpyChecker = "SpyCheck"
	SpyHandler = "SpyHandle"
)

// CallLog records invocations in order.
type CallLog struct {
	mu    sync.Mutex
	calls []string
}

// Add appends a formatted call.
func (l *CallLog) Add(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, fmt.Sprintf(format, args...))
}

// Calls returns a copy of the recorded calls.
func (l *CallLog) Calls() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.calls...)
}

// SpyModule registers a checker that flags nothing and a handler that
// continues, both recording "check <rule-param> <variable>" and
// "handle <rule-param> <variable>" into Log.
type SpyModule struct {
	Log *CallLog
}

type spyParams struct {
	Label string `mapstructure:"label"`
}

// Register implements the registry.Module interface.
func (m *SpyModule) Register(r *registry.Registry) {
	r.RegisterChecker(SpyChecker, registry.Checker(func(p spyParams) (qc.Checker, error) {
		return qc.CheckerFunc(func(_ context.Context, ds *dataset.Dataset, variable string) (qc.Mask, error) {
			m.Log.Add("check %s %s", p.Label, variable)
			v, _ := ds.Variable(variable)
			return qc.NewMask(v.Len()), nil
		}), nil
	}))
	r.RegisterHandler(SpyHandler, registry.Handler(func(p spyParams) (qc.Handler, error) {
		return qc.HandlerFunc(func(_ context.Context, target qc.Target, _ qc.Mask) (qc.Outcome, error) {
			m.Log.Add("handle %s %s", p.Label, target.Variable)
			return qc.Continue, nil
		}), nil
	}))
}
