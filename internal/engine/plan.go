// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package engine

import (
	"errors"

	"github.com/specialistvlad/qcgrid/internal/qc"
	"github.com/specialistvlad/qcgrid/internal/selector"
)

// Step is one rule with its resolved variables.
type Step struct {
	Rule      *qc.Rule
	Variables []string
}

// Plan is the fully resolved execution order of a run.
type Plan struct {
	Steps []Step
}

// Len returns the number of (rule, variable) applications in the plan.
func (p *Plan) Len() int {
	n := 0
	for _, s := range p.Steps {
		n += len(s.Variables)
	}
	return n
}

type bitOwner struct {
	variable string
	bit      int
}

// Plan resolves every rule against schema and checks that no bit is recorded
// by two rules on the same variable. It does not touch any data.
func (e *Engine) Plan(schema selector.Schema) (*Plan, error) {
	plan := &Plan{Steps: make([]Step, 0, len(e.rules))}
	owners := make(map[bitOwner]string)
	var errs []error

	for _, r := range e.rules {
		vars, err := r.Resolve(schema)
		if err != nil {
			errs = append(errs, qc.Wrap(r.Name, "", "resolving variables", err))
			continue
		}
		for _, v := range vars {
			for _, bit := range r.Bits() {
				key := bitOwner{variable: v, bit: bit}
				if prev, taken := owners[key]; taken && prev != r.Name {
					errs = append(errs, qc.Errorf(r.Name, "", "bit %d of variable %q is already recorded by rule %q", bit, v, prev))
					continue
				}
				owners[key] = r.Name
			}
		}
		plan.Steps = append(plan.Steps, Step{Rule: r, Variables: vars})
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return plan, nil
}
