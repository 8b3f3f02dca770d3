// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package hcl_adapter

import "github.com/hashicorp/hcl/v2"

// fileRoot is a struct used to decode all top-level blocks of a rule file.
type fileRoot struct {
	Rules []*RuleBlock `hcl:"rule,block"`
}

// RuleBlock is the HCL schema of a `rule "name" { ... }` block.
type RuleBlock struct {
	Name      string            `hcl:"name,label"`
	Variables []string          `hcl:"variables"`
	Exclude   []string          `hcl:"exclude,optional"`
	Checker   *ComponentBlock   `hcl:"checker,block"`
	Handlers  []*ComponentBlock `hcl:"handler,block"`
}

// ComponentBlock is a `checker "Kind" { ... }` or `handler "Kind" { ... }`
// block. Its attributes are the component parameters.
type ComponentBlock struct {
	Kind string   `hcl:"kind,label"`
	Body hcl.Body `hcl:",remain"`
}
