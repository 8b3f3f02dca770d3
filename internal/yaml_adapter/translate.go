// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package yaml_adapter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/specialistvlad/qcgrid/internal/config"
	"gopkg.in/yaml.v3"
)

type componentDoc struct {
	Classname  string         `yaml:"classname"`
	Parameters map[string]any `yaml:"parameters"`
}

type ruleDoc struct {
	Name      string         `yaml:"name"`
	Checker   componentDoc   `yaml:"checker"`
	Handlers  []componentDoc `yaml:"handlers"`
	Variables []string       `yaml:"variables"`
	ApplyTo   []string       `yaml:"apply_to"`
	Exclude   []string       `yaml:"exclude"`
}

var (
	ruleKeys      = keySet("name", "checker", "handlers", "variables", "apply_to", "exclude")
	componentKeys = keySet("classname", "parameters")
)

type parser struct {
	source string
	model  *config.Model
}

func (p *parser) pos(n *yaml.Node) string {
	return fmt.Sprintf("%s:%d", p.source, n.Line)
}

// parseNamed reads the classic layout: a mapping of rule name to rule.
func (p *parser) parseNamed(m *yaml.Node) error {
	if m.Kind != yaml.MappingNode {
		return fmt.Errorf("%s: expected a mapping of rules", p.pos(m))
	}
	for i := 0; i+1 < len(m.Content); i += 2 {
		key, body := m.Content[i], m.Content[i+1]
		rule, err := p.parseRule(body, false)
		if err != nil {
			return fmt.Errorf("rule %q: %w", key.Value, err)
		}
		rule.Name = key.Value
		rule.Source = p.pos(key)
		if err := p.model.Append(rule); err != nil {
			return err
		}
	}
	return nil
}

// parseManagers reads the managers layout: a sequence of named rules.
func (p *parser) parseManagers(seq *yaml.Node) error {
	if seq.Kind != yaml.SequenceNode {
		return fmt.Errorf("%s: managers must be a list", p.pos(seq))
	}
	for i, body := range seq.Content {
		rule, err := p.parseRule(body, true)
		if err != nil {
			return fmt.Errorf("manager %d: %w", i, err)
		}
		if rule.Name == "" {
			return fmt.Errorf("%s: manager %d has no name", p.pos(body), i)
		}
		rule.Source = p.pos(body)
		if err := p.model.Append(rule); err != nil {
			return err
		}
	}
	return nil
}

func (p *parser) parseRule(n *yaml.Node, named bool) (*config.Rule, error) {
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%s: expected a mapping", p.pos(n))
	}
	if err := p.checkKeys(n, ruleKeys); err != nil {
		return nil, err
	}
	if err := p.checkComponentKeys(n); err != nil {
		return nil, err
	}

	var doc ruleDoc
	if err := n.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%s: %w", p.pos(n), err)
	}
	if doc.Name != "" && !named {
		return nil, fmt.Errorf("%s: name is only allowed in the managers layout", p.pos(n))
	}
	if len(doc.Variables) > 0 && len(doc.ApplyTo) > 0 {
		return nil, fmt.Errorf("%s: set either variables or apply_to, not both", p.pos(n))
	}

	rule := &config.Rule{
		Name:      doc.Name,
		Checker:   toComponent(doc.Checker),
		Variables: doc.Variables,
		Exclude:   doc.Exclude,
	}
	if len(doc.ApplyTo) > 0 {
		rule.Variables = doc.ApplyTo
	}
	for _, h := range doc.Handlers {
		rule.Handlers = append(rule.Handlers, toComponent(h))
	}
	return rule, nil
}

// checkComponentKeys rejects unknown keys in the checker and handler entries.
func (p *parser) checkComponentKeys(rule *yaml.Node) error {
	if c := mappingValue(rule, "checker"); c != nil && c.Kind == yaml.MappingNode {
		if err := p.checkKeys(c, componentKeys); err != nil {
			return fmt.Errorf("checker: %w", err)
		}
	}
	if hs := mappingValue(rule, "handlers"); hs != nil && hs.Kind == yaml.SequenceNode {
		for i, h := range hs.Content {
			if h.Kind != yaml.MappingNode {
				continue
			}
			if err := p.checkKeys(h, componentKeys); err != nil {
				return fmt.Errorf("handler %d: %w", i, err)
			}
		}
	}
	return nil
}

func (p *parser) checkKeys(m *yaml.Node, allowed map[string]struct{}) error {
	var unknown []string
	for i := 0; i+1 < len(m.Content); i += 2 {
		if _, ok := allowed[m.Content[i].Value]; !ok {
			unknown = append(unknown, m.Content[i].Value)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	known := make([]string, 0, len(allowed))
	for k := range allowed {
		known = append(known, k)
	}
	sort.Strings(known)
	return fmt.Errorf("%s: unknown keys %s (expected %s)", p.pos(m), strings.Join(unknown, ", "), strings.Join(known, ", "))
}

func toComponent(c componentDoc) config.Component {
	return config.Component{Class: c.Classname, Params: c.Parameters}
}

func keySet(keys ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		out[k] = struct{}{}
	}
	return out
}
