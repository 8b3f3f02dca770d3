// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package yaml_adapter loads quality rules written in the tsdat YAML layout.
//
// Two layouts are understood. The classic one maps rule names to rules,
// optionally nested under a quality_management key:
//
//	quality_management:
//	  manage_missing_coordinates:
//	    checker: {classname: tsdat.qc.checkers.CheckMissing}
//	    handlers: [{classname: tsdat.qc.handlers.FailPipeline}]
//	    variables: [COORDS]
//
// The managers layout lists rules with an explicit name and apply_to:
//
//	managers:
//	  - name: Require Valid Coordinate Variables
//	    checker: {classname: tsdat.qc.checkers.CheckMissing}
//	    handlers: [{classname: tsdat.qc.handlers.FailPipeline}]
//	    apply_to: [COORDS]
//
// Rule order is document order in both layouts.
package yaml_adapter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/specialistvlad/qcgrid/internal/config"
	"github.com/specialistvlad/qcgrid/internal/ctxlog"
	"github.com/specialistvlad/qcgrid/internal/fsutil"
	"gopkg.in/yaml.v3"
)

// Extensions handled by this loader.
var Extensions = []string{".yaml", ".yml"}

// Loader is the YAML implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new YAML configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load implements config.Loader.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("YAML loader started.", "path_count", len(paths))

	files, err := fsutil.FindFiles(paths, Extensions...)
	if err != nil {
		return nil, err
	}

	model := &config.Model{}
	for _, file := range files {
		part, err := l.loadFile(file)
		if err != nil {
			return nil, err
		}
		if err := model.Merge(part); err != nil {
			return nil, err
		}
		logger.Debug("Loaded YAML rule file.", "file", file, "rules", len(part.Rules))
	}
	return model, nil
}

func (l *Loader) loadFile(path string) (*config.Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f, path)
}

// Parse reads one YAML document of rules. source names the document in
// error messages and rule locations.
func Parse(r io.Reader, source string) (*config.Model, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return &config.Model{}, nil
		}
		return nil, fmt.Errorf("failed to parse YAML file %s: %w", source, err)
	}
	if len(doc.Content) == 0 {
		return &config.Model{}, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%s:%d: expected a mapping of rules", source, root.Line)
	}

	p := &parser{source: source, model: &config.Model{}}
	if qm := mappingValue(root, "quality_management"); qm != nil {
		return p.model, p.parseNamed(qm)
	}
	if managers := mappingValue(root, "managers"); managers != nil {
		return p.model, p.parseManagers(managers)
	}
	return p.model, p.parseNamed(root)
}

// mappingValue returns the value node of key in mapping m, or nil.
func mappingValue(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}
