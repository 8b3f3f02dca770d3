// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package app

import (
	"github.com/specialistvlad/qcgrid/internal/config"
	"github.com/specialistvlad/qcgrid/internal/hcl_adapter"
	"github.com/specialistvlad/qcgrid/internal/registry"
	"github.com/specialistvlad/qcgrid/internal/yaml_adapter"
	"github.com/specialistvlad/qcgrid/modules/checkers"
	"github.com/specialistvlad/qcgrid/modules/handlers"
)

// coreModules is the definitive list of all modules that are compiled into
// the qcgrid binary.
var coreModules = []registry.Module{
	&checkers.Module{},
	&handlers.Module{},
}

// NewRulesLoader returns the loader for every supported rule file format.
func NewRulesLoader() config.Loader {
	byExt := make(map[string]config.Loader)
	yamlLoader := yaml_adapter.NewLoader()
	for _, ext := range yaml_adapter.Extensions {
		byExt[ext] = yamlLoader
	}
	hclLoader := hcl_adapter.NewLoader()
	for _, ext := range hcl_adapter.Extensions {
		byExt[ext] = hclLoader
	}
	return config.NewExtensionLoader(byExt)
}
