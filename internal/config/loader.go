// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/specialistvlad/qcgrid/internal/ctxlog"
	"github.com/specialistvlad/qcgrid/internal/fsutil"
)

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load reads configuration from the given files and directories and
	// translates it into the format-agnostic model.
	Load(ctx context.Context, paths ...string) (*Model, error)
}

// ExtensionLoader loads each discovered file with the loader registered for
// its extension and merges the results in file order.
type ExtensionLoader struct {
	loaders map[string]Loader
}

// NewExtensionLoader creates a loader dispatching on extensions such as
// ".yaml". Extensions are matched case-insensitively.
func NewExtensionLoader(byExt map[string]Loader) *ExtensionLoader {
	loaders := make(map[string]Loader, len(byExt))
	for ext, l := range byExt {
		loaders[strings.ToLower(ext)] = l
	}
	return &ExtensionLoader{loaders: loaders}
}

// Extensions returns the supported extensions, sorted.
func (l *ExtensionLoader) Extensions() []string {
	exts := make([]string, 0, len(l.loaders))
	for ext := range l.loaders {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Load implements Loader.
func (l *ExtensionLoader) Load(ctx context.Context, paths ...string) (*Model, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := fsutil.FindFiles(paths, l.Extensions()...)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no rule files (%s) found in %v", strings.Join(l.Extensions(), ", "), paths)
	}
	logger.Debug("Discovered rule files.", "count", len(files), "files", files)

	model := &Model{}
	for _, file := range files {
		loader := l.loaders[strings.ToLower(filepath.Ext(file))]
		part, err := loader.Load(ctx, file)
		if err != nil {
			return nil, err
		}
		if err := model.Merge(part); err != nil {
			return nil, err
		}
	}

	logger.Debug("Rule configuration loaded.", "rules", len(model.Rules))
	return model, nil
}
