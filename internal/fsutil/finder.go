// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package fsutil provides file system utility functions.
package fsutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FindFilesByExtension recursively searches the given root path for all files
// ending with one of the extensions, matched case-insensitively. Results are
// in lexical walk order.
func FindFilesByExtension(rootPath string, extensions ...string) ([]string, error) {
	if len(extensions) == 0 {
		panic("at least one extension is required")
	}

	var files []string
	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && hasExtension(d.Name(), extensions) {
			files = append(files, path)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	return files, nil
}

// FindFiles expands a list of files and directories into the files to load,
// in the order given. Directories are walked for matching extensions. An
// explicitly named file must exist and carry one of the extensions. Each
// file is returned once, at its first position.
func FindFiles(paths []string, extensions ...string) ([]string, error) {
	var out []string
	seen := make(map[string]struct{})
	add := func(p string) {
		key := filepath.Clean(p)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		out = append(out, p)
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}

		if !info.IsDir() {
			if !hasExtension(path, extensions) {
				return nil, fmt.Errorf("file %s: unsupported extension, expected one of %s", path, strings.Join(extensions, ", "))
			}
			add(path)
			continue
		}

		found, err := FindFilesByExtension(path, extensions...)
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			add(f)
		}
	}
	return out, nil
}

func hasExtension(name string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, want := range extensions {
		if ext == strings.ToLower(want) {
			return true
		}
	}
	return false
}
