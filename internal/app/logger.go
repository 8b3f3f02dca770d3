// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package app

import (
	"io"
	"log/slog"
)

// newLogger creates an isolated logger for one App. Unknown levels fall back
// to info; debug logging also records the source location of each entry.
func newLogger(levelStr, formatStr string, outW io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(levelStr)); err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level <= slog.LevelDebug,
	}
	var handler slog.Handler
	switch formatStr {
	case "text":
		handler = slog.NewTextHandler(outW, opts)
	default:
		handler = slog.NewJSONHandler(outW, opts)
	}
	return slog.New(handler).With("app", "qcgrid")
}
