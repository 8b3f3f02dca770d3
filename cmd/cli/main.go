// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/specialistvlad/qcgrid/internal/app"
	"github.com/specialistvlad/qcgrid/internal/cli"
)

// main is the entrypoint for the qcgrid application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Stdout, os.Stderr, os.Args[1:])
	stop()

	if err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.ExitFailure)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(ctx context.Context, outW, logW io.Writer, args []string) error {
	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	qcApp, err := app.NewApp(outW, logW, appConfig, app.NewRulesLoader())
	if err != nil {
		return &cli.ExitError{Code: cli.ExitUsage, Message: fmt.Sprintf("configuration error: %v", err)}
	}

	return cli.Exit(qcApp.Run(ctx))
}
