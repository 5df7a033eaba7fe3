package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/dshills/frontctl/internal/app"
)

func newRunCommand(flags *globalFlags) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Draw the layout and dispatch terminal events",
		Example: `  # Run with a config file
  frontctl run -c frontctl.toml

  # Run a layout with one Lua controller and debug logs
  frontctl run -l layout.yaml -s menu.lua --log-level debug --log-file frontctl.log`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeRun(cmd.Context(), flags, watch)
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", true, "Reload runtime settings when the config file changes")
	return cmd
}

func executeRun(ctx context.Context, flags *globalFlags, watch bool) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := flags.load()
	if err != nil {
		return err
	}

	// The screen owns stdout; without a log file, logs are dropped.
	logger, closeLog, err := flags.logger(cfg, io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	screen, err := tcell.NewScreen()
	if err != nil {
		return &app.InitError{Component: "screen", Err: err}
	}

	application, err := app.New(cfg, flags.options(watch), screen, logger)
	if err != nil {
		return err
	}
	defer application.Shutdown()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
