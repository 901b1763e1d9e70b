package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dshills/modalkit/internal/renderer/backend"
)

func newEditCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "edit [file]",
		Short: "Edit a file in the terminal",
		Long: `Edit a file in the terminal.

<C-s> saves, <C-q> quits. With unsaved changes <C-q> asks to be pressed
again. The config file is reloaded when it changes.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, flags, args)
		},
	}
}

func runEdit(cmd *cobra.Command, flags *globalFlags, args []string) error {
	// The terminal owns stdout and stderr; logs go to logging.file only.
	a, err := flags.newApp(nil, true)
	if err != nil {
		return err
	}
	defer a.Close()

	if len(args) == 1 {
		if err := a.Open(args[0]); err != nil {
			return err
		}
	}

	term, err := backend.NewTerminal()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := a.Run(ctx, term); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
