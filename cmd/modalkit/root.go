package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/dshills/modalkit/internal/app"
	"github.com/dshills/modalkit/internal/config"
)

// globalFlags are shared by every command.
type globalFlags struct {
	cmd        *cobra.Command
	configPath string
	logLevel   string
	timeoutMS  int
}

func newRootCmd(version string) *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "modalkit [file]",
		Short: "A modal text editor engine",
		Long: `modalkit interprets vim-style key sequences: counts, registers,
operators, motions, text objects and the dot command.

Run without a subcommand to edit a file in the terminal, or use exec to
apply keys to a file or stdin without a terminal.`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, flags, args)
		},
	}

	root.PersistentFlags().StringVarP(&flags.configPath, "config", "c", config.DefaultPath(),
		"config file (.toml, .yaml or .yml)")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "",
		"override logging.level (debug, info, warn, error); exec and explain log to stderr only when set")
	root.PersistentFlags().IntVar(&flags.timeoutMS, "timeout", 0,
		"override input.sequence_timeout_ms")

	flags.cmd = root
	root.AddCommand(
		newEditCmd(flags),
		newExecCmd(flags),
		newExplainCmd(flags),
	)
	return root
}

// loadConfig loads the config file and applies flag overrides.
func (f *globalFlags) loadConfig() (*config.Config, error) {
	cfg, err := config.LoadOptional(f.configPath)
	if err != nil {
		return nil, err
	}
	if f.logLevel != "" {
		cfg.Logging.Level = f.logLevel
	}
	if f.cmd.PersistentFlags().Changed("timeout") {
		cfg.Input.SequenceTimeoutMS = f.timeoutMS
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newApp creates a session from the flags. Log output goes to logOut
// when --log-level is given, unless the config names a log file.
func (f *globalFlags) newApp(logOut io.Writer, watch bool) (*app.App, error) {
	cfg, err := f.loadConfig()
	if err != nil {
		return nil, err
	}
	if f.logLevel == "" {
		logOut = nil
	}
	return app.New(app.Options{
		ConfigPath:  f.configPath,
		Config:      cfg,
		WatchConfig: watch,
		LogOutput:   logOut,
	})
}
