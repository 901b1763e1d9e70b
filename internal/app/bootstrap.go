package app

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/dshills/modalkit/internal/config"
	"github.com/dshills/modalkit/internal/dispatcher"
	"github.com/dshills/modalkit/internal/engine"
	"github.com/dshills/modalkit/internal/input"
	"github.com/dshills/modalkit/internal/input/mode"
	"github.com/dshills/modalkit/internal/input/vim"
	"github.com/dshills/modalkit/internal/integration/clipboard"
	"github.com/dshills/modalkit/internal/plugin"
)

// New creates a session over an empty document.
func New(opts Options) (*App, error) {
	a := &App{
		id:       uuid.NewString(),
		opts:     opts,
		logLevel: new(slog.LevelVar),
		quit:     make(chan struct{}),
	}
	if err := a.bootstrap(); err != nil {
		return nil, err
	}
	return a, nil
}

// bootstrap initializes all components in dependency order.
func (a *App) bootstrap() error {
	// 1. Config
	cfg := a.opts.Config
	if cfg == nil {
		var err error
		cfg, err = config.LoadOptional(a.opts.ConfigPath)
		if err != nil {
			return &ComponentError{Component: "config", Err: err}
		}
	}
	a.cfg = cfg

	// 2. Logging
	logger, closer, err := newLogger(cfg.Logging, a.opts.LogOutput, a.logLevel)
	if err != nil {
		return &ComponentError{Component: "logging", Err: err}
	}
	a.logger = logger.With("session", a.id)
	a.logCloser = closer

	// 3. Registers and clipboard
	a.regs = vim.NewRegisterStore()
	if cfg.Clipboard.Enabled {
		a.regs.SetClipboard(a.clipboardProvider())
	}

	// 4. Executor
	execConfig := dispatcher.DefaultConfig().
		WithMetrics().
		WithPanicRecovery(true).
		WithMaxCount(cfg.Input.MaxCount)
	a.exec = dispatcher.New(execConfig)
	a.exec.SetLogger(a.logger)
	a.exec.SetRegisters(a.regs)
	a.exec.RegisterPreHook(dispatcher.NewLoggingHook(a.logger))
	a.exec.RegisterPostHook(dispatcher.NewLoggingHook(a.logger))

	// 5. Document
	a.setDocument(engine.New(a.engineOptions()...), "")

	// 6. Modes and input
	a.modes = mode.NewDefaultManager()
	inputConfig := input.DefaultConfig()
	inputConfig.SequenceTimeout = cfg.Input.SequenceTimeout()
	a.input = input.NewHandler(a.exec, a.modes, inputConfig)
	a.input.SetLogger(a.logger)
	a.installControlKeys()
	a.applyRemaps(cfg)

	// 7. Plugins. A broken script is logged and skipped.
	a.plugins = plugin.NewHost(a.exec, plugin.WithLogger(a.logger))
	for _, script := range cfg.Plugins.Scripts {
		if err := a.plugins.Load(script); err != nil {
			a.logger.Warn("plugin failed to load", "script", script, "error", err)
		}
	}

	// 8. Config watcher
	if a.opts.WatchConfig && a.opts.ConfigPath != "" {
		if err := a.watchConfig(a.opts.ConfigPath); err != nil {
			a.logger.Warn("config watch unavailable", "path", a.opts.ConfigPath, "error", err)
		}
	}

	a.logger.Info("session started",
		"timeout", cfg.Input.SequenceTimeout(),
		"clipboard", cfg.Clipboard.Enabled,
		"plugins", len(a.plugins.Registrations()))
	return nil
}

// clipboardProvider picks the provider behind "+ and "*.
func (a *App) clipboardProvider() vim.ClipboardProvider {
	if a.opts.Clipboard != nil {
		return a.opts.Clipboard
	}
	if clipboard.Available() {
		return clipboard.NewSystem()
	}
	a.logger.Debug("system clipboard unsupported, using in-process clipboard")
	return clipboard.NewMemory()
}

// engineOptions builds document options from the configuration.
func (a *App) engineOptions() []engine.Option {
	ed := a.cfg.Editor
	opts := []engine.Option{
		engine.WithTabWidth(ed.TabWidth),
		engine.WithShiftWidth(ed.ShiftWidth),
		engine.WithExpandTab(ed.ExpandTab),
		engine.WithMaxUndoEntries(ed.UndoLevels),
	}
	if a.opts.ReadOnly {
		opts = append(opts, engine.WithReadOnly())
	}
	return opts
}
