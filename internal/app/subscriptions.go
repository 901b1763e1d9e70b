package app

import (
	"github.com/dshills/modalkit/internal/config"
	"github.com/dshills/modalkit/internal/input"
)

const remapHookName = "remap"

// ApplyConfig switches the session to cfg. The sequence timeout, remaps,
// log level and clipboard take effect at once; editor settings apply to
// documents opened afterwards. cfg must already be validated.
func (a *App) ApplyConfig(cfg *config.Config) {
	a.mu.Lock()
	old := a.cfg
	a.cfg = cfg
	a.mu.Unlock()

	if lvl, err := config.ParseLogLevel(cfg.Logging.Level); err == nil {
		a.logLevel.Set(lvl)
	}
	a.input.KeyBuffer().SetTimeout(cfg.Input.SequenceTimeout())
	a.applyRemaps(cfg)

	if cfg.Clipboard.Enabled != old.Clipboard.Enabled {
		if cfg.Clipboard.Enabled {
			a.regs.SetClipboard(a.clipboardProvider())
		} else {
			a.regs.SetClipboard(nil)
		}
	}
	if cfg.Input.MaxCount != old.Input.MaxCount {
		a.logger.Info("max_count change takes effect on restart", "max_count", cfg.Input.MaxCount)
	}

	a.logger.Info("configuration applied",
		"timeout", cfg.Input.SequenceTimeout(),
		"remaps", len(cfg.Remap))
}

// applyRemaps replaces the remap hooks with cfg's table.
func (a *App) applyRemaps(cfg *config.Config) {
	hooks := a.input.Hooks()
	hooks.UnregisterByName(remapHookName)
	if remaps := cfg.Remaps(); len(remaps) > 0 {
		hooks.RegisterWithOptions(input.NewRemapTableHook(remaps), remapHookName, input.HookPriorityHighest)
	}
}

// watchConfig reloads path on change. A file that fails to load or
// validate is logged and the current configuration stays.
func (a *App) watchConfig(path string) error {
	w, err := config.Watch(path, func(cfg *config.Config, err error) {
		if err != nil {
			a.logger.Warn("config reload failed", "path", path, "error", err)
			return
		}
		if a.isClosed() {
			return
		}
		a.ApplyConfig(cfg)
	})
	if err != nil {
		return err
	}
	a.mu.Lock()
	a.watcher = w
	a.mu.Unlock()
	return nil
}
