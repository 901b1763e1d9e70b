// Package app wires a complete modal editing session: configuration,
// logging, the document, the command executor, the key handler, registers,
// the clipboard and Lua plugins. It drives the session either from key
// notation (Feed) or from a terminal backend (Run).
package app

import (
	"io"
	"log/slog"
	"sync"

	"github.com/dshills/modalkit/internal/config"
	"github.com/dshills/modalkit/internal/config/watcher"
	"github.com/dshills/modalkit/internal/dispatcher"
	"github.com/dshills/modalkit/internal/engine"
	"github.com/dshills/modalkit/internal/input"
	"github.com/dshills/modalkit/internal/input/key"
	"github.com/dshills/modalkit/internal/input/mode"
	"github.com/dshills/modalkit/internal/input/vim"
	"github.com/dshills/modalkit/internal/plugin"
)

// App is one editing session.
type App struct {
	mu sync.RWMutex

	// id identifies the session in logs.
	id string

	opts Options
	cfg  *config.Config

	logger    *slog.Logger
	logLevel  *slog.LevelVar
	logCloser io.Closer

	doc  *engine.Engine
	path string

	regs    *vim.RegisterStore
	exec    *dispatcher.Executor
	modes   *mode.Manager
	input   *input.Handler
	plugins *plugin.Host
	watcher *watcher.Watcher

	// status is the last message shown on the status line.
	status string

	// quitArmed is set after a refused <C-q> so a second one discards
	// changes.
	quitArmed bool

	quit     chan struct{}
	quitOnce sync.Once
	closed   bool
}

// Options configures the application.
type Options struct {
	// ConfigPath is the configuration file. Empty means defaults and
	// environment only; a missing file is not an error.
	ConfigPath string

	// Config, when set, is used instead of loading ConfigPath.
	Config *config.Config

	// WatchConfig reloads ConfigPath when it changes.
	WatchConfig bool

	// LogOutput receives the log when the configuration names no file.
	// Nil discards it.
	LogOutput io.Writer

	// Clipboard overrides the system clipboard behind "+ and "*.
	Clipboard vim.ClipboardProvider

	// ReadOnly opens files without allowing edits.
	ReadOnly bool
}

// SessionID returns the session's unique ID.
func (a *App) SessionID() string { return a.id }

// Logger returns the session logger.
func (a *App) Logger() *slog.Logger { return a.logger }

// Config returns the active configuration.
func (a *App) Config() *config.Config {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.cfg
}

// Document returns the open document.
func (a *App) Document() *engine.Engine {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.doc
}

// Path returns the file the document was opened from, if any.
func (a *App) Path() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.path
}

// Input returns the key handler.
func (a *App) Input() *input.Handler { return a.input }

// Executor returns the command executor.
func (a *App) Executor() *dispatcher.Executor { return a.exec }

// Registers returns the register store.
func (a *App) Registers() *vim.RegisterStore { return a.regs }

// Plugins returns the plugin host.
func (a *App) Plugins() *plugin.Host { return a.plugins }

// Mode returns the current mode name.
func (a *App) Mode() string { return a.modes.Mode() }

// Done is closed when the session is asked to quit.
func (a *App) Done() <-chan struct{} { return a.quit }

// Feed handles keys in notation as if typed.
func (a *App) Feed(keys string) error {
	if a.isClosed() {
		return ErrClosed
	}
	_, err := a.input.Feed(keys)
	return err
}

// HandleKey handles one key event.
func (a *App) HandleKey(ev key.Event) input.Outcome {
	return a.input.HandleKey(ev)
}

// Quit asks a running session to stop. Unless force is set it refuses
// while the document has unsaved changes.
func (a *App) Quit(force bool) error {
	if !force && a.Document().Modified() {
		return ErrUnsavedChanges
	}
	a.quitOnce.Do(func() { close(a.quit) })
	return nil
}

// Close releases every component. It is safe to call more than once.
func (a *App) Close() error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil
	}
	a.closed = true
	w := a.watcher
	a.watcher = nil
	a.mu.Unlock()

	a.quitOnce.Do(func() { close(a.quit) })

	var firstErr error
	if w != nil {
		if err := w.Close(); err != nil {
			firstErr = err
		}
	}
	a.input.Close()
	if err := a.plugins.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	a.logger.Info("session closed", "session", a.id)
	if a.logCloser != nil {
		if err := a.logCloser.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (a *App) isClosed() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.closed
}
