package plugin

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/modalkit/internal/dispatcher"
	plua "github.com/dshills/modalkit/internal/plugin/lua"
)

// Registration records a command a script added.
type Registration struct {
	Kind   string // "motion" or "action"
	Name   string
	Keys   string
	Script string
}

// Host runs plugin scripts in one shared Lua state and binds what they
// register into an executor.
type Host struct {
	mu sync.RWMutex

	state  *plua.State
	bridge *plua.Bridge
	exec   *dispatcher.Executor
	logger *slog.Logger

	// script is the file being loaded, for registrations.
	script string

	registrations []Registration
	closed        bool
}

// HostOption configures a Host.
type HostOption func(*hostConfig)

type hostConfig struct {
	executionTimeout time.Duration
	logger           *slog.Logger
}

// WithExecutionTimeout bounds every script run and callback.
func WithExecutionTimeout(d time.Duration) HostOption {
	return func(c *hostConfig) {
		c.executionTimeout = d
	}
}

// WithLogger sets the logger scripts write to through modal.log.
func WithLogger(logger *slog.Logger) HostOption {
	return func(c *hostConfig) {
		c.logger = logger
	}
}

// NewHost creates a host bound to exec.
func NewHost(exec *dispatcher.Executor, opts ...HostOption) *Host {
	cfg := hostConfig{
		executionTimeout: plua.DefaultExecutionTimeout,
		logger:           slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	h := &Host{
		state:  plua.NewState(plua.WithExecutionTimeout(cfg.executionTimeout)),
		exec:   exec,
		logger: cfg.logger,
	}
	_ = h.state.With(func(L *lua.LState) {
		h.bridge = plua.NewBridge(L)
		mod := newModalModule(h).register(L)
		L.SetGlobal("modal", mod)
		plua.Preload(L, "modal", mod)
	})
	return h
}

// Load runs a script file.
func (h *Host) Load(path string) error {
	if err := h.begin(filepath.Base(path)); err != nil {
		return err
	}
	defer h.end()

	if err := h.state.DoFile(path); err != nil {
		return fmt.Errorf("loading plugin %s: %w", path, err)
	}
	h.logger.Info("plugin loaded", "script", path)
	return nil
}

// LoadString runs script source under the given name.
func (h *Host) LoadString(name, code string) error {
	if err := h.begin(name); err != nil {
		return err
	}
	defer h.end()

	if err := h.state.DoString(code); err != nil {
		return fmt.Errorf("loading plugin %s: %w", name, err)
	}
	return nil
}

func (h *Host) begin(script string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return ErrHostClosed
	}
	h.script = script
	return nil
}

func (h *Host) end() {
	h.mu.Lock()
	h.script = ""
	h.mu.Unlock()
}

// record notes a registration from the script being loaded.
func (h *Host) record(kind, name, keys string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.registrations = append(h.registrations, Registration{
		Kind:   kind,
		Name:   name,
		Keys:   keys,
		Script: h.script,
	})
	h.logger.Debug("plugin command registered", "kind", kind, "name", name, "keys", keys, "script", h.script)
}

// Registrations lists every command scripts registered, in order.
func (h *Host) Registrations() []Registration {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]Registration(nil), h.registrations...)
}

// Close releases the Lua state. Registered commands fail afterwards.
func (h *Host) Close() error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil
	}
	h.closed = true
	h.mu.Unlock()
	return h.state.Close()
}
