package mode

import (
	"fmt"
	"sort"
	"sync"
)

// Manager manages editor modes and coordinates mode transitions.
type Manager struct {
	mu sync.RWMutex

	// modes holds all registered modes by name.
	modes map[string]Mode

	// current is the active mode.
	current Mode

	// previous is the mode before the current one.
	previous Mode

	// callbacks are notified on mode changes.
	callbacks []ModeChangeCallback
}

// ModeChangeCallback is called when the mode changes.
type ModeChangeCallback func(from, to Mode)

// NewManager creates a manager with no modes.
func NewManager() *Manager {
	return &Manager{modes: make(map[string]Mode)}
}

// NewDefaultManager creates a manager with the four standard modes,
// starting in normal mode.
func NewDefaultManager() *Manager {
	m := NewManager()
	m.Register(NewNormalMode())
	m.Register(NewInsertMode())
	m.Register(NewVisualMode())
	m.Register(NewCommandMode())
	m.current = m.modes[ModeNormal]
	return m
}

// Register adds a mode to the manager.
// If a mode with the same name exists, it is replaced.
func (m *Manager) Register(mode Mode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.modes[mode.Name()] = mode
}

// Unregister removes a mode from the manager.
// Returns an error if trying to unregister the current mode.
func (m *Manager) Unregister(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current != nil && m.current.Name() == name {
		return fmt.Errorf("cannot unregister current mode: %s", name)
	}
	delete(m.modes, name)
	return nil
}

// Get returns a mode by name, or nil if not found.
func (m *Manager) Get(name string) Mode {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.modes[name]
}

// Current returns the current mode, or nil if none is set.
func (m *Manager) Current() Mode {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Previous returns the previous mode, or nil.
func (m *Manager) Previous() Mode {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.previous
}

// Mode returns the name of the current mode, or "".
func (m *Manager) Mode() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return ""
	}
	return m.current.Name()
}

// SetMode switches to the named mode. Switching to the current mode is
// a no-op.
func (m *Manager) SetMode(name string) error {
	m.mu.Lock()

	next, ok := m.modes[name]
	if !ok {
		m.mu.Unlock()
		return fmt.Errorf("unknown mode: %s", name)
	}
	prev := m.current
	if prev == next {
		m.mu.Unlock()
		return nil
	}

	ctx := &Context{NextMode: name}
	if prev != nil {
		if err := prev.Exit(ctx); err != nil {
			m.mu.Unlock()
			return fmt.Errorf("exit %s: %w", prev.Name(), err)
		}
		ctx.PreviousMode = prev.Name()
	}
	ctx.NextMode = ""
	if err := next.Enter(ctx); err != nil {
		m.mu.Unlock()
		return fmt.Errorf("enter %s: %w", name, err)
	}

	m.previous = prev
	m.current = next
	callbacks := append([]ModeChangeCallback(nil), m.callbacks...)
	m.mu.Unlock()

	// Notify callbacks outside of lock
	for _, cb := range callbacks {
		if cb != nil {
			cb(prev, next)
		}
	}
	return nil
}

// OnChange registers a callback for mode changes.
// Returns a function to unregister the callback.
func (m *Manager) OnChange(callback ModeChangeCallback) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.callbacks = append(m.callbacks, callback)
	index := len(m.callbacks) - 1

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		// Remove callback by setting to nil (preserves indices)
		if index < len(m.callbacks) {
			m.callbacks[index] = nil
		}
	}
}

// Modes returns the names of all registered modes, sorted.
func (m *Manager) Modes() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.modes))
	for name := range m.modes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsMode returns true if the current mode matches the given name.
func (m *Manager) IsMode(name string) bool {
	return m.Mode() == name
}
