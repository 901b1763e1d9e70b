package input

import (
	"sort"
	"sync"

	"github.com/dshills/modalkit/internal/input/key"
)

// Hook allows interception of key handling.
type Hook interface {
	// PreKeyEvent is called before a key is handled. It may rewrite the
	// event. Return true to consume it.
	PreKeyEvent(event *key.Event) bool

	// PostKeyEvent is called after a key was handled.
	PostKeyEvent(event key.Event, out Outcome)
}

// HookPriority defines the execution order for hooks.
// Lower values execute first.
type HookPriority int

const (
	// HookPriorityHighest runs before all other hooks.
	HookPriorityHighest HookPriority = -1000
	// HookPriorityHigh runs early in the hook chain.
	HookPriorityHigh HookPriority = -100
	// HookPriorityNormal is the default priority.
	HookPriorityNormal HookPriority = 0
	// HookPriorityLow runs late in the hook chain.
	HookPriorityLow HookPriority = 100
	// HookPriorityLowest runs after all other hooks.
	HookPriorityLowest HookPriority = 1000
)

// HookID uniquely identifies a registered hook.
type HookID uint64

// HookRegistration holds metadata about a registered hook.
type HookRegistration struct {
	ID       HookID
	Name     string
	Priority HookPriority
	Hook     Hook
}

// HookManager runs hooks in priority order. Hooks of equal priority run
// in registration order.
type HookManager struct {
	mu      sync.RWMutex
	hooks   []HookRegistration
	nextID  HookID
	enabled bool
}

// NewHookManager creates a new hook manager.
func NewHookManager() *HookManager {
	return &HookManager{enabled: true}
}

// Register adds a hook with default priority.
func (m *HookManager) Register(hook Hook) HookID {
	return m.RegisterWithOptions(hook, "", HookPriorityNormal)
}

// RegisterWithOptions adds a hook with a name and priority.
func (m *HookManager) RegisterWithOptions(hook Hook, name string, priority HookPriority) HookID {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	m.hooks = append(m.hooks, HookRegistration{
		ID:       m.nextID,
		Name:     name,
		Priority: priority,
		Hook:     hook,
	})
	sort.SliceStable(m.hooks, func(i, j int) bool {
		return m.hooks[i].Priority < m.hooks[j].Priority
	})
	return m.nextID
}

// Unregister removes a hook by ID.
func (m *HookManager) Unregister(id HookID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.hooks {
		if m.hooks[i].ID == id {
			m.hooks = append(m.hooks[:i], m.hooks[i+1:]...)
			return true
		}
	}
	return false
}

// UnregisterByName removes the first hook registered under name.
func (m *HookManager) UnregisterByName(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.hooks {
		if m.hooks[i].Name == name {
			m.hooks = append(m.hooks[:i], m.hooks[i+1:]...)
			return true
		}
	}
	return false
}

// SetEnabled enables or disables all hooks.
func (m *HookManager) SetEnabled(enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enabled = enabled
}

// Count returns the number of registered hooks.
func (m *HookManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.hooks)
}

// List returns all hook registrations in execution order.
func (m *HookManager) List() []HookRegistration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]HookRegistration(nil), m.hooks...)
}

func (m *HookManager) active() []HookRegistration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.enabled {
		return nil
	}
	return append([]HookRegistration(nil), m.hooks...)
}

// RunPreKeyEvent runs all PreKeyEvent hooks in priority order.
// Returns true if any hook consumed the event.
func (m *HookManager) RunPreKeyEvent(event *key.Event) bool {
	for _, reg := range m.active() {
		if reg.Hook.PreKeyEvent(event) {
			return true
		}
	}
	return false
}

// RunPostKeyEvent runs all PostKeyEvent hooks in priority order.
func (m *HookManager) RunPostKeyEvent(event key.Event, out Outcome) {
	for _, reg := range m.active() {
		reg.Hook.PostKeyEvent(event, out)
	}
}

// KeyRemapHook rewrites single keys before they reach the parser, the
// way a terminal-level remap would (e.g. <C-c> to <Esc>).
type KeyRemapHook struct {
	From key.Event
	To   key.Event
}

// PreKeyEvent replaces From with To.
func (r KeyRemapHook) PreKeyEvent(event *key.Event) bool {
	if event.Equals(r.From) {
		*event = r.To
	}
	return false
}

// PostKeyEvent implements Hook.
func (KeyRemapHook) PostKeyEvent(key.Event, Outcome) {}

// RemapTableHook rewrites keys through a table in a single pass: the
// result of one remap is never remapped again.
type RemapTableHook struct {
	table map[string]key.Event
}

// NewRemapTableHook creates a hook from a from-to table.
func NewRemapTableHook(remaps map[key.Event]key.Event) *RemapTableHook {
	table := make(map[string]key.Event, len(remaps))
	for from, to := range remaps {
		table[from.Token()] = to
	}
	return &RemapTableHook{table: table}
}

// Len returns the number of remapped keys.
func (r *RemapTableHook) Len() int { return len(r.table) }

// PreKeyEvent implements Hook.
func (r *RemapTableHook) PreKeyEvent(event *key.Event) bool {
	if to, ok := r.table[event.Token()]; ok {
		to.Timestamp = event.Timestamp
		*event = to
	}
	return false
}

// PostKeyEvent implements Hook.
func (*RemapTableHook) PostKeyEvent(key.Event, Outcome) {}
