package dispatcher

import (
	"sort"
	"sync"

	"github.com/dshills/modalkit/internal/dispatcher/handler"
	"github.com/dshills/modalkit/internal/dispatcher/handlers/editor"
	"github.com/dshills/modalkit/internal/dispatcher/handlers/mode"
	"github.com/dshills/modalkit/internal/input/vim"
)

// ActionRegistry maps action IDs to their implementations.
type ActionRegistry struct {
	mu      sync.RWMutex
	actions map[vim.ActionID]handler.Action
}

// NewActionRegistry creates an empty registry.
func NewActionRegistry() *ActionRegistry {
	return &ActionRegistry{actions: make(map[vim.ActionID]handler.Action)}
}

// DefaultActionRegistry creates a registry with every built-in action.
// Aliases (D, C, S, Y) and "." have no entry: the normalizer rewrites
// aliases and the executor replays ".".
func DefaultActionRegistry() *ActionRegistry {
	r := NewActionRegistry()
	for id, fn := range map[vim.ActionID]handler.ActionFunc{
		vim.ActPasteAfter:       editor.PasteAfter,
		vim.ActPasteBefore:      editor.PasteBefore,
		vim.ActReplaceChar:      editor.ReplaceChar,
		vim.ActDeleteChar:       editor.DeleteChar,
		vim.ActDeleteCharBefore: editor.DeleteCharBefore,
		vim.ActJoin:             editor.Join,
		vim.ActToggleCaseChar:   editor.ToggleCase,
		vim.ActUndo:             editor.Undo,
		vim.ActRedo:             editor.Redo,
		vim.ActSetMark:          editor.SetMark,
		vim.ActInsert:           mode.Insert,
		vim.ActAppend:           mode.Append,
		vim.ActAppendEnd:        mode.AppendEnd,
		vim.ActInsertStart:      mode.InsertStart,
		vim.ActOpenBelow:        mode.OpenBelow,
		vim.ActOpenAbove:        mode.OpenAbove,
		vim.ActSubstitute:       mode.Substitute,
	} {
		r.Register(id, fn)
	}
	return r
}

// Register binds an implementation to an action ID, replacing any
// previous one.
func (r *ActionRegistry) Register(id vim.ActionID, a handler.Action) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions[id] = a
}

// Unregister removes an action.
func (r *ActionRegistry) Unregister(id vim.ActionID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.actions, id)
}

// Get returns the implementation of an action, or nil.
func (r *ActionRegistry) Get(id vim.ActionID) handler.Action {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.actions[id]
}

// Has returns true if an implementation is registered.
func (r *ActionRegistry) Has(id vim.ActionID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.actions[id]
	return ok
}

// List returns all registered action IDs in ascending order.
func (r *ActionRegistry) List() []vim.ActionID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]vim.ActionID, 0, len(r.actions))
	for id := range r.actions {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Count returns the number of registered actions.
func (r *ActionRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.actions)
}
