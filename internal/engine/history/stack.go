package history

import (
	"errors"
	"sync"
	"time"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// Snapshot is the document text and cursor at one point in time.
type Snapshot struct {
	Content string
	Line    int
	Column  int
}

// Entry is one undoable change.
type Entry struct {
	Name   string
	Before Snapshot
	After  Snapshot
	Time   time.Time
}

// History manages the undo and redo stacks of one document.
type History struct {
	mu sync.Mutex

	undoStack []Entry
	redoStack []Entry

	// Grouping state
	depth     int
	groupName string
	group     *Entry

	// Configuration
	maxEntries int
}

// NewHistory creates a new history manager.
func NewHistory(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = 1000 // Default
	}
	return &History{
		maxEntries: maxEntries,
	}
}

// Push records a change from before to after and clears the redo stack.
// Inside a group the change is merged into the pending entry.
func (h *History) Push(before, after Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.depth > 0 {
		if h.group == nil {
			h.group = &Entry{Name: h.groupName, Before: before}
		}
		h.group.After = after
		return
	}
	h.pushLocked(Entry{Before: before, After: after})
}

// pushLocked adds an entry without acquiring the lock.
func (h *History) pushLocked(e Entry) {
	e.Time = time.Now()
	h.undoStack = append(h.undoStack, e)

	// Clear redo stack
	h.redoStack = nil

	// Enforce max entries
	if len(h.undoStack) > h.maxEntries {
		excess := len(h.undoStack) - h.maxEntries
		h.undoStack = h.undoStack[excess:]
	}
}

// Undo pops the last entry and returns the state to restore.
func (h *History) Undo() (Snapshot, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.undoStack) == 0 {
		return Snapshot{}, ErrNothingToUndo
	}
	e := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.redoStack = append(h.redoStack, e)
	return e.Before, nil
}

// Redo re-applies the last undone entry and returns the state to restore.
func (h *History) Redo() (Snapshot, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.redoStack) == 0 {
		return Snapshot{}, ErrNothingToRedo
	}
	e := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.undoStack = append(h.undoStack, e)
	return e.After, nil
}

// CanUndo returns true if there are entries to undo.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack) > 0
}

// CanRedo returns true if there are entries to redo.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack) > 0
}

// UndoCount returns the number of entries on the undo stack.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack)
}

// RedoCount returns the number of entries on the redo stack.
func (h *History) RedoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack)
}

// BeginGroup starts merging pushes into one entry. Calls nest.
func (h *History) BeginGroup(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.depth == 0 {
		h.groupName = name
		h.group = nil
	}
	h.depth++
}

// EndGroup closes a group. The outermost call pushes the merged entry,
// if anything was pushed inside it.
func (h *History) EndGroup() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.depth == 0 {
		return
	}
	h.depth--
	if h.depth > 0 {
		return
	}
	if h.group != nil {
		h.pushLocked(*h.group)
		h.group = nil
	}
}

// CancelGroup abandons the current group. Changes already made to the
// document are not reverted.
func (h *History) CancelGroup() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.depth = 0
	h.group = nil
}

// IsGrouping returns true if a group is open.
func (h *History) IsGrouping() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.depth > 0
}

// Clear drops all history.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.undoStack = nil
	h.redoStack = nil
	h.depth = 0
	h.group = nil
}

// Entries returns a copy of the undo stack, oldest first.
func (h *History) Entries() []Entry {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Entry(nil), h.undoStack...)
}
