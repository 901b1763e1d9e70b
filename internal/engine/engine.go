package engine

import (
	"io"
	"strings"
	"sync"

	"github.com/dshills/modalkit/internal/engine/buffer"
	"github.com/dshills/modalkit/internal/engine/history"
)

// ChangeFunc is called after the document text or cursor changes.
type ChangeFunc func(revision uint64)

// Engine is a line-based document with a cursor and undo history.
type Engine struct {
	mu sync.RWMutex

	lines   buffer.Lines
	cursor  buffer.Position
	history *history.History

	revision uint64
	saved    uint64

	listeners []ChangeFunc

	// Configuration
	tabWidth       int
	shiftWidth     int
	expandTab      bool
	maxUndoEntries int
	readOnly       bool

	// Initialization
	initContent string
}

// New creates a new Engine with the given options.
func New(opts ...Option) *Engine {
	e := &Engine{
		tabWidth:       DefaultTabWidth,
		shiftWidth:     DefaultShiftWidth,
		expandTab:      true,
		maxUndoEntries: DefaultMaxUndoEntries,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.lines = buffer.Split(e.initContent)
	e.history = history.NewHistory(e.maxUndoEntries)
	return e
}

// NewFromReader creates an Engine from an io.Reader. A trailing newline
// and CRLF line endings are normalized away.
func NewFromReader(r io.Reader, opts ...Option) (*Engine, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	content := strings.ReplaceAll(string(data), "\r\n", "\n")
	content = strings.TrimSuffix(content, "\n")
	return New(append(opts, WithContent(content))...), nil
}

// ============================================================================
// Read Operations
// ============================================================================

// Lines returns a copy of the document lines.
func (e *Engine) Lines() buffer.Lines {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.lines.Clone()
}

// Content returns the document text.
func (e *Engine) Content() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.lines.Content()
}

// LineCount returns the number of lines.
func (e *Engine) LineCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.lines.LineCount()
}

// LineText returns one line, or "" out of range.
func (e *Engine) LineText(n int) string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.lines.Line(n)
}

// Cursor returns the cursor position.
func (e *Engine) Cursor() buffer.Position {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cursor
}

// TabWidth returns the display width of a tab.
func (e *Engine) TabWidth() int { return e.tabWidth }

// ShiftWidth returns the indent step.
func (e *Engine) ShiftWidth() int { return e.shiftWidth }

// ExpandTab reports whether indentation uses spaces.
func (e *Engine) ExpandTab() bool { return e.expandTab }

// IsReadOnly returns true if the engine rejects writes.
func (e *Engine) IsReadOnly() bool { return e.readOnly }

// Revision returns a counter that increases with every change.
func (e *Engine) Revision() uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.revision
}

// Modified reports whether the text changed since MarkSaved.
func (e *Engine) Modified() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.revision != e.saved
}

// MarkSaved records the current revision as saved.
func (e *Engine) MarkSaved() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.saved = e.revision
}

// WriteTo writes the document with a trailing newline.
func (e *Engine) WriteTo(w io.Writer) (int64, error) {
	content := e.Content()
	if content != "" {
		content += "\n"
	}
	n, err := io.WriteString(w, content)
	return int64(n), err
}

// OnChange registers a listener called after every change, outside the
// engine lock.
func (e *Engine) OnChange(fn ChangeFunc) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listeners = append(e.listeners, fn)
}

// ============================================================================
// Write Operations
// ============================================================================

// SetCursor moves the cursor, clamping to the document.
func (e *Engine) SetCursor(line, col int) {
	e.mu.Lock()
	e.cursor = e.lines.Position(line, col)
	rev := e.revision
	listeners := e.listeners
	e.mu.Unlock()
	notify(listeners, rev)
}

// ReplaceContent replaces the document, keeping the cursor where it
// still fits.
func (e *Engine) ReplaceContent(content string) error {
	cur := e.Cursor()
	return e.Apply(content, cur.Line, cur.Column)
}

// Apply replaces the document and moves the cursor as one undoable step.
// Content equal to the current text only moves the cursor.
func (e *Engine) Apply(content string, line, col int) error {
	if e.readOnly {
		return ErrReadOnly
	}

	e.mu.Lock()
	before := e.snapshotLocked()
	if content != before.Content {
		e.lines = buffer.Split(content)
		e.revision++
	}
	e.cursor = e.lines.Position(line, col)
	after := e.snapshotLocked()
	rev := e.revision
	listeners := e.listeners
	e.mu.Unlock()

	if after.Content != before.Content {
		e.history.Push(before, after)
	}
	notify(listeners, rev)
	return nil
}

func (e *Engine) snapshotLocked() history.Snapshot {
	return history.Snapshot{
		Content: e.lines.Content(),
		Line:    e.cursor.Line,
		Column:  e.cursor.Column,
	}
}

func (e *Engine) restore(s history.Snapshot) {
	e.mu.Lock()
	e.lines = buffer.Split(s.Content)
	e.cursor = e.lines.Position(s.Line, s.Column)
	e.revision++
	rev := e.revision
	listeners := e.listeners
	e.mu.Unlock()
	notify(listeners, rev)
}

func notify(listeners []ChangeFunc, rev uint64) {
	for _, fn := range listeners {
		fn(rev)
	}
}

// ============================================================================
// Undo/Redo
// ============================================================================

// Undo reverts the last change.
func (e *Engine) Undo() error {
	if e.readOnly {
		return ErrReadOnly
	}
	s, err := e.history.Undo()
	if err != nil {
		return err
	}
	e.restore(s)
	return nil
}

// Redo re-applies the last undone change.
func (e *Engine) Redo() error {
	if e.readOnly {
		return ErrReadOnly
	}
	s, err := e.history.Redo()
	if err != nil {
		return err
	}
	e.restore(s)
	return nil
}

// CanUndo returns true if there are changes to undo.
func (e *Engine) CanUndo() bool { return e.history.CanUndo() }

// CanRedo returns true if there are changes to redo.
func (e *Engine) CanRedo() bool { return e.history.CanRedo() }

// BeginGroup starts merging changes into one undo step.
func (e *Engine) BeginGroup() { e.history.BeginGroup("insert") }

// EndGroup closes the current undo group.
func (e *Engine) EndGroup() { e.history.EndGroup() }

// History returns the undo history.
func (e *Engine) History() *history.History { return e.history }
