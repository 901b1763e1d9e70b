package execctx

import (
	"github.com/dshills/modalkit/internal/engine/buffer"
	"github.com/dshills/modalkit/internal/input/vim"
)

// Mode names understood by the executor.
const (
	ModeNormal  = "normal"
	ModeInsert  = "insert"
	ModeVisual  = "visual"
	ModeCommand = "command"
)

// Editor is the host document the executor reads and writes.
type Editor interface {
	// Lines returns a snapshot of the document lines.
	Lines() buffer.Lines

	// Content returns the document text.
	Content() string

	// Cursor returns the current cursor position.
	Cursor() buffer.Position

	// ReplaceContent replaces the whole document.
	ReplaceContent(content string) error

	// SetCursor moves the cursor, clamping to the document.
	SetCursor(line, col int)

	// TabWidth returns the display width of a tab.
	TabWidth() int

	// ShiftWidth returns the indent step of > and <.
	ShiftWidth() int
}

// AtomicEditor is implemented by hosts that can replace content and move
// the cursor as one step.
type AtomicEditor interface {
	Apply(content string, line, col int) error
}

// Grouper is implemented by hosts whose undo history can merge several
// commits into one step (a change and the text typed after it).
type Grouper interface {
	BeginGroup()
	EndGroup()
}

// IndentStyler is implemented by hosts that indent with tabs.
type IndentStyler interface {
	ExpandTab() bool
}

// ModeStore holds the current editor mode.
type ModeStore interface {
	Mode() string
	SetMode(mode string) error
}

// Registers is the register store seen by handlers.
type Registers interface {
	Get(name rune) (vim.Register, bool)
	Yank(name rune, reg vim.Register)
	Delete(name rune, reg vim.Register)
	SetLastInserted(content string)
	SetLastSearch(pattern string)
}

// History is the host's undo history.
type History interface {
	Undo() error
	Redo() error
}
