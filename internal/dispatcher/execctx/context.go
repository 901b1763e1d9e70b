// Package execctx provides the working state handlers run against.
//
// An ExecutionContext is a scratch copy of the document plus everything a
// single command needs: its count, register, raw character argument and
// the session's registers, marks and history. Handlers mutate the scratch;
// the executor commits it to the host in one step or throws it away.
package execctx

import (
	"strings"

	"github.com/dshills/modalkit/internal/engine/buffer"
)

// ScrollHint asks the host view to reposition around the cursor.
type ScrollHint uint8

const (
	ScrollNone ScrollHint = iota
	ScrollCenter
	ScrollTop
	ScrollBottom
)

// ExecutionContext is the scratch state of one command.
type ExecutionContext struct {
	lines  buffer.Lines
	cursor buffer.Position
	dirty  bool

	// external is set when a handler changed the host directly (undo).
	external bool

	// Count is the effective count, at least 1.
	Count int

	// Register is the resolved register name.
	Register rune

	// Char is the raw character argument of r{c} and m{c}.
	Char rune

	// Registers, Marks and History are session services. Any may be nil.
	Registers Registers
	Marks     *Marks
	History   History

	// TabWidth and ShiftWidth come from the host editor.
	TabWidth   int
	ShiftWidth int
	ExpandTab  bool

	// ModeChange is set by handlers that switch modes.
	ModeChange string

	// Scroll is set by scroll motions.
	Scroll ScrollHint
}

// New creates a context over a copy of lines.
func New(lines buffer.Lines, cursor buffer.Position) *ExecutionContext {
	if len(lines) == 0 {
		lines = buffer.Lines{""}
	}
	ctx := &ExecutionContext{
		lines:      lines.Clone(),
		Count:      1,
		TabWidth:   8,
		ShiftWidth: 4,
		ExpandTab:  true,
	}
	ctx.cursor = ctx.lines.Position(cursor.Line, cursor.Column)
	return ctx
}

// GetCount returns the count, at least 1.
func (ctx *ExecutionContext) GetCount() int {
	if ctx.Count < 1 {
		return 1
	}
	return ctx.Count
}

// Lines returns the scratch lines. Callers must not modify the slice.
func (ctx *ExecutionContext) Lines() buffer.Lines {
	return ctx.lines
}

// Content returns the scratch text.
func (ctx *ExecutionContext) Content() string {
	return ctx.lines.Content()
}

// Cursor returns the scratch cursor.
func (ctx *ExecutionContext) Cursor() buffer.Position {
	return ctx.cursor
}

// SetCursor moves the scratch cursor, clamping to the document.
func (ctx *ExecutionContext) SetCursor(line, col int) {
	ctx.cursor = ctx.lines.Position(line, col)
}

// SetCursorOffset moves the scratch cursor to an absolute offset.
func (ctx *ExecutionContext) SetCursorOffset(offset int) {
	ctx.cursor = ctx.lines.PositionAt(offset)
}

// FlushRegisters applies register writes staged by handlers. The
// executor calls it once the command's text has been committed.
func (ctx *ExecutionContext) FlushRegisters() {
	if s, ok := ctx.Registers.(*StagedRegisters); ok {
		s.Flush()
	}
}

// Dirty reports whether the scratch text changed.
func (ctx *ExecutionContext) Dirty() bool {
	return ctx.dirty
}

// MarkExternal records that the host was changed directly, so the
// scratch must not be committed over it.
func (ctx *ExecutionContext) MarkExternal() {
	ctx.external = true
}

// External reports whether MarkExternal was called.
func (ctx *ExecutionContext) External() bool {
	return ctx.external
}

// Text returns the text between two absolute offsets.
func (ctx *ExecutionContext) Text(start, end int) string {
	runes := []rune(ctx.Content())
	start, end = clampSpan(start, end, len(runes))
	return string(runes[start:end])
}

// Replace replaces the text between two absolute offsets. The cursor is
// left where it was, clamped to the new text.
func (ctx *ExecutionContext) Replace(start, end int, text string) {
	runes := []rune(ctx.Content())
	start, end = clampSpan(start, end, len(runes))
	if start == end && text == "" {
		return
	}
	var sb strings.Builder
	sb.WriteString(string(runes[:start]))
	sb.WriteString(text)
	sb.WriteString(string(runes[end:]))
	ctx.setLines(buffer.Split(sb.String()))
}

// ReplaceLines replaces lines first..last (inclusive) with repl. Removing
// every line leaves a single empty line.
func (ctx *ExecutionContext) ReplaceLines(first, last int, repl []string) {
	first = ctx.lines.ClampLine(first)
	last = ctx.lines.ClampLine(last)
	if last < first {
		first, last = last, first
	}
	out := make(buffer.Lines, 0, len(ctx.lines)-(last-first+1)+len(repl))
	out = append(out, ctx.lines[:first]...)
	out = append(out, repl...)
	out = append(out, ctx.lines[last+1:]...)
	ctx.setLines(out)
}

// InsertLines inserts lines before line at. at may equal the line count
// to append.
func (ctx *ExecutionContext) InsertLines(at int, lines []string) {
	if at < 0 {
		at = 0
	}
	if at > len(ctx.lines) {
		at = len(ctx.lines)
	}
	out := make(buffer.Lines, 0, len(ctx.lines)+len(lines))
	out = append(out, ctx.lines[:at]...)
	out = append(out, lines...)
	out = append(out, ctx.lines[at:]...)
	ctx.setLines(out)
}

// SetLine replaces the text of one line.
func (ctx *ExecutionContext) SetLine(n int, text string) {
	if n < 0 || n >= len(ctx.lines) || ctx.lines[n] == text {
		return
	}
	out := ctx.lines.Clone()
	out[n] = text
	ctx.setLines(out)
}

func (ctx *ExecutionContext) setLines(lines buffer.Lines) {
	if len(lines) == 0 {
		lines = buffer.Lines{""}
	}
	ctx.lines = lines
	ctx.dirty = true
	ctx.cursor = ctx.lines.Position(ctx.cursor.Line, ctx.cursor.Column)
}

// Indent returns one level of indentation.
func (ctx *ExecutionContext) Indent() string {
	if !ctx.ExpandTab {
		return "\t"
	}
	return strings.Repeat(" ", ctx.ShiftWidth)
}

func clampSpan(start, end, n int) (int, int) {
	if start > end {
		start, end = end, start
	}
	if start < 0 {
		start = 0
	}
	if end > n {
		end = n
	}
	if start > end {
		start = end
	}
	return start, end
}
