package dispatcher

import (
	"strings"
	"unicode/utf8"

	"github.com/dshills/modalkit/internal/dispatcher/execctx"
	"github.com/dshills/modalkit/internal/dispatcher/handler"
	"github.com/dshills/modalkit/internal/input/vim"
)

// insertSession tracks the text typed between entering insert mode and
// leaving it.
type insertSession struct {
	// record attaches the typed text to the repeat entry on exit.
	record bool

	// times is how often the typed text ends up in the document.
	times int

	// openLine repeats the text on new lines (o and O).
	openLine bool

	text []rune
}

// insertShape reports how a command that enters insert mode repeats the
// text typed after it.
func insertShape(cmd vim.Normalized) (times int, openLine bool) {
	a, ok := cmd.Command.(vim.ActionCommand)
	if !ok {
		return 1, false
	}
	switch a.Action {
	case vim.ActInsert, vim.ActAppend, vim.ActAppendEnd, vim.ActInsertStart:
		return max(cmd.Count, 1), false
	case vim.ActOpenBelow, vim.ActOpenAbove:
		return max(cmd.Count, 1), true
	}
	return 1, false
}

func (e *Executor) beginInsert(cmd vim.Normalized) {
	times, openLine := insertShape(cmd)
	e.insert = &insertSession{
		record:   cmd.Repeatable && !e.replaying,
		times:    times,
		openLine: openLine,
	}
	if g, ok := e.editor.(execctx.Grouper); ok {
		g.BeginGroup()
	}
}

func (e *Executor) endInsert() {
	e.insert = nil
	if g, ok := e.editor.(execctx.Grouper); ok {
		g.EndGroup()
	}
}

// Inserting reports whether an insert session is open.
func (e *Executor) Inserting() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.insert != nil
}

// InsertText types text at the cursor. A session is opened if the mode
// was entered without a command; its text is not recorded for repeat.
func (e *Executor) InsertText(text string) handler.Result {
	if !e.enter() {
		return handler.Error(ErrReentrant)
	}
	defer e.setState(StateIdle)
	if e.editor == nil {
		return handler.Error(ErrEditorNotSet)
	}
	if text == "" {
		return handler.NoOp()
	}
	if e.insert == nil {
		e.beginInsert(vim.Normalized{})
	}

	ctx := execctx.New(e.editor.Lines(), e.editor.Cursor())
	off := ctx.Cursor().Offset
	ctx.Replace(off, off, text)
	ctx.SetCursorOffset(off + utf8.RuneCountInString(text))
	e.setState(StateApplying)
	if err := e.write(ctx.Content(), ctx.Cursor()); err != nil {
		return handler.Error(err)
	}
	e.insert.text = append(e.insert.text, []rune(text)...)

	res := handler.Success().WithCursor(ctx.Cursor())
	res.Edited = true
	return res
}

// Newline splits the line at the cursor.
func (e *Executor) Newline() handler.Result {
	return e.InsertText("\n")
}

// Backspace deletes the character cluster before the cursor, joining
// with the previous line at column 0.
func (e *Executor) Backspace() handler.Result {
	if !e.enter() {
		return handler.Error(ErrReentrant)
	}
	defer e.setState(StateIdle)
	if e.editor == nil {
		return handler.Error(ErrEditorNotSet)
	}
	if e.insert == nil {
		return handler.Failed(ErrNotInserting)
	}

	ctx := execctx.New(e.editor.Lines(), e.editor.Cursor())
	cur := ctx.Cursor()
	var start int
	switch {
	case cur.Column > 0:
		lines := ctx.Lines()
		start = cur.Offset - (cur.Column - lines.PrevCluster(cur.Line, cur.Column, 1))
	case cur.Line > 0:
		start = cur.Offset - 1
	default:
		return handler.NoOp()
	}
	removed := cur.Offset - start
	ctx.Replace(start, cur.Offset, "")
	ctx.SetCursorOffset(start)
	e.setState(StateApplying)
	if err := e.write(ctx.Content(), ctx.Cursor()); err != nil {
		return handler.Error(err)
	}

	typed := e.insert.text
	e.insert.text = typed[:max(len(typed)-removed, 0)]

	res := handler.Success().WithCursor(ctx.Cursor())
	res.Edited = true
	return res
}

// ExitInsert closes the insert session: the typed text is repeated for
// the entering command's count, the cursor steps back onto the last
// inserted character and the mode returns to normal.
func (e *Executor) ExitInsert() handler.Result {
	if !e.enter() {
		return handler.Error(ErrReentrant)
	}
	defer e.setState(StateIdle)
	s := e.insert
	if s == nil || e.editor == nil {
		return handler.NoOp()
	}
	defer e.endInsert()

	text := string(s.text)
	ctx := execctx.New(e.editor.Lines(), e.editor.Cursor())
	if s.times > 1 && text != "" {
		off := ctx.Cursor().Offset
		var extra string
		if s.openLine {
			extra = strings.Repeat("\n"+text, s.times-1)
		} else {
			extra = strings.Repeat(text, s.times-1)
		}
		ctx.Replace(off, off, extra)
		ctx.SetCursorOffset(off + utf8.RuneCountInString(extra))
	}
	stepBack(ctx)

	e.setState(StateApplying)
	cur := ctx.Cursor()
	if ctx.Dirty() {
		if err := e.write(ctx.Content(), cur); err != nil {
			return handler.Error(err)
		}
	} else {
		e.editor.SetCursor(cur.Line, cur.Column)
	}

	if e.registers != nil {
		e.registers.SetLastInserted(text)
	}
	if s.record {
		e.repeat.AttachInserted(text)
	}
	if e.modes != nil {
		if err := e.modes.SetMode(execctx.ModeNormal); err != nil {
			e.logger.Warn("mode change failed", "mode", execctx.ModeNormal, "error", err)
		}
	}

	res := handler.Success().WithCursor(cur).WithModeChange(execctx.ModeNormal)
	res.Edited = ctx.Dirty()
	return res
}

// typeInto inserts text at the scratch cursor the way an insert session
// would have, then steps back as leaving insert mode does.
func typeInto(ctx *execctx.ExecutionContext, text string, times int, openLine bool) {
	if text != "" {
		full := text
		if times > 1 {
			if openLine {
				full += strings.Repeat("\n"+text, times-1)
			} else {
				full = strings.Repeat(text, times)
			}
		}
		off := ctx.Cursor().Offset
		ctx.Replace(off, off, full)
		ctx.SetCursorOffset(off + utf8.RuneCountInString(full))
	}
	stepBack(ctx)
}

// stepBack moves the cursor one cluster left, staying on its line.
func stepBack(ctx *execctx.ExecutionContext) {
	cur := ctx.Cursor()
	if cur.Column == 0 {
		return
	}
	ctx.SetCursor(cur.Line, ctx.Lines().PrevCluster(cur.Line, cur.Column, 1))
}
