package mode

import (
	"github.com/dshills/modalkit/internal/dispatcher/execctx"
	"github.com/dshills/modalkit/internal/input/vim"
)

// Insert implements i.
func Insert(ctx *execctx.ExecutionContext) error {
	ctx.ModeChange = execctx.ModeInsert
	return nil
}

// Append implements a: insert after the cursor character.
func Append(ctx *execctx.ExecutionContext) error {
	cur := ctx.Cursor()
	if ctx.Lines().RuneLen(cur.Line) > 0 {
		ctx.SetCursor(cur.Line, ctx.Lines().NextCluster(cur.Line, cur.Column, 1))
	}
	ctx.ModeChange = execctx.ModeInsert
	return nil
}

// AppendEnd implements A: insert at the end of the line.
func AppendEnd(ctx *execctx.ExecutionContext) error {
	cur := ctx.Cursor()
	ctx.SetCursor(cur.Line, ctx.Lines().RuneLen(cur.Line))
	ctx.ModeChange = execctx.ModeInsert
	return nil
}

// InsertStart implements I: insert before the first non-blank.
func InsertStart(ctx *execctx.ExecutionContext) error {
	cur := ctx.Cursor()
	ctx.SetCursor(cur.Line, ctx.Lines().FirstNonBlank(cur.Line))
	ctx.ModeChange = execctx.ModeInsert
	return nil
}

// OpenBelow implements o: open an empty line below the cursor line.
func OpenBelow(ctx *execctx.ExecutionContext) error {
	line := ctx.Cursor().Line + 1
	ctx.InsertLines(line, []string{""})
	ctx.SetCursor(line, 0)
	ctx.ModeChange = execctx.ModeInsert
	return nil
}

// OpenAbove implements O: open an empty line above the cursor line.
func OpenAbove(ctx *execctx.ExecutionContext) error {
	line := ctx.Cursor().Line
	ctx.InsertLines(line, []string{""})
	ctx.SetCursor(line, 0)
	ctx.ModeChange = execctx.ModeInsert
	return nil
}

// Substitute implements s: delete count characters into the register
// and insert in their place.
func Substitute(ctx *execctx.ExecutionContext) error {
	cur := ctx.Cursor()
	lines := ctx.Lines()
	if lines.RuneLen(cur.Line) > 0 {
		end := lines.NextCluster(cur.Line, cur.Column, ctx.GetCount())
		start := cur.Offset
		stop := cur.Offset - cur.Column + end
		if text := ctx.Text(start, stop); text != "" {
			if ctx.Registers != nil {
				ctx.Registers.Delete(ctx.Register, vim.Register{Content: text})
			}
			ctx.Replace(start, stop, "")
		}
		ctx.SetCursor(cur.Line, cur.Column)
	}
	ctx.ModeChange = execctx.ModeInsert
	return nil
}
