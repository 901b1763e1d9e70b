package editor

import (
	"strings"
	"unicode/utf8"

	"github.com/dshills/modalkit/internal/dispatcher/execctx"
)

// PasteAfter implements p: linewise text goes below the cursor line,
// charwise text after the cursor character.
func PasteAfter(ctx *execctx.ExecutionContext) error {
	return paste(ctx, true)
}

// PasteBefore implements P: linewise text goes above the cursor line,
// charwise text before the cursor character.
func PasteBefore(ctx *execctx.ExecutionContext) error {
	return paste(ctx, false)
}

func paste(ctx *execctx.ExecutionContext, after bool) error {
	if ctx.Registers == nil {
		return execctx.ErrMissingRegisters
	}
	reg, ok := ctx.Registers.Get(ctx.Register)
	if !ok || reg.Content == "" {
		return execctx.ErrEmptyRegister
	}
	count := ctx.GetCount()
	cur := ctx.Cursor()

	if reg.Linewise {
		block := strings.Split(reg.Content, "\n")
		lines := make([]string, 0, len(block)*count)
		for i := 0; i < count; i++ {
			lines = append(lines, block...)
		}
		at := cur.Line
		if after {
			at++
		}
		ctx.InsertLines(at, lines)
		ctx.SetCursor(at, ctx.Lines().FirstNonBlank(at))
		return nil
	}

	text := strings.Repeat(reg.Content, count)
	off := cur.Offset
	if after && ctx.Lines().RuneLen(cur.Line) > 0 {
		off++
	}
	ctx.Replace(off, off, text)
	if strings.Contains(text, "\n") {
		ctx.SetCursorOffset(off)
	} else {
		ctx.SetCursorOffset(off + utf8.RuneCountInString(text) - 1)
	}
	return nil
}
