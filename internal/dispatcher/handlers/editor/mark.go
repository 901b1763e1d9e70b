package editor

import "github.com/dshills/modalkit/internal/dispatcher/execctx"

// SetMark implements m{a-z}.
func SetMark(ctx *execctx.ExecutionContext) error {
	if ctx.Marks == nil {
		return execctx.ErrInvalidMark
	}
	return ctx.Marks.Set(ctx.Char, ctx.Cursor())
}
