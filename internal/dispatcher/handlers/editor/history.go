package editor

import (
	"fmt"

	"github.com/dshills/modalkit/internal/dispatcher/execctx"
)

// Undo implements u: step back count changes. The host applies undo
// itself, so the scratch copy is marked stale rather than committed.
func Undo(ctx *execctx.ExecutionContext) error {
	if ctx.History == nil {
		return execctx.ErrMissingHistory
	}
	return stepHistory(ctx, "undo", ctx.History.Undo)
}

// Redo implements <C-r>: step forward count changes.
func Redo(ctx *execctx.ExecutionContext) error {
	if ctx.History == nil {
		return execctx.ErrMissingHistory
	}
	return stepHistory(ctx, "redo", ctx.History.Redo)
}

// stepHistory runs step up to count times. Running out of history after
// the first step is not an error.
func stepHistory(ctx *execctx.ExecutionContext, name string, step func() error) error {
	for i := 0; i < ctx.GetCount(); i++ {
		if err := step(); err != nil {
			if i == 0 {
				return fmt.Errorf("%s: %w", name, err)
			}
			break
		}
		ctx.MarkExternal()
	}
	return nil
}
