// Package handler defines the shapes of the four command registries and
// the Result every command produces.
package handler

import (
	"github.com/dshills/modalkit/internal/dispatcher/execctx"
	"github.com/dshills/modalkit/internal/engine/buffer"
	"github.com/dshills/modalkit/internal/input/vim"
)

// MotionMeta carries a motion's raw argument and resolution context.
type MotionMeta struct {
	// Char is the f/t/mark character; for ; and , the remembered one.
	Char rune

	// Pattern is the search pattern; for n and N the remembered one.
	Pattern string

	// Operator is true when the motion resolves an operator target.
	Operator bool

	// CountGiven is true when the user typed a count (G, gg and % differ).
	CountGiven bool

	// Repeat is true for ; and , so t and T skip an adjacent match.
	Repeat bool

	// LastFind is the f/F/t/T motion ; and , repeat.
	LastFind vim.MotionID

	// LastSearch is the / or ? motion n and N repeat.
	LastSearch vim.MotionID

	// Marks resolves ' and ` motions.
	Marks *execctx.Marks
}

// MotionFunc computes the range from the cursor to a motion's target.
// It returns false when the motion cannot move (no such character, no
// enclosing bracket, top of file).
type MotionFunc func(cur buffer.Position, lines buffer.Lines, count int, meta MotionMeta) (buffer.Range, bool)

// TextObjectFunc computes the range of a text object around the cursor,
// or false when there is none.
type TextObjectFunc func(cur buffer.Position, lines buffer.Lines, mode vim.ObjectMode, count int) (buffer.Range, bool)

// Operator applies an operator to a normalized range.
type Operator interface {
	Apply(ctx *execctx.ExecutionContext, r buffer.Range) error
}

// OperatorFunc adapts a function to Operator.
type OperatorFunc func(ctx *execctx.ExecutionContext, r buffer.Range) error

// Apply implements Operator.
func (f OperatorFunc) Apply(ctx *execctx.ExecutionContext, r buffer.Range) error {
	return f(ctx, r)
}

// Action is a self-contained command. It receives the effective count in
// ctx.Count and handles repetition itself.
type Action interface {
	Apply(ctx *execctx.ExecutionContext) error
}

// ActionFunc adapts a function to Action.
type ActionFunc func(ctx *execctx.ExecutionContext) error

// Apply implements Action.
func (f ActionFunc) Apply(ctx *execctx.ExecutionContext) error {
	return f(ctx)
}
