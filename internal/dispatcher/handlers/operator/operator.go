package operator

import (
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/dshills/modalkit/internal/dispatcher/execctx"
	"github.com/dshills/modalkit/internal/dispatcher/handler"
	"github.com/dshills/modalkit/internal/engine/buffer"
	"github.com/dshills/modalkit/internal/input/vim"
)

// Registry maps operator IDs to their implementations.
type Registry struct {
	mu        sync.RWMutex
	operators map[vim.OperatorID]handler.Operator
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{operators: make(map[vim.OperatorID]handler.Operator)}
}

// DefaultRegistry creates a registry with every built-in operator.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(vim.OpDelete, handler.OperatorFunc(Delete))
	r.Register(vim.OpChange, handler.OperatorFunc(Change))
	r.Register(vim.OpYank, handler.OperatorFunc(Yank))
	r.Register(vim.OpIndent, handler.OperatorFunc(Indent))
	r.Register(vim.OpOutdent, handler.OperatorFunc(Outdent))
	r.Register(vim.OpLower, caseOperator(unicode.ToLower))
	r.Register(vim.OpUpper, caseOperator(unicode.ToUpper))
	r.Register(vim.OpToggleCase, caseOperator(ToggleRune))
	return r
}

// Register binds an implementation to an operator ID.
func (r *Registry) Register(id vim.OperatorID, op handler.Operator) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.operators[id] = op
}

// Lookup returns the implementation of an operator.
func (r *Registry) Lookup(id vim.OperatorID) (handler.Operator, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	op, ok := r.operators[id]
	return op, ok
}

// IDs returns every registered operator ID in ascending order.
func (r *Registry) IDs() []vim.OperatorID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]vim.OperatorID, 0, len(r.operators))
	for id := range r.operators {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// LinewiseText returns lines first..last as linewise register content.
// The last line carries no trailing newline; Linewise marks the kind.
func LinewiseText(lines buffer.Lines, first, last int) string {
	return strings.Join(lines[first:last+1], "\n")
}

// Delete removes the range and records it in the register.
func Delete(ctx *execctx.ExecutionContext, r buffer.Range) error {
	lines := ctx.Lines()
	if r.Linewise {
		first, last := r.LineSpan()
		recordDelete(ctx, vim.Register{Content: LinewiseText(lines, first, last), Linewise: true})
		ctx.ReplaceLines(first, last, nil)
		line := ctx.Lines().ClampLine(first)
		ctx.SetCursor(line, ctx.Lines().FirstNonBlank(line))
		return nil
	}

	start, end := r.Span(lines)
	if start == end {
		return nil
	}
	recordDelete(ctx, vim.Register{Content: ctx.Text(start, end)})
	ctx.Replace(start, end, "")
	ctx.SetCursorOffset(start)
	return nil
}

// Change removes the range and enters insert mode at its start. A
// linewise change keeps the indentation of the first line.
func Change(ctx *execctx.ExecutionContext, r buffer.Range) error {
	lines := ctx.Lines()
	ctx.ModeChange = execctx.ModeInsert

	if r.Linewise {
		first, last := r.LineSpan()
		indent := lines.Indent(first)
		recordDelete(ctx, vim.Register{Content: LinewiseText(lines, first, last), Linewise: true})
		ctx.ReplaceLines(first, last, []string{indent})
		ctx.SetCursor(first, len([]rune(indent)))
		return nil
	}

	start, end := r.Span(lines)
	if start < end {
		recordDelete(ctx, vim.Register{Content: ctx.Text(start, end)})
		ctx.Replace(start, end, "")
	}
	ctx.SetCursorOffset(start)
	return nil
}

// Yank copies the range into the register. A charwise yank moves the
// cursor to the start of the range; a linewise one only moves it up.
func Yank(ctx *execctx.ExecutionContext, r buffer.Range) error {
	lines := ctx.Lines()
	if r.Linewise {
		first, last := r.LineSpan()
		recordYank(ctx, vim.Register{Content: LinewiseText(lines, first, last), Linewise: true})
		if cur := ctx.Cursor(); cur.Line > first {
			ctx.SetCursor(first, cur.Column)
		}
		return nil
	}

	start, end := r.Span(lines)
	recordYank(ctx, vim.Register{Content: ctx.Text(start, end)})
	ctx.SetCursorOffset(start)
	return nil
}

func recordDelete(ctx *execctx.ExecutionContext, reg vim.Register) {
	if ctx.Registers != nil {
		ctx.Registers.Delete(ctx.Register, reg)
	}
}

func recordYank(ctx *execctx.ExecutionContext, reg vim.Register) {
	if ctx.Registers != nil {
		ctx.Registers.Yank(ctx.Register, reg)
	}
}

// ToggleRune swaps the case of a letter.
func ToggleRune(r rune) rune {
	if unicode.IsUpper(r) {
		return unicode.ToLower(r)
	}
	return unicode.ToUpper(r)
}

// caseOperator maps every rune in the range through fn and leaves the
// cursor at the start of the range.
func caseOperator(fn func(rune) rune) handler.Operator {
	return handler.OperatorFunc(func(ctx *execctx.ExecutionContext, r buffer.Range) error {
		lines := ctx.Lines()
		if r.Linewise {
			first, last := r.LineSpan()
			for n := first; n <= last; n++ {
				ctx.SetLine(n, strings.Map(fn, lines[n]))
			}
			cur := ctx.Cursor()
			ctx.SetCursor(first, min(cur.Column, ctx.Lines().LastCol(first)))
			return nil
		}

		start, end := r.Span(lines)
		if text := ctx.Text(start, end); text != "" {
			ctx.Replace(start, end, strings.Map(fn, text))
		}
		ctx.SetCursorOffset(start)
		return nil
	})
}
