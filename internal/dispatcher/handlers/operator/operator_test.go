package operator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/modalkit/internal/dispatcher/execctx"
	"github.com/dshills/modalkit/internal/engine/buffer"
	"github.com/dshills/modalkit/internal/input/vim"
)

func newContext(content string, line, col int) (*execctx.ExecutionContext, *vim.RegisterStore) {
	regs := vim.NewRegisterStore()
	ctx := execctx.New(buffer.Split(content), buffer.Position{Line: line, Column: col})
	ctx.Registers = regs
	ctx.Register = vim.UnnamedRegister
	return ctx, regs
}

func charRange(lines buffer.Lines, l1, c1, l2, c2 int, inclusive bool) buffer.Range {
	return buffer.Range{Start: lines.Position(l1, c1), End: lines.Position(l2, c2), Inclusive: inclusive}
}

func lineRange(lines buffer.Lines, first, last int) buffer.Range {
	return buffer.Range{Start: lines.Position(first, 0), End: lines.Position(last, 0), Linewise: true}
}

func TestEveryBuiltinOperatorRegistered(t *testing.T) {
	reg := DefaultRegistry()
	for _, spec := range vim.BuiltinOperators() {
		_, ok := reg.Lookup(spec.ID)
		assert.True(t, ok, "operator %s has no implementation", spec.Name)
	}
	assert.Len(t, reg.IDs(), len(vim.BuiltinOperators()))
}

func TestDeleteCharwise(t *testing.T) {
	ctx, regs := newContext("hello world", 0, 0)
	require.NoError(t, Delete(ctx, charRange(ctx.Lines(), 0, 0, 0, 5, false)))

	assert.Equal(t, " world", ctx.Content())
	assert.Equal(t, 0, ctx.Cursor().Column)
	assert.True(t, ctx.Dirty())

	reg, ok := regs.Get('"')
	require.True(t, ok)
	assert.Equal(t, "hello", reg.Content)
	assert.False(t, reg.Linewise)

	small, ok := regs.Get('-')
	require.True(t, ok)
	assert.Equal(t, "hello", small.Content)
}

func TestDeleteInclusive(t *testing.T) {
	ctx, _ := newContext("abcdef", 0, 1)
	require.NoError(t, Delete(ctx, charRange(ctx.Lines(), 0, 1, 0, 3, true)))
	assert.Equal(t, "aef", ctx.Content())
	assert.Equal(t, 1, ctx.Cursor().Column)
}

func TestDeleteLinewise(t *testing.T) {
	ctx, regs := newContext("one\n  two\nthree\nfour", 0, 0)
	require.NoError(t, Delete(ctx, lineRange(ctx.Lines(), 0, 0)))

	assert.Equal(t, "  two\nthree\nfour", ctx.Content())
	assert.Equal(t, buffer.Position{Line: 0, Column: 2, Offset: 2}, ctx.Cursor())

	reg, ok := regs.Get('1')
	require.True(t, ok)
	assert.Equal(t, "one", reg.Content)
	assert.True(t, reg.Linewise)

	require.NoError(t, Delete(ctx, lineRange(ctx.Lines(), 1, 2)))
	assert.Equal(t, "  two", ctx.Content())
	assert.Equal(t, 0, ctx.Cursor().Line, "cursor clamps to the new last line")
}

func TestDeleteEverything(t *testing.T) {
	ctx, _ := newContext("a\nb", 0, 0)
	require.NoError(t, Delete(ctx, lineRange(ctx.Lines(), 0, 1)))
	assert.Equal(t, buffer.Lines{""}, ctx.Lines())
}

func TestDeleteBlackHole(t *testing.T) {
	ctx, regs := newContext("abc", 0, 0)
	ctx.Register = '_'
	require.NoError(t, Delete(ctx, charRange(ctx.Lines(), 0, 0, 0, 1, false)))
	assert.Equal(t, "bc", ctx.Content())
	_, ok := regs.Get('"')
	assert.False(t, ok)
}

func TestChange(t *testing.T) {
	ctx, regs := newContext("foo bar baz", 0, 5)
	require.NoError(t, Change(ctx, charRange(ctx.Lines(), 0, 4, 0, 7, false)))

	assert.Equal(t, "foo  baz", ctx.Content())
	assert.Equal(t, 4, ctx.Cursor().Column)
	assert.Equal(t, execctx.ModeInsert, ctx.ModeChange)

	reg, _ := regs.Get('"')
	assert.Equal(t, "bar", reg.Content)
}

func TestChangeEmptyRange(t *testing.T) {
	ctx, _ := newContext("f()", 0, 1)
	require.NoError(t, Change(ctx, charRange(ctx.Lines(), 0, 2, 0, 2, false)))
	assert.Equal(t, "f()", ctx.Content())
	assert.Equal(t, 2, ctx.Cursor().Column)
	assert.Equal(t, execctx.ModeInsert, ctx.ModeChange)
}

func TestChangeLinewiseKeepsIndent(t *testing.T) {
	ctx, regs := newContext("a\n    b\n    c\nd", 1, 0)
	require.NoError(t, Change(ctx, lineRange(ctx.Lines(), 1, 2)))

	assert.Equal(t, "a\n    \nd", ctx.Content())
	assert.Equal(t, buffer.Position{Line: 1, Column: 4, Offset: 6}, ctx.Cursor())

	reg, _ := regs.Get('"')
	assert.Equal(t, "    b\n    c", reg.Content)
	assert.True(t, reg.Linewise)
}

func TestYank(t *testing.T) {
	ctx, regs := newContext("one\ntwo\nthree", 2, 1)
	require.NoError(t, Yank(ctx, lineRange(ctx.Lines(), 1, 2)))

	assert.False(t, ctx.Dirty())
	assert.Equal(t, 1, ctx.Cursor().Line)
	assert.Equal(t, 1, ctx.Cursor().Column)

	reg, ok := regs.Get('0')
	require.True(t, ok)
	assert.Equal(t, "two\nthree", reg.Content)
	assert.True(t, reg.Linewise)

	ctx, regs = newContext("hello world", 0, 8)
	ctx.Register = 'a'
	require.NoError(t, Yank(ctx, charRange(ctx.Lines(), 0, 6, 0, 8, false)))
	assert.Equal(t, 6, ctx.Cursor().Column)
	reg, _ = regs.Get('a')
	assert.Equal(t, "wo", reg.Content)
}

func TestIndentOutdent(t *testing.T) {
	ctx, _ := newContext("a\n\n  b\nc", 0, 0)
	ctx.ShiftWidth = 4
	require.NoError(t, Indent(ctx, lineRange(ctx.Lines(), 0, 2)))
	assert.Equal(t, "    a\n\n      b\nc", ctx.Content())
	assert.Equal(t, 4, ctx.Cursor().Column)

	require.NoError(t, Outdent(ctx, lineRange(ctx.Lines(), 0, 3)))
	assert.Equal(t, "a\n\n  b\nc", ctx.Content())

	require.NoError(t, Outdent(ctx, lineRange(ctx.Lines(), 2, 2)))
	assert.Equal(t, "a\n\nb\nc", ctx.Content(), "outdent stops at column 0")
}

func TestIndentWithTabs(t *testing.T) {
	ctx, _ := newContext("\tx", 0, 0)
	ctx.ExpandTab = false
	ctx.TabWidth = 8
	ctx.ShiftWidth = 4
	require.NoError(t, Indent(ctx, lineRange(ctx.Lines(), 0, 0)))
	assert.Equal(t, "\t    x", ctx.Content())
	require.NoError(t, Indent(ctx, lineRange(ctx.Lines(), 0, 0)))
	assert.Equal(t, "\t\tx", ctx.Content())
}

func TestIndentWidth(t *testing.T) {
	assert.Equal(t, 0, IndentWidth("", 8))
	assert.Equal(t, 8, IndentWidth("\t", 8))
	assert.Equal(t, 8, IndentWidth("  \t", 8))
	assert.Equal(t, 10, IndentWidth("\t  ", 8))
	assert.Equal(t, "\t  ", BuildIndent(10, 8, false))
	assert.Equal(t, "   ", BuildIndent(3, 8, true))
}

func TestCaseOperators(t *testing.T) {
	reg := DefaultRegistry()
	tests := []struct {
		name string
		id   vim.OperatorID
		r    func(buffer.Lines) buffer.Range
		want string
	}{
		{"gU charwise", vim.OpUpper, func(l buffer.Lines) buffer.Range { return charRange(l, 0, 0, 0, 3, false) }, "HELlo World\nxY"},
		{"gu inclusive", vim.OpLower, func(l buffer.Lines) buffer.Range { return charRange(l, 0, 6, 0, 6, true) }, "Hello world\nxY"},
		{"g~ linewise", vim.OpToggleCase, func(l buffer.Lines) buffer.Range { return lineRange(l, 0, 1) }, "hELLO wORLD\nXy"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _ := newContext("Hello World\nxY", 0, 0)
			op, ok := reg.Lookup(tt.id)
			require.True(t, ok)
			require.NoError(t, op.Apply(ctx, tt.r(ctx.Lines())))
			assert.Equal(t, tt.want, ctx.Content())
		})
	}
}
