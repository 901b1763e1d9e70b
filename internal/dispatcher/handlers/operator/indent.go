package operator

import (
	"strings"

	"github.com/dshills/modalkit/internal/dispatcher/execctx"
	"github.com/dshills/modalkit/internal/engine/buffer"
)

// Indent shifts every line the range touches right by one shift width.
// Empty lines are left alone.
func Indent(ctx *execctx.ExecutionContext, r buffer.Range) error {
	return shift(ctx, r, ctx.ShiftWidth)
}

// Outdent shifts every line the range touches left by one shift width,
// stopping at column 0.
func Outdent(ctx *execctx.ExecutionContext, r buffer.Range) error {
	return shift(ctx, r, -ctx.ShiftWidth)
}

func shift(ctx *execctx.ExecutionContext, r buffer.Range, delta int) error {
	first, last := r.LineSpan()
	lines := ctx.Lines()
	for n := first; n <= last; n++ {
		line := lines[n]
		if line == "" {
			continue
		}
		indent := lines.Indent(n)
		width := max(IndentWidth(indent, ctx.TabWidth)+delta, 0)
		ctx.SetLine(n, BuildIndent(width, ctx.TabWidth, ctx.ExpandTab)+line[len(indent):])
	}
	ctx.SetCursor(first, ctx.Lines().FirstNonBlank(first))
	return nil
}

// IndentWidth returns the display width of leading whitespace, with tabs
// advancing to the next multiple of tabWidth.
func IndentWidth(indent string, tabWidth int) int {
	if tabWidth < 1 {
		tabWidth = 1
	}
	width := 0
	for _, r := range indent {
		if r == '\t' {
			width += tabWidth - width%tabWidth
			continue
		}
		width++
	}
	return width
}

// BuildIndent returns whitespace of the given display width, using tabs
// where possible unless expandTab is set.
func BuildIndent(width, tabWidth int, expandTab bool) string {
	if expandTab || tabWidth < 1 {
		return strings.Repeat(" ", width)
	}
	return strings.Repeat("\t", width/tabWidth) + strings.Repeat(" ", width%tabWidth)
}
