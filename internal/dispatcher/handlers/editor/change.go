package editor

import (
	"strings"
	"unicode"

	"github.com/dshills/modalkit/internal/dispatcher/execctx"
	"github.com/dshills/modalkit/internal/dispatcher/handlers/operator"
	"github.com/dshills/modalkit/internal/input/vim"
)

// ReplaceChar implements r{c}: the next count characters become c. It
// fails when fewer than count characters remain on the line.
func ReplaceChar(ctx *execctx.ExecutionContext) error {
	if ctx.Char == 0 {
		return execctx.ErrNotFound
	}
	cur := ctx.Cursor()
	lines := ctx.Lines()
	starts := lines.ClusterStarts(cur.Line)
	idx := clusterIndex(starts, cur.Column)
	count := ctx.GetCount()
	if idx+count >= len(starts) {
		return execctx.ErrOutOfRange
	}

	start := cur.Offset - cur.Column
	ctx.Replace(start+starts[idx], start+starts[idx+count], strings.Repeat(string(ctx.Char), count))
	ctx.SetCursor(cur.Line, starts[idx]+count-1)
	return nil
}

// DeleteChar implements x: delete count characters under and after the
// cursor, stopping at the end of the line.
func DeleteChar(ctx *execctx.ExecutionContext) error {
	cur := ctx.Cursor()
	lines := ctx.Lines()
	if lines.RuneLen(cur.Line) == 0 {
		return nil
	}
	end := lines.NextCluster(cur.Line, cur.Column, ctx.GetCount())
	deleteColumns(ctx, cur.Line, cur.Column, end)
	ctx.SetCursor(cur.Line, cur.Column)
	return nil
}

// DeleteCharBefore implements X: delete count characters before the
// cursor, stopping at the start of the line.
func DeleteCharBefore(ctx *execctx.ExecutionContext) error {
	cur := ctx.Cursor()
	if cur.Column == 0 {
		return nil
	}
	start := ctx.Lines().PrevCluster(cur.Line, cur.Column, ctx.GetCount())
	deleteColumns(ctx, cur.Line, start, cur.Column)
	ctx.SetCursor(cur.Line, start)
	return nil
}

// deleteColumns removes [from, to) of a line into the register.
func deleteColumns(ctx *execctx.ExecutionContext, line, from, to int) {
	base := ctx.Lines().Offset(line, 0)
	text := ctx.Text(base+from, base+to)
	if text == "" {
		return
	}
	if ctx.Registers != nil {
		ctx.Registers.Delete(ctx.Register, vim.Register{Content: text})
	}
	ctx.Replace(base+from, base+to, "")
}

// Join implements J: join count lines (at least two) into one, separated
// by single spaces with the leading whitespace of joined lines removed.
func Join(ctx *execctx.ExecutionContext) error {
	cur := ctx.Cursor()
	lines := ctx.Lines()
	if cur.Line >= lines.LastLine() {
		return execctx.ErrOutOfRange
	}
	last := lines.ClampLine(cur.Line + max(ctx.GetCount(), 2) - 1)

	joined := []rune(lines[cur.Line])
	col := 0
	for n := cur.Line + 1; n <= last; n++ {
		next := strings.TrimLeftFunc(lines[n], unicode.IsSpace)
		joined = []rune(strings.TrimRightFunc(string(joined), isBlank))
		col = len(joined)
		if len(joined) > 0 && next != "" && !strings.HasPrefix(next, ")") {
			joined = append(joined, ' ')
		}
		joined = append(joined, []rune(next)...)
	}

	ctx.ReplaceLines(cur.Line, last, []string{string(joined)})
	ctx.SetCursor(cur.Line, col)
	return nil
}

func isBlank(r rune) bool {
	return r == ' ' || r == '\t'
}

// ToggleCase implements ~: swap the case of count characters and move
// past them.
func ToggleCase(ctx *execctx.ExecutionContext) error {
	cur := ctx.Cursor()
	lines := ctx.Lines()
	if lines.RuneLen(cur.Line) == 0 {
		return nil
	}
	end := lines.NextCluster(cur.Line, cur.Column, ctx.GetCount())
	base := cur.Offset - cur.Column
	text := ctx.Text(cur.Offset, base+end)
	ctx.Replace(cur.Offset, base+end, strings.Map(operator.ToggleRune, text))
	ctx.SetCursor(cur.Line, end)
	return nil
}

// clusterIndex returns the index of the cluster containing col.
func clusterIndex(starts []int, col int) int {
	for i := len(starts) - 1; i >= 0; i-- {
		if starts[i] <= col {
			return i
		}
	}
	return 0
}
