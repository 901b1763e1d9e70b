package cursor

import (
	"github.com/dshills/modalkit/internal/dispatcher/handler"
	"github.com/dshills/modalkit/internal/engine/buffer"
)

// markLine is 'x: the first non-blank of the mark's line, linewise.
func markLine(cur buffer.Position, lines buffer.Lines, _ int, meta handler.MotionMeta) (buffer.Range, bool) {
	pos, ok := meta.Marks.Get(meta.Char, lines)
	if !ok {
		return buffer.Range{}, false
	}
	return linewise(cur, lines.Position(pos.Line, lines.FirstNonBlank(pos.Line))), true
}

// markExact is `x: the mark's exact position, exclusive.
func markExact(cur buffer.Position, lines buffer.Lines, _ int, meta handler.MotionMeta) (buffer.Range, bool) {
	pos, ok := meta.Marks.Get(meta.Char, lines)
	if !ok {
		return buffer.Range{}, false
	}
	return exclusive(cur, pos), true
}
