package cursor

import (
	"github.com/dshills/modalkit/internal/dispatcher/handler"
	"github.com/dshills/modalkit/internal/engine/buffer"
)

func exclusive(cur, end buffer.Position) buffer.Range {
	return buffer.Range{Start: cur, End: end}
}

func inclusive(cur, end buffer.Position) buffer.Range {
	return buffer.Range{Start: cur, End: end, Inclusive: true}
}

func linewise(cur, end buffer.Position) buffer.Range {
	return buffer.Range{Start: cur, End: end, Linewise: true}
}

// targetLine is the line count-1 lines below the cursor, clamped.
func targetLine(cur buffer.Position, lines buffer.Lines, count int) int {
	return lines.ClampLine(cur.Line + count - 1)
}

func moveLeft(cur buffer.Position, lines buffer.Lines, count int, _ handler.MotionMeta) (buffer.Range, bool) {
	if cur.Column == 0 {
		return buffer.Range{}, false
	}
	col := lines.PrevCluster(cur.Line, cur.Column, count)
	return exclusive(cur, lines.Position(cur.Line, col)), true
}

// moveRight stops on the last character, or just past it when resolving
// an operator target so "dl" at the end of a line still deletes.
func moveRight(cur buffer.Position, lines buffer.Lines, count int, meta handler.MotionMeta) (buffer.Range, bool) {
	limit := lines.LastCol(cur.Line)
	if meta.Operator {
		limit = lines.RuneLen(cur.Line)
	}
	if cur.Column >= limit {
		return buffer.Range{}, false
	}
	col := lines.NextCluster(cur.Line, cur.Column, count)
	if col > limit {
		col = limit
	}
	return exclusive(cur, lines.Position(cur.Line, col)), true
}

func moveDown(cur buffer.Position, lines buffer.Lines, count int, _ handler.MotionMeta) (buffer.Range, bool) {
	line := lines.ClampLine(cur.Line + count)
	if line == cur.Line {
		return buffer.Range{}, false
	}
	return linewise(cur, lines.Position(line, min(cur.Column, lines.LastCol(line)))), true
}

func moveUp(cur buffer.Position, lines buffer.Lines, count int, _ handler.MotionMeta) (buffer.Range, bool) {
	line := lines.ClampLine(cur.Line - count)
	if line == cur.Line {
		return buffer.Range{}, false
	}
	return linewise(cur, lines.Position(line, min(cur.Column, lines.LastCol(line)))), true
}

func lineStart(cur buffer.Position, lines buffer.Lines, _ int, _ handler.MotionMeta) (buffer.Range, bool) {
	return exclusive(cur, lines.Position(cur.Line, 0)), true
}

func firstNonBlank(cur buffer.Position, lines buffer.Lines, count int, _ handler.MotionMeta) (buffer.Range, bool) {
	line := targetLine(cur, lines, count)
	return exclusive(cur, lines.Position(line, lines.FirstNonBlank(line))), true
}

// lineEnd is $: the last character of the count-th line, column 0 on an
// empty line.
func lineEnd(cur buffer.Position, lines buffer.Lines, count int, _ handler.MotionMeta) (buffer.Range, bool) {
	line := targetLine(cur, lines, count)
	return inclusive(cur, lines.Position(line, lines.LastCol(line))), true
}

// countLine is _: the first non-blank of the count-th line, linewise. The
// doubled operators (dd, yy, >>) resolve through it.
func countLine(cur buffer.Position, lines buffer.Lines, count int, _ handler.MotionMeta) (buffer.Range, bool) {
	line := targetLine(cur, lines, count)
	return linewise(cur, lines.Position(line, lines.FirstNonBlank(line))), true
}

func lastNonBlank(cur buffer.Position, lines buffer.Lines, count int, _ handler.MotionMeta) (buffer.Range, bool) {
	line := targetLine(cur, lines, count)
	runes := lines.Runes(line)
	col := len(runes) - 1
	for col > 0 && (runes[col] == ' ' || runes[col] == '\t') {
		col--
	}
	if col < 0 {
		col = 0
	}
	return inclusive(cur, lines.Position(line, col)), true
}

// fileStart is gg: line count, or the first line without a count.
func fileStart(cur buffer.Position, lines buffer.Lines, count int, meta handler.MotionMeta) (buffer.Range, bool) {
	line := 0
	if meta.CountGiven {
		line = lines.ClampLine(count - 1)
	}
	return linewise(cur, lines.Position(line, lines.FirstNonBlank(line))), true
}

// fileEnd is G: line count, or the last line without a count.
func fileEnd(cur buffer.Position, lines buffer.Lines, count int, meta handler.MotionMeta) (buffer.Range, bool) {
	line := lines.LastLine()
	if meta.CountGiven {
		line = lines.ClampLine(count - 1)
	}
	return linewise(cur, lines.Position(line, lines.FirstNonBlank(line))), true
}

// stay backs zz, zt and zb: the cursor does not move and the executor
// passes a scroll hint to the host.
func stay(cur buffer.Position, _ buffer.Lines, _ int, _ handler.MotionMeta) (buffer.Range, bool) {
	return exclusive(cur, cur), true
}
