package textobject

import (
	"github.com/dshills/modalkit/internal/dispatcher/handler"
	"github.com/dshills/modalkit/internal/dispatcher/handlers/cursor"
	"github.com/dshills/modalkit/internal/engine/buffer"
	"github.com/dshills/modalkit/internal/input/vim"
)

// wordObject implements iw, aw, iW and aW. Inner selects runs of one
// character class, whitespace included, so "2iw" on "foo bar" takes
// "foo ". Around adds the trailing whitespace, or the leading whitespace
// when the word ends the line.
func wordObject(bigWord bool) handler.TextObjectFunc {
	return func(cur buffer.Position, lines buffer.Lines, mode vim.ObjectMode, count int) (buffer.Range, bool) {
		runes := lines.Runes(cur.Line)
		if len(runes) == 0 {
			return buffer.Range{}, false
		}
		col := min(cur.Column, len(runes)-1)

		class := func(i int) int { return cursor.CharClass(runes[i], bigWord) }
		runEnd := func(i int) int {
			c := class(i)
			for i < len(runes) && class(i) == c {
				i++
			}
			return i
		}

		start := col
		for start > 0 && class(start-1) == class(col) {
			start--
		}
		end := runEnd(col)

		switch {
		case mode == vim.ObjectInner:
			for i := 1; i < count && end < len(runes); i++ {
				end = runEnd(end)
			}

		case class(col) == cursor.ClassBlank:
			// Leading whitespace belongs to each following word.
			for i := 0; i < count && end < len(runes); i++ {
				if i > 0 && class(end) == cursor.ClassBlank {
					end = runEnd(end)
				}
				if end < len(runes) {
					end = runEnd(end)
				}
			}

		default:
			for i := 1; i < count && end < len(runes); i++ {
				if class(end) == cursor.ClassBlank {
					end = runEnd(end)
				}
				if end < len(runes) {
					end = runEnd(end)
				}
			}
			if end < len(runes) && class(end) == cursor.ClassBlank {
				end = runEnd(end)
			} else {
				for start > 0 && class(start-1) == cursor.ClassBlank {
					start--
				}
			}
		}

		return buffer.Range{
			Start: lines.Position(cur.Line, start),
			End:   lines.Position(cur.Line, end),
		}, true
	}
}
