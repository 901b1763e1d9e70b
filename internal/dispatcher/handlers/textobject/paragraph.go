package textobject

import (
	"github.com/dshills/modalkit/internal/engine/buffer"
	"github.com/dshills/modalkit/internal/input/vim"
)

// paragraphObject implements ip and ap, linewise. Inner takes the run of
// lines sharing the cursor line's blankness, and each extra count the
// next run. Around adds the blank lines after the paragraph, or before it
// when it ends the file.
func paragraphObject(cur buffer.Position, lines buffer.Lines, mode vim.ObjectMode, count int) (buffer.Range, bool) {
	last := lines.LastLine()
	runEnd := func(n int) int {
		blank := lines.IsBlank(n)
		for n < last && lines.IsBlank(n+1) == blank {
			n++
		}
		return n
	}

	first := cur.Line
	for first > 0 && lines.IsBlank(first-1) == lines.IsBlank(cur.Line) {
		first--
	}
	end := runEnd(cur.Line)
	for i := 1; i < count && end < last; i++ {
		end = runEnd(end + 1)
	}

	if mode == vim.ObjectAround {
		if end < last {
			end = runEnd(end + 1)
		} else if !lines.IsBlank(cur.Line) {
			for first > 0 && lines.IsBlank(first-1) {
				first--
			}
		}
	}

	return buffer.Range{
		Start:    lines.Position(first, 0),
		End:      lines.Position(end, 0),
		Linewise: true,
	}, true
}
