package textobject

import (
	"github.com/dshills/modalkit/internal/dispatcher/handler"
	"github.com/dshills/modalkit/internal/dispatcher/handlers/cursor"
	"github.com/dshills/modalkit/internal/engine/buffer"
	"github.com/dshills/modalkit/internal/input/vim"
)

// bracketObject implements i( a( i{ a{ i[ a[ i< and a<. The count selects
// the count-th enclosing block. A cursor on a bracket belongs to the
// block that bracket delimits.
//
// When the open bracket ends its line and the close bracket starts one
// (after indentation), inner covers only the lines between them, so
// "di{" leaves the braces on their own lines.
func bracketObject(open, close rune) handler.TextObjectFunc {
	return func(cur buffer.Position, lines buffer.Lines, mode vim.ObjectMode, count int) (buffer.Range, bool) {
		text := []rune(lines.Content())
		off := cur.Offset
		if off >= len(text) {
			return buffer.Range{}, false
		}

		from := off
		switch text[off] {
		case open:
			count--
		case close:
			o, ok := cursor.FindUnmatched(text, off, open, close, false, 1)
			if !ok {
				return buffer.Range{}, false
			}
			from = o
			count--
		}
		openOff := from
		if count > 0 {
			o, ok := cursor.FindUnmatched(text, from, open, close, false, count)
			if !ok {
				return buffer.Range{}, false
			}
			openOff = o
		}
		closeOff, ok := cursor.FindUnmatched(text, openOff, open, close, true, 1)
		if !ok {
			return buffer.Range{}, false
		}

		if mode == vim.ObjectAround {
			return buffer.Range{
				Start: lines.PositionAt(openOff),
				End:   lines.PositionAt(closeOff + 1),
			}, true
		}

		start, end := openOff+1, closeOff
		if start < end && text[start] == '\n' {
			closePos := lines.PositionAt(closeOff)
			lineStart := closeOff - closePos.Column
			if lineStart > start && onlyBlank(text[lineStart:closeOff]) {
				start++
				end = lineStart
			}
		}
		return buffer.Range{
			Start: lines.PositionAt(start),
			End:   lines.PositionAt(end),
		}, true
	}
}

func onlyBlank(runes []rune) bool {
	for _, r := range runes {
		if r != ' ' && r != '\t' {
			return false
		}
	}
	return true
}
