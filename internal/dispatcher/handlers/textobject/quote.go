package textobject

import (
	"github.com/dshills/modalkit/internal/dispatcher/handler"
	"github.com/dshills/modalkit/internal/engine/buffer"
	"github.com/dshills/modalkit/internal/input/vim"
)

// quoteObject implements i" a" i' a' i` and a`. Quotes pair up from the
// start of the line; a quote preceded by an odd number of backslashes is
// escaped and does not count. When the cursor is not inside a pair the
// first pair after it is used.
func quoteObject(quote rune) handler.TextObjectFunc {
	return func(cur buffer.Position, lines buffer.Lines, mode vim.ObjectMode, _ int) (buffer.Range, bool) {
		runes := lines.Runes(cur.Line)
		quotes := unescapedQuotes(runes, quote)

		open, close := -1, -1
		for i := 0; i+1 < len(quotes); i += 2 {
			if quotes[i+1] < cur.Column {
				continue
			}
			open, close = quotes[i], quotes[i+1]
			break
		}
		if open < 0 {
			return buffer.Range{}, false
		}

		start, end := open+1, close
		if mode == vim.ObjectAround {
			start, end = open, close+1
		}
		return buffer.Range{
			Start: lines.Position(cur.Line, start),
			End:   lines.Position(cur.Line, end),
		}, true
	}
}

// unescapedQuotes returns the columns of every unescaped quote on a line.
func unescapedQuotes(runes []rune, quote rune) []int {
	var cols []int
	for i, r := range runes {
		if r != quote {
			continue
		}
		slashes := 0
		for j := i - 1; j >= 0 && runes[j] == '\\'; j-- {
			slashes++
		}
		if slashes%2 == 0 {
			cols = append(cols, i)
		}
	}
	return cols
}
