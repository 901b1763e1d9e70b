package cursor

import (
	"github.com/dshills/modalkit/internal/dispatcher/handler"
	"github.com/dshills/modalkit/internal/engine/buffer"
)

// MatchingBracketFor returns the partner of a bracket and whether r opens.
func MatchingBracketFor(r rune) (match rune, open bool, ok bool) {
	switch r {
	case '(':
		return ')', true, true
	case ')':
		return '(', false, true
	case '[':
		return ']', true, true
	case ']':
		return '[', false, true
	case '{':
		return '}', true, true
	case '}':
		return '{', false, true
	}
	return 0, false, false
}

// FindMatchingBracket finds the partner of the bracket at off, skipping
// nested pairs of the same kind.
func FindMatchingBracket(text []rune, off int) (int, bool) {
	if off < 0 || off >= len(text) {
		return 0, false
	}
	bracket := text[off]
	match, open, ok := MatchingBracketFor(bracket)
	if !ok {
		return 0, false
	}
	depth := 0
	if open {
		for i := off + 1; i < len(text); i++ {
			switch text[i] {
			case bracket:
				depth++
			case match:
				if depth == 0 {
					return i, true
				}
				depth--
			}
		}
		return 0, false
	}
	for i := off - 1; i >= 0; i-- {
		switch text[i] {
		case bracket:
			depth++
		case match:
			if depth == 0 {
				return i, true
			}
			depth--
		}
	}
	return 0, false
}

// FindUnmatched finds the count-th unmatched open (backward) or close
// (forward) delimiter around off, skipping balanced pairs.
func FindUnmatched(text []rune, off int, open, close rune, forward bool, count int) (int, bool) {
	depth := 0
	if forward {
		for i := off + 1; i < len(text); i++ {
			switch text[i] {
			case open:
				depth++
			case close:
				if depth > 0 {
					depth--
					continue
				}
				if count--; count == 0 {
					return i, true
				}
			}
		}
		return 0, false
	}
	for i := off - 1; i >= 0; i-- {
		switch text[i] {
		case close:
			depth++
		case open:
			if depth > 0 {
				depth--
				continue
			}
			if count--; count == 0 {
				return i, true
			}
		}
	}
	return 0, false
}

// matchPair is %: jump from the first bracket at or after the cursor on
// its line to its partner. With a count it goes to that percentage of the
// file instead.
func matchPair(cur buffer.Position, lines buffer.Lines, count int, meta handler.MotionMeta) (buffer.Range, bool) {
	if meta.CountGiven {
		if count > 100 {
			return buffer.Range{}, false
		}
		line := lines.ClampLine((count*lines.LineCount()+99)/100 - 1)
		return linewise(cur, lines.Position(line, lines.FirstNonBlank(line))), true
	}

	runes := lines.Runes(cur.Line)
	col := cur.Column
	for col < len(runes) {
		if _, _, ok := MatchingBracketFor(runes[col]); ok {
			break
		}
		col++
	}
	if col >= len(runes) {
		return buffer.Range{}, false
	}
	text := []rune(lines.Content())
	target, ok := FindMatchingBracket(text, cur.Offset+(col-cur.Column))
	if !ok {
		return buffer.Range{}, false
	}
	return inclusive(cur, lines.PositionAt(target)), true
}

// unmatched implements [( [{ ]) and ]}.
func unmatched(open, close rune, forward bool) handler.MotionFunc {
	return func(cur buffer.Position, lines buffer.Lines, count int, _ handler.MotionMeta) (buffer.Range, bool) {
		text := []rune(lines.Content())
		off, ok := FindUnmatched(text, cur.Offset, open, close, forward, count)
		if !ok {
			return buffer.Range{}, false
		}
		return exclusive(cur, lines.PositionAt(off)), true
	}
}

// paragraphForward is }: the next blank line after a non-blank one, or
// the end of the last line.
func paragraphForward(cur buffer.Position, lines buffer.Lines, count int, _ handler.MotionMeta) (buffer.Range, bool) {
	line := cur.Line
	last := lines.LastLine()
	for i := 0; i < count && line < last; i++ {
		for line < last && lines.IsBlank(line) {
			line++
		}
		for line < last && !lines.IsBlank(line) {
			line++
		}
	}
	if line == cur.Line && cur.Column >= lines.LastCol(line) {
		return buffer.Range{}, false
	}
	if line == last && !lines.IsBlank(last) {
		return exclusive(cur, lines.Position(last, lines.RuneLen(last))), true
	}
	return exclusive(cur, lines.Position(line, 0)), true
}

// paragraphBackward is {: the previous blank line before a non-blank one,
// or the start of the file.
func paragraphBackward(cur buffer.Position, lines buffer.Lines, count int, _ handler.MotionMeta) (buffer.Range, bool) {
	line := cur.Line
	for i := 0; i < count && line > 0; i++ {
		for line > 0 && lines.IsBlank(line) {
			line--
		}
		for line > 0 && !lines.IsBlank(line) {
			line--
		}
	}
	if line == cur.Line && cur.Column == 0 {
		return buffer.Range{}, false
	}
	return exclusive(cur, lines.Position(line, 0)), true
}
