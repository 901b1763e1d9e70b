package cursor

import (
	"github.com/dshills/modalkit/internal/dispatcher/handler"
	"github.com/dshills/modalkit/internal/engine/buffer"
	"github.com/dshills/modalkit/internal/input/vim"
)

// findMotion implements f, F, t and T. They search the cursor line only.
func findMotion(id vim.MotionID) handler.MotionFunc {
	return func(cur buffer.Position, lines buffer.Lines, count int, meta handler.MotionMeta) (buffer.Range, bool) {
		col, ok := findChar(lines.Runes(cur.Line), cur.Column, meta.Char, id, count, meta.Repeat)
		if !ok {
			return buffer.Range{}, false
		}
		end := lines.Position(cur.Line, col)
		if id == vim.MotionFindForward || id == vim.MotionTillForward {
			return inclusive(cur, end), true
		}
		return exclusive(cur, end), true
	}
}

// FindChar locates the count-th occurrence of ch for a char search
// motion and returns the column the motion lands on.
func FindChar(line []rune, col int, ch rune, id vim.MotionID, count int) (int, bool) {
	return findChar(line, col, ch, id, count, false)
}

func findChar(line []rune, col int, ch rune, id vim.MotionID, count int, repeat bool) (int, bool) {
	if ch == 0 {
		return 0, false
	}
	forward := id == vim.MotionFindForward || id == vim.MotionTillForward
	till := id == vim.MotionTillForward || id == vim.MotionTillBackward

	step := -1
	if forward {
		step = 1
	}
	i := col + step
	// A repeated t/T would match the character it already stands next to.
	if till && repeat {
		i += step
	}
	for ; i >= 0 && i < len(line); i += step {
		if line[i] != ch {
			continue
		}
		count--
		if count > 0 {
			continue
		}
		if till {
			return i - step, true
		}
		return i, true
	}
	return 0, false
}

// reverseFind maps a char search to its opposite direction.
func reverseFind(id vim.MotionID) vim.MotionID {
	switch id {
	case vim.MotionFindForward:
		return vim.MotionFindBackward
	case vim.MotionFindBackward:
		return vim.MotionFindForward
	case vim.MotionTillForward:
		return vim.MotionTillBackward
	case vim.MotionTillBackward:
		return vim.MotionTillForward
	}
	return id
}

// repeatFind implements ; and , from the remembered search in meta.
func repeatFind(reverse bool) handler.MotionFunc {
	return func(cur buffer.Position, lines buffer.Lines, count int, meta handler.MotionMeta) (buffer.Range, bool) {
		id := meta.LastFind
		if !id.IsCharSearch() {
			return buffer.Range{}, false
		}
		if reverse {
			id = reverseFind(id)
		}
		meta.Repeat = true
		return findMotion(id)(cur, lines, count, meta)
	}
}
