package cursor

import (
	"unicode"

	"github.com/dshills/modalkit/internal/dispatcher/handler"
	"github.com/dshills/modalkit/internal/engine/buffer"
)

// Character classes used by word motions and word objects.
const (
	ClassBlank = iota
	ClassPunct
	ClassWord
)

// CharClass classifies r. Words are letters, digits and underscore runs;
// for bigWord every non-blank rune is a word character.
func CharClass(r rune, bigWord bool) int {
	switch {
	case unicode.IsSpace(r):
		return ClassBlank
	case bigWord:
		return ClassWord
	case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
		return ClassWord
	}
	return ClassPunct
}

// isEmptyLineAt reports whether offset is the start of an empty line.
func isEmptyLineAt(text []rune, off int) bool {
	if off >= len(text) || text[off] != '\n' {
		return off == len(text) && off > 0 && text[off-1] == '\n'
	}
	return off == 0 || text[off-1] == '\n'
}

// nextWordStart finds the start of the next word. An empty line counts as
// a word.
func nextWordStart(text []rune, off int, bigWord bool) int {
	n := len(text)
	if off >= n {
		return n
	}
	if c := CharClass(text[off], bigWord); c != ClassBlank {
		for off < n && CharClass(text[off], bigWord) == c {
			off++
		}
	} else if isEmptyLineAt(text, off) {
		off++
	}
	for off < n && CharClass(text[off], bigWord) == ClassBlank {
		if isEmptyLineAt(text, off) {
			return off
		}
		off++
	}
	return off
}

// prevWordStart finds the start of the word before off.
func prevWordStart(text []rune, off int, bigWord bool) int {
	if off <= 0 {
		return 0
	}
	off--
	for off > 0 && CharClass(text[off], bigWord) == ClassBlank {
		if isEmptyLineAt(text, off) {
			return off
		}
		off--
	}
	c := CharClass(text[off], bigWord)
	for off > 0 && CharClass(text[off-1], bigWord) == c && c != ClassBlank {
		off--
	}
	return off
}

// wordEnd finds the last character of the current or next word.
func wordEnd(text []rune, off int, bigWord bool) int {
	n := len(text)
	if off >= n-1 {
		return off
	}
	off++
	for off < n && CharClass(text[off], bigWord) == ClassBlank {
		off++
	}
	if off >= n {
		return n - 1
	}
	c := CharClass(text[off], bigWord)
	for off+1 < n && CharClass(text[off+1], bigWord) == c {
		off++
	}
	return off
}

// wordRunEnd returns the offset just past the count-th word run. A blank
// start first skips to the next run. This is how w resolves as an
// operator target: "dw" on "hello world" deletes "hello" and keeps the
// space.
func wordRunEnd(text []rune, off int, bigWord bool, count int) int {
	n := len(text)
	for i := 0; i < count && off < n; i++ {
		for off < n && CharClass(text[off], bigWord) == ClassBlank {
			off++
		}
		if off >= n {
			break
		}
		c := CharClass(text[off], bigWord)
		for off < n && CharClass(text[off], bigWord) == c {
			off++
		}
	}
	return off
}

func wordForward(bigWord bool) handler.MotionFunc {
	return func(cur buffer.Position, lines buffer.Lines, count int, meta handler.MotionMeta) (buffer.Range, bool) {
		text := []rune(lines.Content())
		off := cur.Offset
		if meta.Operator {
			off = wordRunEnd(text, off, bigWord, count)
		} else {
			for i := 0; i < count; i++ {
				off = nextWordStart(text, off, bigWord)
			}
		}
		if off == cur.Offset {
			return buffer.Range{}, false
		}
		return exclusive(cur, lines.PositionAt(off)), true
	}
}

func wordBackward(bigWord bool) handler.MotionFunc {
	return func(cur buffer.Position, lines buffer.Lines, count int, _ handler.MotionMeta) (buffer.Range, bool) {
		text := []rune(lines.Content())
		off := cur.Offset
		for i := 0; i < count; i++ {
			off = prevWordStart(text, off, bigWord)
		}
		if off == cur.Offset {
			return buffer.Range{}, false
		}
		return exclusive(cur, lines.PositionAt(off)), true
	}
}

func wordEndForward(bigWord bool) handler.MotionFunc {
	return func(cur buffer.Position, lines buffer.Lines, count int, _ handler.MotionMeta) (buffer.Range, bool) {
		text := []rune(lines.Content())
		off := cur.Offset
		for i := 0; i < count; i++ {
			off = wordEnd(text, off, bigWord)
		}
		if off == cur.Offset {
			return buffer.Range{}, false
		}
		return inclusive(cur, lines.PositionAt(off)), true
	}
}
