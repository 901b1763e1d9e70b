package buffer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// Lines is document text split on '\n'. A document always has at least
// one (possibly empty) line.
type Lines []string

// Split splits content into lines.
func Split(content string) Lines {
	return Lines(strings.Split(content, "\n"))
}

// Content joins the lines back into a single string.
func (l Lines) Content() string {
	return strings.Join(l, "\n")
}

// Clone returns an independent copy.
func (l Lines) Clone() Lines {
	out := make(Lines, len(l))
	copy(out, l)
	return out
}

// LineCount returns the number of lines, never less than one.
func (l Lines) LineCount() int {
	if len(l) == 0 {
		return 1
	}
	return len(l)
}

// Line returns line n, or "" when n is out of range.
func (l Lines) Line(n int) string {
	if n < 0 || n >= len(l) {
		return ""
	}
	return l[n]
}

// Runes returns line n as runes.
func (l Lines) Runes(n int) []rune {
	return []rune(l.Line(n))
}

// RuneLen returns the length of line n in runes.
func (l Lines) RuneLen(n int) int {
	return utf8.RuneCountInString(l.Line(n))
}

// LastLine returns the index of the last line.
func (l Lines) LastLine() int {
	return l.LineCount() - 1
}

// ClampLine clamps n to a valid line index.
func (l Lines) ClampLine(n int) int {
	if n < 0 {
		return 0
	}
	if last := l.LastLine(); n > last {
		return last
	}
	return n
}

// Len returns the total rune length of the content including newlines.
func (l Lines) Len() int {
	if len(l) == 0 {
		return 0
	}
	n := len(l) - 1
	for i := range l {
		n += utf8.RuneCountInString(l[i])
	}
	return n
}

// Offset returns the absolute rune offset of line:col. Both are clamped.
func (l Lines) Offset(line, col int) int {
	return l.Position(line, col).Offset
}

// Position builds a position for line:col, clamping the line to the
// document and the column to [0, len(line)].
func (l Lines) Position(line, col int) Position {
	line = l.ClampLine(line)
	if col < 0 {
		col = 0
	}
	if n := l.RuneLen(line); col > n {
		col = n
	}
	off := 0
	for i := 0; i < line; i++ {
		off += utf8.RuneCountInString(l[i]) + 1
	}
	return Position{Line: line, Column: col, Offset: off + col}
}

// PositionAt converts an absolute offset into a position, clamping to the
// document bounds.
func (l Lines) PositionAt(offset int) Position {
	if offset < 0 {
		offset = 0
	}
	off := 0
	for i := 0; i < l.LineCount(); i++ {
		n := l.RuneLen(i)
		if offset <= off+n {
			return Position{Line: i, Column: offset - off, Offset: offset}
		}
		off += n + 1
	}
	last := l.LastLine()
	return l.Position(last, l.RuneLen(last))
}

// RuneAt returns the rune at an absolute offset. Line ends read as '\n'
// and offsets outside the document return 0.
func (l Lines) RuneAt(offset int) rune {
	p := l.PositionAt(offset)
	if p.Offset != offset {
		return 0
	}
	r := l.Runes(p.Line)
	if p.Column < len(r) {
		return r[p.Column]
	}
	if p.Line < l.LastLine() {
		return '\n'
	}
	return 0
}

// FirstNonBlank returns the column of the first non-whitespace rune on
// line n, or the line length if the line is blank.
func (l Lines) FirstNonBlank(n int) int {
	for i, r := range l.Runes(n) {
		if !unicode.IsSpace(r) {
			return i
		}
	}
	return l.RuneLen(n)
}

// LastCol returns the column of the last character on line n, or 0 for an
// empty line. This is where normal-mode cursors stop.
func (l Lines) LastCol(n int) int {
	if c := l.RuneLen(n) - 1; c > 0 {
		return c
	}
	return 0
}

// IsBlank returns true if line n is empty or whitespace only.
func (l Lines) IsBlank(n int) bool {
	return strings.TrimSpace(l.Line(n)) == ""
}

// Indent returns the leading whitespace of line n.
func (l Lines) Indent(n int) string {
	r := l.Runes(n)
	return string(r[:l.FirstNonBlank(n)])
}

// ClusterStarts returns the column of every grapheme cluster on line n
// followed by the line length, so a combining sequence or an emoji with
// modifiers counts as one character.
func (l Lines) ClusterStarts(n int) []int {
	starts := make([]int, 0, l.RuneLen(n)+1)
	col := 0
	gr := uniseg.NewGraphemes(l.Line(n))
	for gr.Next() {
		starts = append(starts, col)
		col += len(gr.Runes())
	}
	return append(starts, col)
}

// NextCluster returns the column count clusters after col on line n,
// stopping at the line length.
func (l Lines) NextCluster(n, col, count int) int {
	starts := l.ClusterStarts(n)
	for i, s := range starts {
		if s > col {
			j := i + count - 1
			if j >= len(starts) {
				j = len(starts) - 1
			}
			return starts[j]
		}
	}
	return starts[len(starts)-1]
}

// PrevCluster returns the column count clusters before col on line n,
// stopping at column 0.
func (l Lines) PrevCluster(n, col, count int) int {
	starts := l.ClusterStarts(n)
	for i := len(starts) - 1; i >= 0; i-- {
		if starts[i] < col {
			j := i - count + 1
			if j < 0 {
				j = 0
			}
			return starts[j]
		}
	}
	return 0
}
