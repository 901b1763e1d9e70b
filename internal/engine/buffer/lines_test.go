package buffer

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestSplitContent(t *testing.T) {
	assert.Equal(t, Lines{""}, Split(""))
	assert.Equal(t, Lines{"a", "b", ""}, Split("a\nb\n"))
	assert.Equal(t, "a\nb\n", Split("a\nb\n").Content())
}

func TestPositionClamps(t *testing.T) {
	lines := Lines{"hello", "", "wörld"}

	p := lines.Position(2, 3)
	assert.Equal(t, Position{Line: 2, Column: 3, Offset: 10}, p)

	p = lines.Position(9, 99)
	assert.Equal(t, Position{Line: 2, Column: 5, Offset: 12}, p)

	p = lines.Position(-1, -1)
	assert.Equal(t, Position{}, p)
}

func TestPositionAt(t *testing.T) {
	lines := Lines{"ab", "cd"}
	assert.Equal(t, Position{Line: 0, Column: 2, Offset: 2}, lines.PositionAt(2))
	assert.Equal(t, Position{Line: 1, Column: 0, Offset: 3}, lines.PositionAt(3))
	assert.Equal(t, Position{Line: 1, Column: 2, Offset: 5}, lines.PositionAt(42))
}

func TestRuneAt(t *testing.T) {
	lines := Lines{"ab", "c"}
	assert.Equal(t, 'b', lines.RuneAt(1))
	assert.Equal(t, '\n', lines.RuneAt(2))
	assert.Equal(t, 'c', lines.RuneAt(3))
	assert.Equal(t, rune(0), lines.RuneAt(4))
}

func TestLineHelpers(t *testing.T) {
	lines := Lines{"   foo", "", "\tbar "}
	assert.Equal(t, 3, lines.FirstNonBlank(0))
	assert.Equal(t, 0, lines.FirstNonBlank(1))
	assert.Equal(t, "\t", lines.Indent(2))
	assert.Equal(t, 5, lines.LastCol(0))
	assert.Equal(t, 0, lines.LastCol(1))
	assert.True(t, lines.IsBlank(1))
	assert.False(t, lines.IsBlank(2))
	assert.Equal(t, 6+1+0+1+5, lines.Len())
}

func TestRangeSpan(t *testing.T) {
	lines := Lines{"hello world"}
	r := Range{Start: lines.Position(0, 6), End: lines.Position(0, 0)}
	start, end := r.Span(lines)
	assert.Equal(t, 0, start)
	assert.Equal(t, 6, end)

	r.Inclusive = true
	_, end = r.Span(lines)
	assert.Equal(t, 7, end)

	empty := Lines{""}
	r = Range{Start: empty.Position(0, 0), End: empty.Position(0, 0), Inclusive: true}
	assert.True(t, r.IsEmpty(empty))
}

func TestRangeNormalize(t *testing.T) {
	lines := Lines{"abc", "def"}
	r := Range{Start: lines.Position(1, 1), End: lines.Position(0, 2)}.Normalize()
	require.Equal(t, 0, r.Start.Line)
	first, last := r.LineSpan()
	assert.Equal(t, 0, first)
	assert.Equal(t, 1, last)
}

func TestOffsetInvariant(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		lines := Lines(rapid.SliceOfN(rapid.StringMatching(`[a-zé ]{0,8}`), 1, 6).Draw(t, "lines"))
		line := rapid.IntRange(0, len(lines)-1).Draw(t, "line")
		col := rapid.IntRange(0, utf8.RuneCountInString(lines[line])).Draw(t, "col")

		p := lines.Position(line, col)
		want := col
		for i := 0; i < line; i++ {
			want += utf8.RuneCountInString(lines[i]) + 1
		}
		if p.Offset != want {
			t.Fatalf("offset %d, want %d", p.Offset, want)
		}
		if back := lines.PositionAt(p.Offset); back != p {
			t.Fatalf("PositionAt(%d) = %v, want %v", p.Offset, back, p)
		}
	})
}

func TestClusterNavigation(t *testing.T) {
	// "e" + combining acute is one cluster of two runes.
	lines := Lines{"ae\u0301b"}
	assert.Equal(t, []int{0, 1, 3, 4}, lines.ClusterStarts(0))
	assert.Equal(t, 1, lines.NextCluster(0, 0, 1))
	assert.Equal(t, 3, lines.NextCluster(0, 1, 1))
	assert.Equal(t, 4, lines.NextCluster(0, 1, 5))
	assert.Equal(t, 1, lines.PrevCluster(0, 3, 1))
	assert.Equal(t, 0, lines.PrevCluster(0, 3, 9))
	assert.Equal(t, []int{0}, Lines{""}.ClusterStarts(0))
}
