package textobject

import (
	"sort"
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/dshills/modalkit/internal/engine/buffer"
	"github.com/dshills/modalkit/internal/input/vim"
)

// tagPattern matches an opening or closing markup tag. Group 1 is the
// slash of a closing tag, group 2 the name, group 3 the slash of a
// self-closing one.
var tagPattern = regexp2.MustCompile(`<(/?)([A-Za-z][\w:.-]*)(?:\s[^<>]*?)?(/?)>`, regexp2.None)

type tagPair struct {
	openStart, openEnd   int
	closeStart, closeEnd int
}

// tagObject implements it and at: the count-th tag pair enclosing the
// cursor. Names compare case-insensitively.
func tagObject(cur buffer.Position, lines buffer.Lines, mode vim.ObjectMode, count int) (buffer.Range, bool) {
	text := []rune(lines.Content())
	off := cur.Offset

	var enclosing []tagPair
	for _, p := range tagPairs(text) {
		if p.openStart <= off && off < p.closeEnd {
			enclosing = append(enclosing, p)
		}
	}
	if count < 1 {
		count = 1
	}
	if len(enclosing) < count {
		return buffer.Range{}, false
	}
	sort.Slice(enclosing, func(i, j int) bool {
		return enclosing[i].closeEnd-enclosing[i].openStart < enclosing[j].closeEnd-enclosing[j].openStart
	})
	p := enclosing[count-1]

	start, end := p.openEnd, p.closeStart
	if mode == vim.ObjectAround {
		start, end = p.openStart, p.closeEnd
	}
	return buffer.Range{
		Start: lines.PositionAt(start),
		End:   lines.PositionAt(end),
	}, true
}

// tagPairs pairs opening and closing tags with a stack. Unbalanced
// closing tags unwind to the nearest opening tag of the same name.
func tagPairs(text []rune) []tagPair {
	type openTag struct {
		name       string
		start, end int
	}
	var (
		stack []openTag
		pairs []tagPair
	)
	m, err := tagPattern.FindRunesMatch(text)
	for err == nil && m != nil {
		groups := m.Groups()
		name := strings.ToLower(groups[2].String())
		start, end := m.Index, m.Index+m.Length
		switch {
		case groups[3].Length > 0:
			// Self-closing tags enclose nothing.
		case groups[1].Length == 0:
			stack = append(stack, openTag{name: name, start: start, end: end})
		default:
			for i := len(stack) - 1; i >= 0; i-- {
				if stack[i].name != name {
					continue
				}
				pairs = append(pairs, tagPair{
					openStart:  stack[i].start,
					openEnd:    stack[i].end,
					closeStart: start,
					closeEnd:   end,
				})
				stack = stack[:i]
				break
			}
		}
		m, err = tagPattern.FindNextMatch(m)
	}
	return pairs
}
