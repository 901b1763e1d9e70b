package cursor

import (
	"strings"
	"time"

	"github.com/dlclark/regexp2"

	"github.com/dshills/modalkit/internal/dispatcher/handler"
	"github.com/dshills/modalkit/internal/engine/buffer"
	"github.com/dshills/modalkit/internal/input/vim"
)

// searchTimeout bounds a single pattern match.
const searchTimeout = time.Second

// CompilePattern compiles a search pattern. Vim's \< and \> word
// boundaries are accepted.
func CompilePattern(pattern string) (*regexp2.Regexp, error) {
	pattern = strings.NewReplacer(`\<`, `\b`, `\>`, `\b`).Replace(pattern)
	re, err := regexp2.Compile(pattern, regexp2.None)
	if err != nil {
		return nil, err
	}
	re.MatchTimeout = searchTimeout
	return re, nil
}

// Search finds the count-th match of pattern from off, wrapping around
// the end (or start) of the text. It returns the match offset.
func Search(text []rune, off int, pattern string, forward bool, count int) (int, bool) {
	if pattern == "" {
		return 0, false
	}
	re, err := CompilePattern(pattern)
	if err != nil {
		return 0, false
	}
	starts := matchStarts(re, text)
	if len(starts) == 0 {
		return 0, false
	}
	idx := -1
	if forward {
		for i, s := range starts {
			if s > off {
				idx = i
				break
			}
		}
		if idx < 0 {
			idx = 0
		}
		idx = (idx + count - 1) % len(starts)
	} else {
		for i := len(starts) - 1; i >= 0; i-- {
			if starts[i] < off {
				idx = i
				break
			}
		}
		if idx < 0 {
			idx = len(starts) - 1
		}
		idx = ((idx-(count-1))%len(starts) + len(starts)) % len(starts)
	}
	return starts[idx], true
}

func matchStarts(re *regexp2.Regexp, text []rune) []int {
	var starts []int
	m, err := re.FindRunesMatch(text)
	for err == nil && m != nil {
		starts = append(starts, m.Index)
		m, err = re.FindNextMatch(m)
	}
	return starts
}

// searchMotion implements / and ?.
func searchMotion(forward bool) handler.MotionFunc {
	return func(cur buffer.Position, lines buffer.Lines, count int, meta handler.MotionMeta) (buffer.Range, bool) {
		off, ok := Search([]rune(lines.Content()), cur.Offset, meta.Pattern, forward, count)
		if !ok {
			return buffer.Range{}, false
		}
		return exclusive(cur, lines.PositionAt(off)), true
	}
}

// searchRepeat implements n and N from the remembered search in meta.
func searchRepeat(reverse bool) handler.MotionFunc {
	return func(cur buffer.Position, lines buffer.Lines, count int, meta handler.MotionMeta) (buffer.Range, bool) {
		if !meta.LastSearch.IsSearch() {
			return buffer.Range{}, false
		}
		forward := meta.LastSearch == vim.MotionSearchForward
		if reverse {
			forward = !forward
		}
		return searchMotion(forward)(cur, lines, count, meta)
	}
}
