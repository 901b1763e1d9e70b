package execctx

import (
	"sync"

	"github.com/dshills/modalkit/internal/engine/buffer"
)

// Marks holds m{a-z} positions for one session. Marks are not adjusted
// when text moves; they are clamped when used.
type Marks struct {
	mu    sync.RWMutex
	marks map[rune]buffer.Position
}

// NewMarks creates an empty mark table.
func NewMarks() *Marks {
	return &Marks{marks: make(map[rune]buffer.Position)}
}

// IsValidMark returns true for a-z.
func IsValidMark(name rune) bool {
	return name >= 'a' && name <= 'z'
}

// Set records a mark.
func (m *Marks) Set(name rune, pos buffer.Position) error {
	if !IsValidMark(name) {
		return ErrInvalidMark
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.marks[name] = pos
	return nil
}

// Get returns a mark re-resolved against lines.
func (m *Marks) Get(name rune, lines buffer.Lines) (buffer.Position, bool) {
	if m == nil {
		return buffer.Position{}, false
	}
	m.mu.RLock()
	pos, ok := m.marks[name]
	m.mu.RUnlock()
	if !ok {
		return buffer.Position{}, false
	}
	return lines.Position(pos.Line, pos.Column), true
}
