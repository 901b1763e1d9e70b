package dispatcher

import (
	"sync"

	"github.com/dshills/modalkit/internal/input/vim"
)

// RepeatEntry is the last repeatable change: the normalized command and,
// for commands that entered insert mode, the text typed before <Esc>.
type RepeatEntry struct {
	Command  vim.Normalized
	Inserted string
}

// RepeatController stores the command "." replays. It keeps the whole
// normalized command rather than its key sequence, so a replay does not
// depend on key bindings or parser state.
type RepeatController struct {
	mu    sync.RWMutex
	last  RepeatEntry
	valid bool
}

// NewRepeatController creates an empty controller.
func NewRepeatController() *RepeatController {
	return &RepeatController{}
}

// Record replaces the stored command. Inserted text is cleared until
// AttachInserted supplies it.
func (r *RepeatController) Record(cmd vim.Normalized) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.last = RepeatEntry{Command: cmd}
	r.valid = true
}

// AttachInserted sets the text typed after the stored command.
func (r *RepeatController) AttachInserted(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.valid {
		r.last.Inserted = text
	}
}

// Last returns the stored entry.
func (r *RepeatController) Last() (RepeatEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.last, r.valid
}

// Clear forgets the stored entry.
func (r *RepeatController) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.last = RepeatEntry{}
	r.valid = false
}
