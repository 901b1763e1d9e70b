package textobject

import (
	"sort"
	"sync"

	"github.com/dshills/modalkit/internal/dispatcher/handler"
	"github.com/dshills/modalkit/internal/input/vim"
)

// Registry maps text object IDs to their implementations.
type Registry struct {
	mu      sync.RWMutex
	objects map[vim.TextObjectID]handler.TextObjectFunc
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{objects: make(map[vim.TextObjectID]handler.TextObjectFunc)}
}

// DefaultRegistry creates a registry with every built-in text object.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(vim.ObjectWord, wordObject(false))
	r.Register(vim.ObjectBigWord, wordObject(true))
	r.Register(vim.ObjectDoubleQuote, quoteObject('"'))
	r.Register(vim.ObjectSingleQuote, quoteObject('\''))
	r.Register(vim.ObjectBacktick, quoteObject('`'))
	r.Register(vim.ObjectParen, bracketObject('(', ')'))
	r.Register(vim.ObjectBrace, bracketObject('{', '}'))
	r.Register(vim.ObjectBracket, bracketObject('[', ']'))
	r.Register(vim.ObjectAngle, bracketObject('<', '>'))
	r.Register(vim.ObjectTag, tagObject)
	r.Register(vim.ObjectParagraph, paragraphObject)
	return r
}

// Register binds an implementation to a text object ID.
func (r *Registry) Register(id vim.TextObjectID, fn handler.TextObjectFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.objects[id] = fn
}

// Lookup returns the implementation of a text object.
func (r *Registry) Lookup(id vim.TextObjectID) (handler.TextObjectFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.objects[id]
	return fn, ok
}

// IDs returns every registered text object ID in ascending order.
func (r *Registry) IDs() []vim.TextObjectID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]vim.TextObjectID, 0, len(r.objects))
	for id := range r.objects {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
