package cursor

import (
	"sort"
	"sync"

	"github.com/dshills/modalkit/internal/dispatcher/handler"
	"github.com/dshills/modalkit/internal/input/vim"
)

// Registry maps motion IDs to their implementations.
type Registry struct {
	mu      sync.RWMutex
	motions map[vim.MotionID]handler.MotionFunc
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{motions: make(map[vim.MotionID]handler.MotionFunc)}
}

// DefaultRegistry creates a registry with every built-in motion.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for id, fn := range builtins() {
		r.Register(id, fn)
	}
	return r
}

// Register binds an implementation to a motion ID, replacing any previous one.
func (r *Registry) Register(id vim.MotionID, fn handler.MotionFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.motions[id] = fn
}

// Lookup returns the implementation of a motion.
func (r *Registry) Lookup(id vim.MotionID) (handler.MotionFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.motions[id]
	return fn, ok
}

// IDs returns every registered motion ID in ascending order.
func (r *Registry) IDs() []vim.MotionID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]vim.MotionID, 0, len(r.motions))
	for id := range r.motions {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func builtins() map[vim.MotionID]handler.MotionFunc {
	return map[vim.MotionID]handler.MotionFunc{
		vim.MotionLeft:                  moveLeft,
		vim.MotionRight:                 moveRight,
		vim.MotionDown:                  moveDown,
		vim.MotionUp:                    moveUp,
		vim.MotionWordForward:           wordForward(false),
		vim.MotionWordBackward:          wordBackward(false),
		vim.MotionWordEnd:               wordEndForward(false),
		vim.MotionBigWordForward:        wordForward(true),
		vim.MotionBigWordBackward:       wordBackward(true),
		vim.MotionBigWordEnd:            wordEndForward(true),
		vim.MotionLineStart:             lineStart,
		vim.MotionFirstNonBlank:         firstNonBlank,
		vim.MotionLineEnd:               lineEnd,
		vim.MotionCountLine:             countLine,
		vim.MotionLastNonBlank:          lastNonBlank,
		vim.MotionFileStart:             fileStart,
		vim.MotionFileEnd:               fileEnd,
		vim.MotionFindForward:           findMotion(vim.MotionFindForward),
		vim.MotionFindBackward:          findMotion(vim.MotionFindBackward),
		vim.MotionTillForward:           findMotion(vim.MotionTillForward),
		vim.MotionTillBackward:          findMotion(vim.MotionTillBackward),
		vim.MotionRepeatFind:            repeatFind(false),
		vim.MotionRepeatFindReverse:     repeatFind(true),
		vim.MotionMatchPair:             matchPair,
		vim.MotionUnmatchedParenBack:    unmatched('(', ')', false),
		vim.MotionUnmatchedBraceBack:    unmatched('{', '}', false),
		vim.MotionUnmatchedParenForward: unmatched('(', ')', true),
		vim.MotionUnmatchedBraceForward: unmatched('{', '}', true),
		vim.MotionParagraphForward:      paragraphForward,
		vim.MotionParagraphBackward:     paragraphBackward,
		vim.MotionScrollCenter:          stay,
		vim.MotionScrollTop:             stay,
		vim.MotionScrollBottom:          stay,
		vim.MotionSearchForward:         searchMotion(true),
		vim.MotionSearchBackward:        searchMotion(false),
		vim.MotionSearchNext:            searchRepeat(false),
		vim.MotionSearchPrev:            searchRepeat(true),
		vim.MotionMarkLine:              markLine,
		vim.MotionMarkExact:             markExact,
	}
}
