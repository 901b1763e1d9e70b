package vim

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/dshills/modalkit/internal/input/key"
)

// Grammar errors.
var (
	ErrKeyConflict = errors.New("vim: key sequence already bound")
	ErrEmptyKeys   = errors.New("vim: empty key sequence")
)

// EntryKind says which table a key sequence belongs to.
type EntryKind uint8

const (
	EntryAction EntryKind = 1 << iota
	EntryOperator
	EntryMotion
)

// String returns the table name.
func (k EntryKind) String() string {
	switch k {
	case EntryAction:
		return "action"
	case EntryOperator:
		return "operator"
	case EntryMotion:
		return "motion"
	}
	return "unknown"
}

// entry is one bound key sequence.
type entry struct {
	tokens []string
	kind   EntryKind
	id     uint16
	arg    ArgKind
}

type matchStatus uint8

const (
	matchNone matchStatus = iota
	matchPrefix
	matchExact
)

// Grammar holds the key tables of one interpreter. It is safe for
// concurrent use; plugins may register commands while a session parses.
type Grammar struct {
	mu sync.RWMutex

	entries   []entry
	motions   map[MotionID]MotionSpec
	operators map[OperatorID]OperatorSpec
	actions   map[ActionID]ActionSpec
	objects   map[string]TextObjectSpec

	nextMotion MotionID
	nextAction ActionID
}

// NewGrammar creates an empty grammar.
func NewGrammar() *Grammar {
	return &Grammar{
		motions:    make(map[MotionID]MotionSpec),
		operators:  make(map[OperatorID]OperatorSpec),
		actions:    make(map[ActionID]ActionSpec),
		objects:    make(map[string]TextObjectSpec),
		nextMotion: motionCustom,
		nextAction: actionCustom,
	}
}

// DefaultGrammar creates a grammar with every built-in command bound.
func DefaultGrammar() *Grammar {
	g := NewGrammar()
	for _, m := range builtinMotions {
		g.mustAdd(g.addMotion(m))
	}
	for _, op := range builtinOperators {
		g.mustAdd(g.addOperator(op))
	}
	for _, a := range builtinActions {
		g.mustAdd(g.addAction(a))
	}
	for _, obj := range builtinTextObjects {
		g.objects[obj.Key] = obj
	}
	return g
}

func (g *Grammar) mustAdd(err error) {
	if err != nil {
		panic(err)
	}
}

// RegisterMotion binds a new motion and returns its allocated ID.
func (g *Grammar) RegisterMotion(spec MotionSpec) (MotionID, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	spec.ID = g.nextMotion
	if err := g.addMotion(spec); err != nil {
		return MotionNone, err
	}
	g.nextMotion++
	return spec.ID, nil
}

// RegisterAction binds a new action and returns its allocated ID.
func (g *Grammar) RegisterAction(spec ActionSpec) (ActionID, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	spec.ID = g.nextAction
	if err := g.addAction(spec); err != nil {
		return ActNone, err
	}
	g.nextAction++
	return spec.ID, nil
}

func (g *Grammar) addMotion(spec MotionSpec) error {
	if err := g.bind(spec.Keys, EntryMotion, uint16(spec.ID), spec.Arg); err != nil {
		return fmt.Errorf("motion %s: %w", spec.Name, err)
	}
	g.motions[spec.ID] = spec
	return nil
}

func (g *Grammar) addOperator(spec OperatorSpec) error {
	if err := g.bind(spec.Keys, EntryOperator, uint16(spec.ID), ArgNone); err != nil {
		return fmt.Errorf("operator %s: %w", spec.Name, err)
	}
	g.operators[spec.ID] = spec
	return nil
}

func (g *Grammar) addAction(spec ActionSpec) error {
	if err := g.bind(spec.Keys, EntryAction, uint16(spec.ID), spec.Arg); err != nil {
		return fmt.Errorf("action %s: %w", spec.Name, err)
	}
	g.actions[spec.ID] = spec
	return nil
}

// bind adds a key sequence, keeping entries sorted longest first so that
// the first exact match found is the longest one.
func (g *Grammar) bind(keys string, kind EntryKind, id uint16, arg ArgKind) error {
	seq, err := key.ParseSequence(keys)
	if err != nil {
		return err
	}
	if seq.IsEmpty() {
		return ErrEmptyKeys
	}
	tokens := seq.Tokens()
	for _, e := range g.entries {
		if equalTokens(e.tokens, tokens) {
			return fmt.Errorf("%w: %q", ErrKeyConflict, keys)
		}
	}
	g.entries = append(g.entries, entry{tokens: tokens, kind: kind, id: id, arg: arg})
	sort.SliceStable(g.entries, func(i, j int) bool {
		return len(g.entries[i].tokens) > len(g.entries[j].tokens)
	})
	return nil
}

// match finds the longest bound sequence of the given kinds at the front
// of tokens. A strict prefix of some binding reports matchPrefix.
func (g *Grammar) match(tokens []string, kinds EntryKind) (entry, matchStatus) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	prefix := false
	for _, e := range g.entries {
		if e.kind&kinds == 0 {
			continue
		}
		if len(e.tokens) <= len(tokens) {
			if equalTokens(e.tokens, tokens[:len(e.tokens)]) {
				return e, matchExact
			}
		} else if equalTokens(e.tokens[:len(tokens)], tokens) {
			prefix = true
		}
	}
	if prefix {
		return entry{}, matchPrefix
	}
	return entry{}, matchNone
}

// Motion returns the spec of a motion.
func (g *Grammar) Motion(id MotionID) (MotionSpec, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	spec, ok := g.motions[id]
	return spec, ok
}

// Operator returns the spec of an operator.
func (g *Grammar) Operator(id OperatorID) (OperatorSpec, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	spec, ok := g.operators[id]
	return spec, ok
}

// Action returns the spec of an action.
func (g *Grammar) Action(id ActionID) (ActionSpec, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	spec, ok := g.actions[id]
	return spec, ok
}

// TextObject looks up a text object by its key.
func (g *Grammar) TextObject(token string) (TextObjectSpec, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	spec, ok := g.objects[token]
	return spec, ok
}

// Keys returns every bound key sequence of the given kinds, longest first.
func (g *Grammar) Keys(kinds EntryKind) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var keys []string
	for _, e := range g.entries {
		if e.kind&kinds != 0 {
			keys = append(keys, joinTokens(e.tokens))
		}
	}
	return keys
}

// Motions returns every bound motion spec.
func (g *Grammar) Motions() []MotionSpec {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]MotionSpec, 0, len(g.motions))
	for _, m := range g.motions {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Actions returns every bound action spec.
func (g *Grammar) Actions() []ActionSpec {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]ActionSpec, 0, len(g.actions))
	for _, a := range g.actions {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Operators returns every bound operator spec.
func (g *Grammar) Operators() []OperatorSpec {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]OperatorSpec, 0, len(g.operators))
	for _, op := range g.operators {
		out = append(out, op)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// TextObjects returns every bound text object spec.
func (g *Grammar) TextObjects() []TextObjectSpec {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]TextObjectSpec, 0, len(g.objects))
	for _, obj := range g.objects {
		out = append(out, obj)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

func equalTokens(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func joinTokens(tokens []string) string {
	var n int
	for _, t := range tokens {
		n += len(t)
	}
	buf := make([]byte, 0, n)
	for _, t := range tokens {
		buf = append(buf, t...)
	}
	return string(buf)
}
