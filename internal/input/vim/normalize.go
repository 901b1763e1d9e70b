package vim

import (
	"errors"
	"fmt"
)

// Normalizer errors.
var (
	ErrUnknownCommand = errors.New("vim: unknown command")
	ErrMissingTarget  = errors.New("vim: operator without target")
)

// UnnamedRegister is used when a command names no register.
const UnnamedRegister = '"'

// Normalized is a command in canonical form: aliases expanded, doubled
// operators given their linewise target, counts multiplied and the
// register resolved. It is what the executor runs and what "." replays.
type Normalized struct {
	// Command is an ActionCommand, an OperatorCommand with a non-nil
	// Target, or a MotionCommand.
	Command Command

	// Count is the effective count, at least 1.
	Count int

	// Register is the resolved register name.
	Register rune

	// Repeatable commands are stored for ".".
	Repeatable bool
}

// WithCount returns a copy with a different effective count.
func (n Normalized) WithCount(count int) Normalized {
	if count > 0 {
		n.Count = count
	}
	return n
}

func (n Normalized) String() string {
	rep := ""
	if n.Repeatable {
		rep = " repeatable"
	}
	return fmt.Sprintf("%s count=%d register=%q%s", n.Command, n.Count, n.Register, rep)
}

// Normalizer rewrites parsed commands into canonical form.
type Normalizer struct {
	grammar *Grammar
}

// NewNormalizer creates a normalizer that classifies commands using g.
func NewNormalizer(g *Grammar) *Normalizer {
	return &Normalizer{grammar: g}
}

// Normalize canonicalizes cmd.
func (n *Normalizer) Normalize(cmd Command) (Normalized, error) {
	switch c := cmd.(type) {
	case ActionCommand:
		spec, ok := n.grammar.Action(c.Action)
		if !ok {
			return Normalized{}, fmt.Errorf("%w: action %d", ErrUnknownCommand, c.Action)
		}
		if spec.Alias != nil {
			op := OperatorCommand{
				Register:    c.Register,
				CountBefore: c.Count,
				Operator:    spec.Alias.Operator,
				Doubled:     spec.Alias.Doubled,
			}
			if !spec.Alias.Doubled {
				op.Target = &Target{Motion: spec.Alias.Motion}
			}
			return n.normalizeOperator(op)
		}
		return Normalized{
			Command:    c,
			Count:      effective(c.Count),
			Register:   resolveRegister(c.Register),
			Repeatable: spec.Repeatable,
		}, nil

	case OperatorCommand:
		return n.normalizeOperator(c)

	case MotionCommand:
		if _, ok := n.grammar.Motion(c.Motion); !ok {
			return Normalized{}, fmt.Errorf("%w: motion %d", ErrUnknownCommand, c.Motion)
		}
		return Normalized{
			Command:  c,
			Count:    effective(c.Count),
			Register: UnnamedRegister,
		}, nil
	}
	return Normalized{}, fmt.Errorf("%w: %T", ErrUnknownCommand, cmd)
}

func (n *Normalizer) normalizeOperator(c OperatorCommand) (Normalized, error) {
	if _, ok := n.grammar.Operator(c.Operator); !ok {
		return Normalized{}, fmt.Errorf("%w: operator %d", ErrUnknownCommand, c.Operator)
	}
	if c.Doubled {
		c.Target = &Target{Motion: MotionCountLine}
	}
	if c.Target == nil {
		return Normalized{}, ErrMissingTarget
	}
	return Normalized{
		Command:    c,
		Count:      CombineCounts(c.CountBefore, c.CountAfter),
		Register:   resolveRegister(c.Register),
		Repeatable: true,
	}, nil
}

func effective(count int) int {
	if count <= 0 {
		return 1
	}
	return count
}

func resolveRegister(r rune) rune {
	if r == 0 {
		return UnnamedRegister
	}
	return r
}
