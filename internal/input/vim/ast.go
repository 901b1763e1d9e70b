package vim

import (
	"fmt"
	"strings"
)

// Command is a parsed command: ActionCommand, OperatorCommand or
// MotionCommand. Counts of 0 mean the count was absent; a register of 0
// means none was named.
type Command interface {
	// Kind reports which table the command's head came from.
	Kind() EntryKind
	fmt.Stringer
}

// ActionCommand is a self-contained command such as p, x or r{c}.
type ActionCommand struct {
	Register rune
	Count    int
	Action   ActionID

	// Char is the raw character of r{c} and m{c}.
	Char rune
}

// Kind implements Command.
func (ActionCommand) Kind() EntryKind { return EntryAction }

func (c ActionCommand) String() string {
	return fmt.Sprintf("action(%d%s%s)", c.Action, countString(c.Count), charString(c.Char))
}

// OperatorCommand applies an operator to a target range.
type OperatorCommand struct {
	Register    rune
	CountBefore int
	Operator    OperatorID

	// Doubled marks dd, yy, >> and friends. The parser leaves Target nil
	// for doubled commands; the normalizer fills it in.
	Doubled bool

	Target     *Target
	CountAfter int
}

// Kind implements Command.
func (OperatorCommand) Kind() EntryKind { return EntryOperator }

func (c OperatorCommand) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "operator(%d%s", c.Operator, countString(c.CountBefore))
	if c.Doubled {
		sb.WriteString(" doubled")
	}
	if c.Target != nil {
		sb.WriteString(" " + c.Target.String())
	}
	sb.WriteString(countString(c.CountAfter) + ")")
	return sb.String()
}

// MotionCommand moves the cursor.
type MotionCommand struct {
	Count  int
	Motion MotionID
	Arg    MotionArg
}

// Kind implements Command.
func (MotionCommand) Kind() EntryKind { return EntryMotion }

func (c MotionCommand) String() string {
	return fmt.Sprintf("motion(%d%s%s)", c.Motion, countString(c.Count), argString(c.Arg))
}

// Target is what an operator acts on: a motion, or a text object when
// Mode is not ObjectModeNone.
type Target struct {
	Motion MotionID
	Arg    MotionArg

	Mode   ObjectMode
	Object TextObjectID

	Forced ForcedKind
}

// IsTextObject reports whether the target is a text object.
func (t Target) IsTextObject() bool {
	return t.Mode != ObjectModeNone
}

func (t Target) String() string {
	var forced string
	switch t.Forced {
	case ForceCharwise:
		forced = "v"
	case ForceLinewise:
		forced = "V"
	}
	if t.IsTextObject() {
		return fmt.Sprintf("object(%s%s%d)", forced, t.Mode, t.Object)
	}
	return fmt.Sprintf("motion(%s%d%s)", forced, t.Motion, argString(t.Arg))
}

func countString(n int) string {
	if n == 0 {
		return ""
	}
	return fmt.Sprintf(" x%d", n)
}

func charString(r rune) string {
	if r == 0 {
		return ""
	}
	return fmt.Sprintf(" %q", r)
}

func argString(a MotionArg) string {
	switch {
	case a.Pattern != "":
		return fmt.Sprintf(" /%s/", a.Pattern)
	case a.Char != 0:
		return fmt.Sprintf(" %q", a.Char)
	}
	return ""
}
