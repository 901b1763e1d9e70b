package vim

import (
	"strings"

	"github.com/dshills/modalkit/internal/input/key"
)

// ParseStatus indicates the result of parsing the buffered keys.
type ParseStatus uint8

const (
	// ParseIncomplete means more keys could still form a command.
	ParseIncomplete ParseStatus = iota

	// ParseComplete means the keys form exactly one command.
	ParseComplete

	// ParseInvalid means no extension of the keys can form a command.
	ParseInvalid

	// ParseNeedsChar means a raw character is owed (r, f, "x, /...<CR>).
	ParseNeedsChar
)

// String returns the status name.
func (s ParseStatus) String() string {
	switch s {
	case ParseIncomplete:
		return "incomplete"
	case ParseComplete:
		return "complete"
	case ParseInvalid:
		return "invalid"
	case ParseNeedsChar:
		return "needsChar"
	}
	return "unknown"
}

// Awaiting names what an unfinished parse is waiting for.
type Awaiting uint8

const (
	AwaitNothing Awaiting = iota
	AwaitCommand
	AwaitRegister
	AwaitTarget
	AwaitObject
	AwaitChar
	AwaitPattern
)

// String returns a short description for status lines.
func (a Awaiting) String() string {
	switch a {
	case AwaitCommand:
		return "command"
	case AwaitRegister:
		return "register"
	case AwaitTarget:
		return "motion or text object"
	case AwaitObject:
		return "text object"
	case AwaitChar:
		return "character"
	case AwaitPattern:
		return "pattern"
	}
	return ""
}

// ParseResult is the outcome of one parse.
type ParseResult struct {
	Status   ParseStatus
	Command  Command
	Awaiting Awaiting

	// Pattern holds the search pattern typed so far while Awaiting is
	// AwaitPattern.
	Pattern string
}

func incomplete(a Awaiting) ParseResult {
	return ParseResult{Status: ParseIncomplete, Awaiting: a}
}

func needsChar(a Awaiting) ParseResult {
	return ParseResult{Status: ParseNeedsChar, Awaiting: a}
}

func invalid() ParseResult {
	return ParseResult{Status: ParseInvalid}
}

func complete(cmd Command) ParseResult {
	return ParseResult{Status: ParseComplete, Command: cmd}
}

// Parser turns buffered key events into commands. It holds no per-sequence
// state: every call parses the whole buffer from the start.
type Parser struct {
	grammar *Grammar
}

// NewParser creates a parser over a grammar.
func NewParser(g *Grammar) *Parser {
	return &Parser{grammar: g}
}

// Grammar returns the parser's grammar.
func (p *Parser) Grammar() *Grammar {
	return p.grammar
}

// scan walks the buffered events.
type scan struct {
	events []key.Event
	tokens []string
	pos    int
}

func (s *scan) done() bool { return s.pos >= len(s.events) }

func (s *scan) rest() []string { return s.tokens[s.pos:] }

func (s *scan) count() int {
	n, consumed := ParseCount(s.events[s.pos:])
	s.pos += consumed
	return n
}

// Parse parses the buffered keys.
func (p *Parser) Parse(events []key.Event) ParseResult {
	s := &scan{events: events, tokens: key.Tokens(events)}
	if s.done() {
		return incomplete(AwaitCommand)
	}

	count := s.count()

	var register rune
	if !s.done() && s.tokens[s.pos] == "\"" {
		s.pos++
		if s.done() {
			return needsChar(AwaitRegister)
		}
		ev := s.events[s.pos]
		if !ev.IsChar() || !IsValidRegister(ev.Rune) {
			return invalid()
		}
		register = ev.Rune
		s.pos++
		count = mergeCounts(count, s.count())
	}

	if s.done() {
		return incomplete(AwaitCommand)
	}

	head, status := p.grammar.match(s.rest(), EntryAction|EntryOperator|EntryMotion)
	switch status {
	case matchPrefix:
		return incomplete(AwaitCommand)
	case matchNone:
		return invalid()
	}
	s.pos += len(head.tokens)

	switch head.kind {
	case EntryAction:
		cmd := ActionCommand{Register: register, Count: count, Action: ActionID(head.id)}
		if head.arg == ArgChar {
			if s.done() {
				return needsChar(AwaitChar)
			}
			if !s.events[s.pos].IsChar() {
				return invalid()
			}
			cmd.Char = s.events[s.pos].Rune
			s.pos++
		}
		if !s.done() {
			return invalid()
		}
		return complete(cmd)

	case EntryMotion:
		arg, res, ok := p.motionArg(s, head)
		if !ok {
			return res
		}
		if !s.done() {
			return invalid()
		}
		return complete(MotionCommand{Count: count, Motion: MotionID(head.id), Arg: arg})
	}

	return p.parseOperator(s, OperatorCommand{
		Register:    register,
		CountBefore: count,
		Operator:    OperatorID(head.id),
	}, head.tokens)
}

// parseOperator parses everything after an operator's keys.
func (p *Parser) parseOperator(s *scan, cmd OperatorCommand, opTokens []string) ParseResult {
	if s.done() {
		return incomplete(AwaitTarget)
	}
	cmd.CountAfter = s.count()
	if s.done() {
		return incomplete(AwaitTarget)
	}

	if n, status := doubled(s.rest(), opTokens); status == matchExact {
		s.pos += n
		if !s.done() {
			return invalid()
		}
		cmd.Doubled = true
		return complete(cmd)
	} else if status == matchPrefix {
		return incomplete(AwaitTarget)
	}

	target := &Target{}
	switch s.tokens[s.pos] {
	case "v":
		target.Forced = ForceCharwise
		s.pos++
	case "V":
		target.Forced = ForceLinewise
		s.pos++
	}
	if s.done() {
		return incomplete(AwaitTarget)
	}

	switch s.tokens[s.pos] {
	case "i", "a":
		target.Mode = ObjectInner
		if s.tokens[s.pos] == "a" {
			target.Mode = ObjectAround
		}
		s.pos++
		if s.done() {
			return incomplete(AwaitObject)
		}
		obj, ok := p.grammar.TextObject(s.tokens[s.pos])
		if !ok {
			return invalid()
		}
		target.Object = obj.ID
		s.pos++
	default:
		m, status := p.grammar.match(s.rest(), EntryMotion)
		switch status {
		case matchPrefix:
			return incomplete(AwaitTarget)
		case matchNone:
			return invalid()
		}
		s.pos += len(m.tokens)
		arg, res, ok := p.motionArg(s, m)
		if !ok {
			return res
		}
		target.Motion = MotionID(m.id)
		target.Arg = arg
	}

	if !s.done() {
		return invalid()
	}
	cmd.Target = target
	return complete(cmd)
}

// doubled matches the operator repeated, either in full ("gUgU") or by its
// last key ("gUU").
func doubled(rest, opTokens []string) (int, matchStatus) {
	candidates := [][]string{opTokens}
	if len(opTokens) > 1 {
		candidates = append(candidates, opTokens[len(opTokens)-1:])
	}
	status := matchNone
	for _, c := range candidates {
		if len(c) <= len(rest) {
			if equalTokens(c, rest[:len(c)]) {
				return len(c), matchExact
			}
		} else if equalTokens(c[:len(rest)], rest) {
			status = matchPrefix
		}
	}
	return 0, status
}

// motionArg consumes the raw input a motion owes. When ok is false the
// returned ParseResult is final.
func (p *Parser) motionArg(s *scan, m entry) (MotionArg, ParseResult, bool) {
	switch m.arg {
	case ArgChar:
		if s.done() {
			return MotionArg{}, needsChar(AwaitChar), false
		}
		ev := s.events[s.pos]
		if !ev.IsChar() {
			return MotionArg{}, invalid(), false
		}
		s.pos++
		return MotionArg{Char: ev.Rune}, ParseResult{}, true

	case ArgPattern:
		var pattern []rune
		for ; !s.done(); s.pos++ {
			ev := s.events[s.pos]
			switch {
			case ev.IsEnter():
				s.pos++
				return MotionArg{Pattern: string(pattern)}, ParseResult{}, true
			case ev.IsBackspace():
				if len(pattern) == 0 {
					return MotionArg{}, invalid(), false
				}
				pattern = pattern[:len(pattern)-1]
			case ev.IsRune() && !ev.IsModified():
				pattern = append(pattern, ev.Rune)
			default:
				return MotionArg{}, invalid(), false
			}
		}
		res := needsChar(AwaitPattern)
		res.Pattern = string(pattern)
		return MotionArg{}, res, false
	}
	return MotionArg{}, ParseResult{}, true
}

// Describe renders keys for a pending-command indicator.
func Describe(events []key.Event) string {
	var sb strings.Builder
	for _, ev := range events {
		sb.WriteString(ev.String())
	}
	return sb.String()
}
