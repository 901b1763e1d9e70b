package key

import (
	"strings"
	"unicode/utf8"
)

// Sequence represents a series of key events, such as a command table key
// ("gU") or a scripted session ("ciwfoo<Esc>").
type Sequence struct {
	// Events contains the key events in order.
	Events []Event
}

// NewSequence creates an empty key sequence.
func NewSequence() *Sequence {
	return &Sequence{Events: make([]Event, 0, 4)}
}

// NewSequenceFrom creates a sequence from the given events.
func NewSequenceFrom(events ...Event) *Sequence {
	return &Sequence{Events: events}
}

// Len returns the number of events in the sequence.
func (s *Sequence) Len() int {
	return len(s.Events)
}

// IsEmpty returns true if the sequence has no events.
func (s *Sequence) IsEmpty() bool {
	return len(s.Events) == 0
}

// Add appends an event to the sequence.
func (s *Sequence) Add(event Event) {
	s.Events = append(s.Events, event)
}

// Tokens returns the grammar token of each event.
func (s *Sequence) Tokens() []string {
	return Tokens(s.Events)
}

// String returns the sequence in Vim notation. ParseSequence accepts
// the result.
func (s *Sequence) String() string {
	var sb strings.Builder
	for _, e := range s.Events {
		sb.WriteString(e.String())
	}
	return sb.String()
}

// Tokens returns the grammar token of each event.
func Tokens(events []Event) []string {
	tokens := make([]string, len(events))
	for i, e := range events {
		tokens[i] = e.Token()
	}
	return tokens
}

// ParseSequence parses a continuous Vim-style key string.
// Examples: "dd", "gUiw", "<C-r>", "ihello world<Esc>".
//
// A '<' that does not open a known notation is taken literally, so
// "i<div><Esc>" types "<div>".
func ParseSequence(s string) (*Sequence, error) {
	seq := NewSequence()
	for i := 0; i < len(s); {
		if s[i] == '<' {
			if end := strings.IndexByte(s[i+1:], '>'); end > 0 {
				spec := s[i : i+end+2]
				if event, err := Parse(spec); err == nil {
					seq.Add(event)
					i += len(spec)
					continue
				}
			}
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			return nil, ErrInvalidSpec
		}
		seq.Add(NewRuneEvent(r, ModNone))
		i += size
	}
	return seq, nil
}

// MustParseSequence parses a sequence string and panics on error.
// Use only for known-valid sequences in initialization code.
func MustParseSequence(s string) *Sequence {
	seq, err := ParseSequence(s)
	if err != nil {
		panic("invalid key sequence: " + s + ": " + err.Error())
	}
	return seq
}
