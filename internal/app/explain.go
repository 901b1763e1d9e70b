package app

import (
	"github.com/dshills/modalkit/internal/input/key"
	"github.com/dshills/modalkit/internal/input/vim"
)

// Explanation describes how a run of keys parses.
type Explanation struct {
	// Keys is the key run in notation.
	Keys string

	// Command is the normalized command, when the keys completed one.
	Command *vim.Normalized

	// Invalid is set when the keys can never form a command.
	Invalid bool

	// Awaiting is what the trailing incomplete keys still need.
	Awaiting vim.Awaiting
}

// Explain splits keys into commands the way the session would, without
// executing anything. Insert mode is not simulated: text after an insert
// command is parsed as further commands.
func (a *App) Explain(keys string) ([]Explanation, error) {
	seq, err := key.ParseSequence(keys)
	if err != nil {
		return nil, err
	}
	parser := vim.NewParser(a.exec.Grammar())
	normalizer := vim.NewNormalizer(a.exec.Grammar())

	var out []Explanation
	var pending []key.Event
	for _, ev := range seq.Events {
		pending = append(pending, ev)
		pr := parser.Parse(pending)
		switch pr.Status {
		case vim.ParseIncomplete, vim.ParseNeedsChar:
			continue
		case vim.ParseInvalid:
			out = append(out, Explanation{Keys: vim.Describe(pending), Invalid: true})
		default:
			n, err := normalizer.Normalize(pr.Command)
			if err != nil {
				out = append(out, Explanation{Keys: vim.Describe(pending), Invalid: true})
			} else {
				out = append(out, Explanation{Keys: vim.Describe(pending), Command: &n})
			}
		}
		pending = nil
	}
	if len(pending) > 0 {
		pr := parser.Parse(pending)
		out = append(out, Explanation{Keys: vim.Describe(pending), Awaiting: pr.Awaiting})
	}
	return out, nil
}
