package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Parse errors
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Parse parses a single key specification.
//
// Supported formats:
//   - Single character: "a", "A", "1", "@"
//   - Vim notation: "<Esc>", "<CR>", "<BS>", "<C-r>", "<Space>", "<lt>"
//   - Modifier notation: "Ctrl+R"
func Parse(spec string) (Event, error) {
	if spec == "" {
		return Event{}, ErrEmptySpec
	}
	if utf8.RuneCountInString(spec) == 1 {
		r, _ := utf8.DecodeRuneInString(spec)
		return NewRuneEvent(r, ModNone), nil
	}
	if strings.HasPrefix(spec, "<") && strings.HasSuffix(spec, ">") {
		return parseNotation(spec[1 : len(spec)-1])
	}
	if strings.Contains(spec, "+") {
		parts := strings.Split(spec, "+")
		var mods Modifier
		for _, p := range parts[:len(parts)-1] {
			mod := modifierFromName(strings.TrimSpace(p))
			if mod == ModNone {
				return Event{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
			}
			mods = mods.With(mod)
		}
		return parseKeyPart(parts[len(parts)-1], mods)
	}
	if k := KeyFromName(spec); k != KeyNone {
		return NewSpecialEvent(k, ModNone), nil
	}
	return Event{}, fmt.Errorf("%w: %q", ErrInvalidSpec, spec)
}

// parseNotation parses the inside of a <...> spec: "C-r", "Esc", "lt".
func parseNotation(inner string) (Event, error) {
	if inner == "" {
		return Event{}, ErrInvalidSpec
	}
	// "<C-->" names Ctrl with the minus key.
	var mods Modifier
	for len(inner) > 2 && inner[1] == '-' {
		mod := modifierFromName(inner[:1])
		if mod == ModNone {
			return Event{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, inner[:1])
		}
		mods = mods.With(mod)
		inner = inner[2:]
	}
	return parseKeyPart(inner, mods)
}

func parseKeyPart(part string, mods Modifier) (Event, error) {
	part = strings.TrimSpace(part)
	if part == "" {
		return Event{}, ErrInvalidSpec
	}
	switch strings.ToLower(part) {
	case "space":
		return NewRuneEvent(' ', mods), nil
	case "lt":
		return NewRuneEvent('<', mods), nil
	case "gt":
		return NewRuneEvent('>', mods), nil
	case "bar":
		return NewRuneEvent('|', mods), nil
	case "bslash":
		return NewRuneEvent('\\', mods), nil
	}
	if k := KeyFromName(part); k != KeyNone {
		return NewSpecialEvent(k, mods), nil
	}
	if utf8.RuneCountInString(part) == 1 {
		r, _ := utf8.DecodeRuneInString(part)
		if mods.HasCtrl() && r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		return NewRuneEvent(r, mods), nil
	}
	return Event{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, part)
}

// MustParse parses a key specification and panics on error.
// Use only for known-valid specs in initialization code.
func MustParse(spec string) Event {
	event, err := Parse(spec)
	if err != nil {
		panic("invalid key specification: " + spec + ": " + err.Error())
	}
	return event
}
