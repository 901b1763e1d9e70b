package key

import "strings"

// Modifier is a bit set of held modifier keys.
type Modifier uint8

const (
	ModNone  Modifier = 0
	ModShift Modifier = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// Has reports whether all bits of mod are set.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod == mod
}

// HasCtrl reports whether Ctrl is held.
func (m Modifier) HasCtrl() bool { return m&ModCtrl != 0 }

// HasAlt reports whether Alt is held.
func (m Modifier) HasAlt() bool { return m&ModAlt != 0 }

// HasMeta reports whether Meta is held.
func (m Modifier) HasMeta() bool { return m&ModMeta != 0 }

// HasShift reports whether Shift is held.
func (m Modifier) HasShift() bool { return m&ModShift != 0 }

// With returns m with mod added.
func (m Modifier) With(mod Modifier) Modifier { return m | mod }

// prefix renders the modifiers as Vim notation prefixes ("C-", "A-").
// Shift is only rendered for special keys since it is folded into runes.
func (m Modifier) prefix(special bool) string {
	var sb strings.Builder
	if m.HasCtrl() {
		sb.WriteString("C-")
	}
	if m.HasAlt() {
		sb.WriteString("A-")
	}
	if m.HasMeta() {
		sb.WriteString("D-")
	}
	if special && m.HasShift() {
		sb.WriteString("S-")
	}
	return sb.String()
}

// modifierFromName maps a notation prefix ("c", "ctrl") to a modifier.
func modifierFromName(name string) Modifier {
	switch strings.ToLower(name) {
	case "c", "ctrl", "control":
		return ModCtrl
	case "a", "alt", "m":
		return ModAlt
	case "d", "meta", "cmd":
		return ModMeta
	case "s", "shift":
		return ModShift
	}
	return ModNone
}
