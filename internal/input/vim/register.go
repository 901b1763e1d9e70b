package vim

import (
	"strings"
	"sync"
	"unicode"
)

// RegisterType categorizes registers by their behavior.
type RegisterType uint8

const (
	RegisterInvalid RegisterType = iota
	RegisterUnnamed
	RegisterNamed
	RegisterLastYank
	RegisterNumbered
	RegisterSmallDelete
	RegisterBlackHole
	RegisterLastInserted
	RegisterFileName
	RegisterAlternate
	RegisterCommand
	RegisterSearch
	RegisterClipboard
)

// Register is the content of one register.
type Register struct {
	Content  string
	Linewise bool
}

// ClipboardProvider abstracts system clipboard access for "+ and "*.
type ClipboardProvider interface {
	// Get returns the current clipboard content.
	Get() (string, error)

	// Set sets the clipboard content.
	Set(content string) error
}

// RegisterStore manages all registers of a session.
type RegisterStore struct {
	mu        sync.RWMutex
	registers map[rune]Register

	clipboard ClipboardProvider
}

// NewRegisterStore creates a new register store.
func NewRegisterStore() *RegisterStore {
	return &RegisterStore{registers: make(map[rune]Register)}
}

// SetClipboard sets the clipboard provider for system clipboard integration.
// Without one, "+ and "* behave like ordinary registers.
func (rs *RegisterStore) SetClipboard(clipboard ClipboardProvider) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.clipboard = clipboard
}

// Get returns the content of a register. Uppercase names read the
// lowercase register.
func (rs *RegisterStore) Get(name rune) (Register, bool) {
	name = unicode.ToLower(name)
	if !IsValidRegister(name) || name == '_' {
		return Register{}, false
	}

	if GetRegisterType(name) == RegisterClipboard {
		rs.mu.RLock()
		clipboard := rs.clipboard
		rs.mu.RUnlock()

		if clipboard != nil {
			content, err := clipboard.Get()
			if err != nil {
				return Register{}, false
			}
			linewise := strings.HasSuffix(content, "\n")
			return Register{Content: strings.TrimSuffix(content, "\n"), Linewise: linewise}, true
		}
	}

	rs.mu.RLock()
	defer rs.mu.RUnlock()
	reg, ok := rs.registers[name]
	return reg, ok
}

// Set writes a register the way an explicit "x write does. Uppercase
// names append to the lowercase register; read-only and black hole
// writes are dropped.
func (rs *RegisterStore) Set(name rune, reg Register) {
	typ := GetRegisterType(name)
	switch typ {
	case RegisterInvalid, RegisterBlackHole, RegisterLastInserted,
		RegisterFileName, RegisterAlternate, RegisterCommand, RegisterSearch:
		return
	case RegisterClipboard:
		if rs.setClipboard(reg) {
			return
		}
	}

	rs.mu.Lock()
	defer rs.mu.Unlock()

	if unicode.IsUpper(name) {
		name = unicode.ToLower(name)
		if prev, ok := rs.registers[name]; ok && prev.Content != "" {
			reg = appendRegister(prev, reg)
		}
	}
	rs.registers[name] = reg
}

func appendRegister(prev, next Register) Register {
	if prev.Linewise || next.Linewise {
		return Register{Content: prev.Content + "\n" + next.Content, Linewise: true}
	}
	return Register{Content: prev.Content + next.Content}
}

func (rs *RegisterStore) setClipboard(reg Register) bool {
	rs.mu.RLock()
	clipboard := rs.clipboard
	rs.mu.RUnlock()

	if clipboard == nil {
		return false
	}
	content := reg.Content
	if reg.Linewise {
		content += "\n"
	}
	_ = clipboard.Set(content)
	return true
}

// Yank records a yank into name. Yanks into the unnamed register also
// land in "0; yanks into any other register also update the unnamed one.
func (rs *RegisterStore) Yank(name rune, reg Register) {
	switch name {
	case '_':
		return
	case '"', 0:
		rs.store('0', reg)
	default:
		rs.Set(name, reg)
	}
	rs.store('"', rs.resolved(name, reg))
}

// Delete records deleted text. Unnamed deletes of whole lines or of text
// spanning lines shift "1.."9; smaller ones go to "-.
func (rs *RegisterStore) Delete(name rune, reg Register) {
	switch name {
	case '_':
		return
	case '"', 0:
		if reg.Linewise || strings.Contains(reg.Content, "\n") {
			rs.shiftNumbered(reg)
		} else {
			rs.store('-', reg)
		}
	default:
		rs.Set(name, reg)
	}
	rs.store('"', rs.resolved(name, reg))
}

// resolved returns what the unnamed register should hold after writing
// reg to name: the appended content for uppercase names.
func (rs *RegisterStore) resolved(name rune, reg Register) Register {
	if unicode.IsUpper(name) && GetRegisterType(name) == RegisterNamed {
		if full, ok := rs.Get(name); ok {
			return full
		}
	}
	return reg
}

func (rs *RegisterStore) shiftNumbered(reg Register) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	for i := '9'; i > '1'; i-- {
		if prev, ok := rs.registers[i-1]; ok {
			rs.registers[i] = prev
		}
	}
	rs.registers['1'] = reg
}

func (rs *RegisterStore) store(name rune, reg Register) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.registers[name] = reg
}

// SetLastInserted updates the last inserted text register.
func (rs *RegisterStore) SetLastInserted(content string) {
	rs.store('.', Register{Content: content})
}

// SetLastSearch updates the last search pattern register.
func (rs *RegisterStore) SetLastSearch(pattern string) {
	rs.store('/', Register{Content: pattern})
}

// SetFileName updates the file name register.
func (rs *RegisterStore) SetFileName(filename string) {
	rs.store('%', Register{Content: filename})
}

// GetRegisterType returns the type of register for a given name.
func GetRegisterType(name rune) RegisterType {
	switch {
	case name == '"':
		return RegisterUnnamed
	case name >= 'a' && name <= 'z', name >= 'A' && name <= 'Z':
		return RegisterNamed
	case name == '0':
		return RegisterLastYank
	case name >= '1' && name <= '9':
		return RegisterNumbered
	case name == '-':
		return RegisterSmallDelete
	case name == '_':
		return RegisterBlackHole
	case name == '.':
		return RegisterLastInserted
	case name == '%':
		return RegisterFileName
	case name == '#':
		return RegisterAlternate
	case name == ':':
		return RegisterCommand
	case name == '/':
		return RegisterSearch
	case name == '+', name == '*':
		return RegisterClipboard
	}
	return RegisterInvalid
}

// IsValidRegister returns true if the register name is valid.
func IsValidRegister(name rune) bool {
	return GetRegisterType(name) != RegisterInvalid
}

// IsReadOnly returns true for registers only the editor writes.
func IsReadOnly(name rune) bool {
	switch GetRegisterType(name) {
	case RegisterLastInserted, RegisterFileName, RegisterAlternate, RegisterCommand, RegisterSearch:
		return true
	}
	return false
}
