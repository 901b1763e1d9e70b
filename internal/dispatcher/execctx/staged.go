package execctx

import "github.com/dshills/modalkit/internal/input/vim"

// StagedRegisters holds the register writes of one command until the
// command commits. Reads go to the underlying store.
type StagedRegisters struct {
	base   Registers
	writes []func(Registers)
}

// NewStagedRegisters stages writes bound for base.
func NewStagedRegisters(base Registers) *StagedRegisters {
	return &StagedRegisters{base: base}
}

// Get reads from the underlying store.
func (s *StagedRegisters) Get(name rune) (vim.Register, bool) {
	return s.base.Get(name)
}

// Yank stages a yank.
func (s *StagedRegisters) Yank(name rune, reg vim.Register) {
	s.writes = append(s.writes, func(r Registers) { r.Yank(name, reg) })
}

// Delete stages a delete.
func (s *StagedRegisters) Delete(name rune, reg vim.Register) {
	s.writes = append(s.writes, func(r Registers) { r.Delete(name, reg) })
}

// SetLastInserted stages an update of the "." register.
func (s *StagedRegisters) SetLastInserted(content string) {
	s.writes = append(s.writes, func(r Registers) { r.SetLastInserted(content) })
}

// SetLastSearch stages an update of the "/" register.
func (s *StagedRegisters) SetLastSearch(pattern string) {
	s.writes = append(s.writes, func(r Registers) { r.SetLastSearch(pattern) })
}

// Pending returns the number of staged writes.
func (s *StagedRegisters) Pending() int {
	return len(s.writes)
}

// Flush applies the staged writes in order.
func (s *StagedRegisters) Flush() {
	for _, w := range s.writes {
		w(s.base)
	}
	s.writes = nil
}
