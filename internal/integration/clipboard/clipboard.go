// Package clipboard connects the "+ and "* registers to the system
// clipboard.
package clipboard

import (
	"errors"
	"strings"
	"sync"

	"github.com/atotto/clipboard"
)

// ErrUnavailable is returned when no clipboard utility is installed.
var ErrUnavailable = errors.New("system clipboard unavailable")

// System reads and writes the desktop clipboard. When the clipboard is
// unavailable it keeps the last written text in memory so yank and put
// through "+ still work within the session.
type System struct {
	mu       sync.Mutex
	fallback string

	read  func() (string, error)
	write func(string) error
}

// NewSystem creates a provider backed by the desktop clipboard.
func NewSystem() *System {
	return &System{read: clipboard.ReadAll, write: clipboard.WriteAll}
}

// Available reports whether a clipboard utility was found.
func Available() bool {
	return !clipboard.Unsupported
}

// Get returns the clipboard content. A failed read falls back to the
// last text written in this session.
func (s *System) Get() (string, error) {
	text, err := s.read()
	if err == nil {
		return normalize(text), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fallback != "" {
		return s.fallback, nil
	}
	return "", errors.Join(ErrUnavailable, err)
}

// Set writes text to the clipboard. The text is remembered even if the
// write fails.
func (s *System) Set(text string) error {
	text = normalize(text)
	s.mu.Lock()
	s.fallback = text
	s.mu.Unlock()

	if err := s.write(text); err != nil {
		return errors.Join(ErrUnavailable, err)
	}
	return nil
}

// Memory is an in-process clipboard for headless sessions.
type Memory struct {
	mu   sync.Mutex
	text string
}

// NewMemory creates an empty in-process clipboard.
func NewMemory() *Memory {
	return &Memory{}
}

// Get returns the stored text.
func (m *Memory) Get() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text, nil
}

// Set stores text.
func (m *Memory) Set(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = normalize(text)
	return nil
}

// normalize converts Windows line endings.
func normalize(text string) string {
	return strings.ReplaceAll(text, "\r\n", "\n")
}
