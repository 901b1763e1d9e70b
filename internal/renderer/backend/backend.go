// Package backend draws a document view to a terminal and turns terminal
// input into key events.
package backend

import "github.com/dshills/modalkit/internal/input/key"

// EventType identifies the type of terminal event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventResize
	// EventClosed is returned once the backend has shut down.
	EventClosed
)

// Event represents a terminal event.
type Event struct {
	Type EventType

	// Key is set for EventKey.
	Key key.Event

	// Width and Height are set for EventResize.
	Width, Height int
}

// CursorStyle defines how the cursor appears.
type CursorStyle int

const (
	CursorBlock CursorStyle = iota
	CursorBar
)

// View is everything drawn in one frame.
type View struct {
	Lines []string

	// CursorLine and CursorCol are the cursor position, column in runes.
	CursorLine int
	CursorCol  int
	Cursor     CursorStyle

	// Status is drawn on the last row.
	Status string

	// TabWidth expands tabs. Zero means 8.
	TabWidth int
}

// Backend defines the interface for terminal backends.
type Backend interface {
	// Init initializes the backend for use.
	Init() error

	// Shutdown releases backend resources and restores terminal state.
	Shutdown()

	// Size returns the current terminal dimensions.
	Size() (width, height int)

	// Draw renders v and flushes it to the display.
	Draw(v View)

	// PollEvent waits for and returns the next terminal event.
	PollEvent() Event

	// PostEvent posts a synthetic event to the event queue.
	PostEvent(event Event)

	// Beep produces an audible or visual bell.
	Beep()
}
