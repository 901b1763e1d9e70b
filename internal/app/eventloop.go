package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dshills/modalkit/internal/input/mode"
	"github.com/dshills/modalkit/internal/renderer/backend"
)

// refreshInterval redraws the screen so an expired key sequence leaves
// the status line without waiting for the next key.
const refreshInterval = 200 * time.Millisecond

// Run drives the session from b until ctx is cancelled, the user quits
// or the backend closes.
func (a *App) Run(ctx context.Context, b backend.Backend) error {
	if a.isClosed() {
		return ErrClosed
	}
	if err := b.Init(); err != nil {
		return &ComponentError{Component: "backend", Err: err}
	}
	defer b.Shutdown()

	events := make(chan backend.Event)
	stop := make(chan struct{})
	defer close(stop)
	go pollEvents(b, events, stop)

	ticker := time.NewTicker(refreshInterval)
	defer ticker.Stop()

	a.draw(b)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-a.quit:
			return nil
		case <-ticker.C:
			a.draw(b)
		case ev := <-events:
			switch ev.Type {
			case backend.EventClosed:
				return nil
			case backend.EventKey:
				out := a.input.HandleKey(ev.Key)
				if out.Result != nil && out.Result.Error != nil {
					b.Beep()
				}
			}
			a.draw(b)
		}
	}
}

// pollEvents forwards backend events until stop is closed or the backend
// closes.
func pollEvents(b backend.Backend, events chan<- backend.Event, stop <-chan struct{}) {
	for {
		ev := b.PollEvent()
		select {
		case events <- ev:
		case <-stop:
			return
		}
		if ev.Type == backend.EventClosed {
			return
		}
	}
}

// draw renders the document and status line.
func (a *App) draw(b backend.Backend) {
	doc := a.Document()
	cur := doc.Cursor()
	style := backend.CursorBlock
	if a.modes.IsMode(mode.ModeInsert) {
		style = backend.CursorBar
	}
	b.Draw(backend.View{
		Lines:      doc.Lines(),
		CursorLine: cur.Line,
		CursorCol:  cur.Column,
		Cursor:     style,
		Status:     a.StatusLine(),
		TabWidth:   doc.TabWidth(),
	})
}

// StatusLine returns the text of the status line: mode, file, pending
// keys or the last message, and the cursor position.
func (a *App) StatusLine() string {
	doc := a.Document()
	var sb strings.Builder

	if m := a.modes.Current(); m != nil {
		sb.WriteString(m.DisplayName())
	}
	sb.WriteString("  ")
	name := a.Path()
	if name == "" {
		name = "[No Name]"
	}
	sb.WriteString(name)
	if doc.Modified() {
		sb.WriteString(" [+]")
	}

	if pending := a.input.Pending(); pending != "" {
		sb.WriteString("  ")
		sb.WriteString(pending)
	} else if msg := a.Status(); msg != "" {
		sb.WriteString("  ")
		sb.WriteString(msg)
	}

	cur := doc.Cursor()
	fmt.Fprintf(&sb, "  %d:%d", cur.Line+1, cur.Column+1)
	return sb.String()
}
