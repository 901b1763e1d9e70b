package backend

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// Terminal implements Backend using tcell for terminal output.
type Terminal struct {
	screen tcell.Screen
	mu     sync.Mutex

	// top is the first document line on screen.
	top int
}

// NewTerminal creates a new terminal backend.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Terminal{screen: screen}, nil
}

// NewTerminalWithScreen wraps an existing screen, such as a
// tcell.SimulationScreen.
func NewTerminalWithScreen(screen tcell.Screen) *Terminal {
	return &Terminal{screen: screen}
}

func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.EnablePaste()
	return nil
}

func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Fini()
}

func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Size()
}

// Draw renders v, scrolling so the cursor line stays visible. The last
// row holds the status line.
func (t *Terminal) Draw(v View) {
	t.mu.Lock()
	defer t.mu.Unlock()

	width, height := t.screen.Size()
	if width <= 0 || height <= 0 {
		return
	}
	tabWidth := v.TabWidth
	if tabWidth <= 0 {
		tabWidth = 8
	}

	rows := height - 1
	if rows < 1 {
		rows = 1
	}
	switch {
	case v.CursorLine < t.top:
		t.top = v.CursorLine
	case v.CursorLine >= t.top+rows:
		t.top = v.CursorLine - rows + 1
	}

	t.screen.Clear()
	cursorX := 0
	for row := 0; row < rows; row++ {
		n := t.top + row
		if n >= len(v.Lines) {
			t.screen.SetContent(0, row, '~', nil, tcell.StyleDefault.Dim(true))
			continue
		}
		drawLine(t.screen, row, width, v.Lines[n], tabWidth, tcell.StyleDefault)
		if n == v.CursorLine {
			cursorX = displayColumn(v.Lines[n], v.CursorCol, tabWidth)
		}
	}
	if height > 1 {
		drawLine(t.screen, height-1, width, v.Status, tabWidth, tcell.StyleDefault.Reverse(true))
	}

	switch v.Cursor {
	case CursorBar:
		t.screen.SetCursorStyle(tcell.CursorStyleSteadyBar)
	default:
		t.screen.SetCursorStyle(tcell.CursorStyleSteadyBlock)
	}
	t.screen.ShowCursor(cursorX, v.CursorLine-t.top)
	t.screen.Show()
}

// drawLine draws s on row grapheme by grapheme.
func drawLine(screen tcell.Screen, row, width int, s string, tabWidth int, style tcell.Style) {
	x := 0
	gr := uniseg.NewGraphemes(s)
	for gr.Next() && x < width {
		runes := gr.Runes()
		if runes[0] == '\t' {
			next := (x/tabWidth + 1) * tabWidth
			for ; x < next && x < width; x++ {
				screen.SetContent(x, row, ' ', nil, style)
			}
			continue
		}
		w := gr.Width()
		if w == 0 {
			continue
		}
		screen.SetContent(x, row, runes[0], runes[1:], style)
		x += w
	}
}

// displayColumn converts a rune column to a screen column.
func displayColumn(s string, col, tabWidth int) int {
	x, seen := 0, 0
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		runes := gr.Runes()
		if seen+len(runes) > col {
			break
		}
		seen += len(runes)
		if runes[0] == '\t' {
			x = (x/tabWidth + 1) * tabWidth
			continue
		}
		x += gr.Width()
	}
	return x
}

// PollEvent blocks for the next event. It returns EventClosed once the
// screen is finalized.
func (t *Terminal) PollEvent() Event {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return Event{Type: EventClosed}
		}
		if out, ok := convertEvent(ev); ok {
			return out
		}
	}
}

func (t *Terminal) PostEvent(event Event) {
	switch event.Type {
	case EventKey:
		k, r, m := convertToTcellKey(event.Key)
		_ = t.screen.PostEvent(tcell.NewEventKey(k, r, m)) // best-effort; event queue may be full
	case EventResize:
		_ = t.screen.PostEvent(tcell.NewEventResize(event.Width, event.Height))
	}
}

func (t *Terminal) Beep() {
	t.mu.Lock()
	defer t.mu.Unlock()

	_ = t.screen.Beep() // best-effort; terminal may not support beep
}

// convertEvent converts tcell events to our Event type. Events the editor
// has no use for report false.
func convertEvent(ev tcell.Event) (Event, bool) {
	switch e := ev.(type) {
	case *tcell.EventKey:
		k, ok := convertKeyEvent(e)
		if !ok {
			return Event{}, false
		}
		return Event{Type: EventKey, Key: k}, true
	case *tcell.EventResize:
		w, h := e.Size()
		return Event{Type: EventResize, Width: w, Height: h}, true
	default:
		return Event{}, false
	}
}
