package app

import (
	"errors"
	"fmt"

	"github.com/dshills/modalkit/internal/input"
	"github.com/dshills/modalkit/internal/input/key"
)

// Session control keys. They act in every mode.
var (
	keySave = key.MustParse("<C-s>")
	keyQuit = key.MustParse("<C-q>")
)

// controlHook handles session keys before the grammar sees them and
// reports command failures on the status line.
type controlHook struct {
	app *App
}

// PreKeyEvent implements input.Hook.
func (h controlHook) PreKeyEvent(ev *key.Event) bool {
	switch {
	case ev.Equals(keySave):
		h.app.saveFromKey()
		return true
	case ev.Equals(keyQuit):
		h.app.quitFromKey()
		return true
	}
	h.app.setQuitArmed(false)
	return false
}

// PostKeyEvent implements input.Hook.
func (h controlHook) PostKeyEvent(_ key.Event, out input.Outcome) {
	switch {
	case out.Result != nil && out.Result.Error != nil && !out.Result.IsOK():
		h.app.setStatus(out.Result.Error.Error())
	case out.Command != nil:
		h.app.setStatus("")
	}
}

func (a *App) installControlKeys() {
	a.input.Hooks().RegisterWithOptions(controlHook{app: a}, "control", input.HookPriorityHigh)
}

func (a *App) saveFromKey() {
	if err := a.Save(); err != nil {
		a.logger.Warn("save failed", "error", err)
		a.setStatus(err.Error())
		return
	}
	a.setStatus(fmt.Sprintf("%q written", a.Path()))
}

func (a *App) quitFromKey() {
	a.mu.Lock()
	force := a.quitArmed
	a.mu.Unlock()

	err := a.Quit(force)
	if errors.Is(err, ErrUnsavedChanges) {
		a.setQuitArmed(true)
		a.setStatus("unsaved changes, <C-q> again to discard, <C-s> to save")
	}
}

func (a *App) setQuitArmed(armed bool) {
	a.mu.Lock()
	a.quitArmed = armed
	a.mu.Unlock()
}

func (a *App) setStatus(msg string) {
	a.mu.Lock()
	a.status = msg
	a.mu.Unlock()
}

// Status returns the current status message.
func (a *App) Status() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.status
}
