// Package mode holds the editor mode: normal, insert, visual or command.
//
// The Manager is the mode store the command executor writes through
// (Mode and SetMode), and the place the input session and the terminal
// view read the current mode from.
//
// # Mode Lifecycle
//
// When switching modes:
// 1. Current mode's Exit() is called
// 2. New mode's Enter() is called
// 3. Mode change callbacks are notified
//
// # Custom Modes
//
// Plugins can register modes of their own:
//
//	manager.Register(NewMode("replace", "REPLACE", CursorUnderline))
package mode
